package internal

// MatchResult describes a successful path match.
type MatchResult struct {
	// Action is the matched action record.
	Action *ActionRecord

	// Label identifies what matched: the normalized path for exact matches,
	// the pattern source for regex matches.
	Label string

	// Snippets holds regex capture groups, empty for exact matches.
	Snippets []string
}

// Entry is one row of a dispatch type's diagnostic table.
type Entry struct {
	Key   string // registered path, pattern or behavior tag
	Value string // reverse path(s) of the owning action(s)
}

// DispatchType is one path-matching strategy. The registry consults its
// dispatch types in a fixed priority order; each type indexes the subset
// of action attributes it understands.
type DispatchType interface {
	// Name identifies the dispatch type in diagnostics.
	Name() string

	// Register indexes the action's relevant attributes and reports
	// whether anything was registered. Registration errors (e.g. an
	// invalid pattern) are startup-fatal.
	Register(a *ActionRecord) (bool, error)

	// Match attempts to resolve the given candidate path.
	// Matchers that only participate in registration always report false.
	Match(path string) (MatchResult, bool)

	// Entries returns the registered table sorted by key, for
	// deterministic startup diagnostics.
	Entries() []Entry
}
