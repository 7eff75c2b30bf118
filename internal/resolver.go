package internal

import "strings"

// Resolution is the outcome of path resolution.
type Resolution struct {
	// Action is the matched action.
	Action *ActionRecord

	// Args are the path segments left over after the matched prefix.
	// For the default fallback this is the entire original path, unsplit.
	Args []string

	// Snippets holds regex capture groups when a pattern matched.
	Snippets []string

	// Label identifies the winning registration: the matched path, the
	// pattern source, or the default-action key.
	Label string
}

// Resolve maps a request path to an action.
//
// The walk starts from the full path and shrinks by dropping the last
// segment each iteration; at every candidate prefix the dispatch types are
// consulted in priority order (exact path before regex). The longest
// candidate that matches wins and the segments after it become positional
// arguments.
//
// Regex patterns are evaluated against the candidate prefix string; a
// successful match consumes the whole candidate regardless of how much of
// it the pattern's span covered.
//
// Paths whose first segment carries the private sentinel skip resolution
// entirely, including the default fallback.
func (r *Registry) Resolve(path string) (Resolution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cleaned := normalizePath(path)
	segments := splitSegments(cleaned)

	if len(segments) > 0 && strings.HasPrefix(segments[0], privateSentinel) {
		return Resolution{}, ErrPrivateResource
	}

	for i := len(segments); i >= 0; i-- {
		if i == 0 && len(segments) > 0 {
			// The empty prefix only stands for the root path itself.
			break
		}
		candidate := strings.Join(segments[:i], "/")
		for _, dt := range r.types {
			m, ok := dt.Match(candidate)
			if !ok {
				continue
			}
			return Resolution{
				Action:   m.Action,
				Args:     segments[i:],
				Snippets: m.Snippets,
				Label:    m.Label,
			}, nil
		}
	}

	if rec, ok := r.path.paths[defaultPathKey]; ok {
		return Resolution{
			Action: rec,
			Args:   []string{cleaned},
			Label:  defaultPathKey,
		}, nil
	}

	return Resolution{}, ErrUnknownResource
}

// splitSegments splits a normalized path into its segments.
// An empty path has no segments.
func splitSegments(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
