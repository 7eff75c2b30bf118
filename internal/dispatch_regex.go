package internal

import (
	"regexp"
	"sort"
)

// maxSnippets bounds how many capture groups become positional snippets.
const maxSnippets = 9

// regexMatcher resolves paths against compiled patterns in strict
// registration order: the first registered pattern that matches wins.
// There is no scoring heuristic; applications order specific patterns
// before catch-alls.
type regexMatcher struct {
	actions  map[string]*ActionRecord // label (pattern source) -> action
	compiled []regexEntry
}

type regexEntry struct {
	re    *regexp.Regexp
	label string
}

func newRegexMatcher() *regexMatcher {
	return &regexMatcher{actions: make(map[string]*ActionRecord)}
}

func (m *regexMatcher) Name() string { return "Regex" }

func (m *regexMatcher) Register(a *ActionRecord) (bool, error) {
	registered := false
	for _, pattern := range a.Attributes().Values(attrRegex) {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return registered, &ConfigError{Err: err, Action: a.ReversePath(), Tag: pattern}
		}
		m.compiled = append(m.compiled, regexEntry{re: re, label: pattern})
		m.actions[pattern] = a
		registered = true
	}
	return registered, nil
}

func (m *regexMatcher) Match(path string) (MatchResult, bool) {
	for _, entry := range m.compiled {
		groups := entry.re.FindStringSubmatch(path)
		if groups == nil {
			continue
		}
		snippets := groups[1:]
		if len(snippets) > maxSnippets {
			snippets = snippets[:maxSnippets]
		}
		return MatchResult{
			Action:   m.actions[entry.label],
			Label:    entry.label,
			Snippets: snippets,
		}, true
	}
	return MatchResult{}, false
}

func (m *regexMatcher) Entries() []Entry {
	entries := make([]Entry, 0, len(m.compiled))
	for _, e := range m.compiled {
		entries = append(entries, Entry{Key: e.label, Value: m.actions[e.label].ReversePath()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}
