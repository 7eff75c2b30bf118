package internal

import (
	"maps"
	"slices"
)

// pathMatcher resolves exact normalized paths. Registering two actions
// under the identical path keeps only the later one: last writer wins,
// which lets applications deliberately override inherited registrations.
type pathMatcher struct {
	paths map[string]*ActionRecord
}

func newPathMatcher() *pathMatcher {
	return &pathMatcher{paths: make(map[string]*ActionRecord)}
}

func (m *pathMatcher) Name() string { return "Path" }

func (m *pathMatcher) Register(a *ActionRecord) (bool, error) {
	registered := false
	for _, p := range a.Attributes().Values(attrPath) {
		m.paths[normalizePath(p)] = a
		registered = true
	}
	return registered, nil
}

func (m *pathMatcher) Match(path string) (MatchResult, bool) {
	a, ok := m.paths[path]
	if !ok {
		return MatchResult{}, false
	}
	return MatchResult{Action: a, Label: path}, true
}

func (m *pathMatcher) Entries() []Entry {
	entries := make([]Entry, 0, len(m.paths))
	for _, key := range slices.Sorted(maps.Keys(m.paths)) {
		entries = append(entries, Entry{Key: "/" + key, Value: m.paths[key].ReversePath()})
	}
	return entries
}
