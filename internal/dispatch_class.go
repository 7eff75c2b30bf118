package internal

import (
	"maps"
	"slices"
	"strings"
)

// classMatcher indexes actions by their Action(...) behavior tags.
// It never resolves request paths; the table exists so surrounding
// infrastructure can enumerate which actions a given behavior wraps.
type classMatcher struct {
	tags map[string][]*ActionRecord
}

func newClassMatcher() *classMatcher {
	return &classMatcher{tags: make(map[string][]*ActionRecord)}
}

func (m *classMatcher) Name() string { return "Action" }

func (m *classMatcher) Register(a *ActionRecord) (bool, error) {
	registered := false
	for _, tag := range a.Attributes().Values(attrAction) {
		m.tags[tag] = append(m.tags[tag], a)
		registered = true
	}
	return registered, nil
}

func (m *classMatcher) Match(string) (MatchResult, bool) {
	return MatchResult{}, false
}

func (m *classMatcher) Entries() []Entry {
	entries := make([]Entry, 0, len(m.tags))
	for _, tag := range slices.Sorted(maps.Keys(m.tags)) {
		owners := make([]string, 0, len(m.tags[tag]))
		for _, a := range m.tags[tag] {
			owners = append(owners, a.ReversePath())
		}
		slices.Sort(owners)
		entries = append(entries, Entry{Key: tag, Value: strings.Join(owners, ", ")})
	}
	return entries
}

// Tagged returns the actions registered under the given behavior tag.
func (m *classMatcher) Tagged(tag string) []*ActionRecord {
	return slices.Clone(m.tags[tag])
}
