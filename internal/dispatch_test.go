package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRecord(t *testing.T, namespace, name string, tags ...string) *ActionRecord {
	t.Helper()

	attrs, err := parseTags(tags, name, namespace)
	require.NoError(t, err)
	return newActionRecord(name, namespace, attrs, func(Context, ...string) error { return nil }, nil)
}

func TestPathMatcher(t *testing.T) {
	t.Parallel()

	t.Run("exact match", func(t *testing.T) {
		t.Parallel()

		m := newPathMatcher()
		registered, err := m.Register(newTestRecord(t, "books", "list", "Path(/books)"))
		require.NoError(t, err)
		require.True(t, registered)

		res, ok := m.Match("books")
		require.True(t, ok)
		require.Equal(t, "books/list", res.Action.ReversePath())
		require.Equal(t, "books", res.Label)
		require.Empty(t, res.Snippets)

		_, ok = m.Match("books/extra")
		require.False(t, ok)
	})

	t.Run("no path attribute registers nothing", func(t *testing.T) {
		t.Parallel()

		m := newPathMatcher()
		registered, err := m.Register(newTestRecord(t, "books", "show", `Regex(^books/\d+$)`))
		require.NoError(t, err)
		require.False(t, registered)
	})

	t.Run("last writer wins on duplicate paths", func(t *testing.T) {
		t.Parallel()

		m := newPathMatcher()
		_, err := m.Register(newTestRecord(t, "old", "list", "Path(/catalog)"))
		require.NoError(t, err)
		_, err = m.Register(newTestRecord(t, "new", "list", "Path(/catalog)"))
		require.NoError(t, err)

		res, ok := m.Match("catalog")
		require.True(t, ok)
		require.Equal(t, "new/list", res.Action.ReversePath())
	})

	t.Run("entries sorted by path", func(t *testing.T) {
		t.Parallel()

		m := newPathMatcher()
		_, err := m.Register(newTestRecord(t, "", "b", "Path(/b)"))
		require.NoError(t, err)
		_, err = m.Register(newTestRecord(t, "", "a", "Path(/a)"))
		require.NoError(t, err)

		entries := m.Entries()
		require.Len(t, entries, 2)
		require.Equal(t, "/a", entries[0].Key)
		require.Equal(t, "/b", entries[1].Key)
	})
}

func TestRegexMatcher(t *testing.T) {
	t.Parallel()

	t.Run("first registered pattern wins", func(t *testing.T) {
		t.Parallel()

		m := newRegexMatcher()
		_, err := m.Register(newTestRecord(t, "items", "show", `Regex(^items/(\d+)$)`))
		require.NoError(t, err)
		_, err = m.Register(newTestRecord(t, "items", "any", `Regex(^items/(.*)$)`))
		require.NoError(t, err)

		res, ok := m.Match("items/42")
		require.True(t, ok)
		require.Equal(t, "items/show", res.Action.ReversePath())
		require.Equal(t, `^items/(\d+)$`, res.Label)
		require.Equal(t, []string{"42"}, res.Snippets)

		res, ok = m.Match("items/abc")
		require.True(t, ok)
		require.Equal(t, "items/any", res.Action.ReversePath())
	})

	t.Run("snippets capped at nine", func(t *testing.T) {
		t.Parallel()

		m := newRegexMatcher()
		_, err := m.Register(newTestRecord(t, "", "wide",
			`Regex(^x/(\d)(\d)(\d)(\d)(\d)(\d)(\d)(\d)(\d)(\d)$)`))
		require.NoError(t, err)

		res, ok := m.Match("x/0123456789")
		require.True(t, ok)
		require.Len(t, res.Snippets, maxSnippets)
		require.Equal(t, "0", res.Snippets[0])
		require.Equal(t, "8", res.Snippets[8])
	})

	t.Run("invalid pattern is a config error", func(t *testing.T) {
		t.Parallel()

		m := newRegexMatcher()
		_, err := m.Register(newTestRecord(t, "items", "bad", `Regex([)`))
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		require.Equal(t, "items/bad", cfgErr.Action)
	})

	t.Run("entries sorted by pattern", func(t *testing.T) {
		t.Parallel()

		m := newRegexMatcher()
		_, err := m.Register(newTestRecord(t, "", "b", `Regex(^b$)`))
		require.NoError(t, err)
		_, err = m.Register(newTestRecord(t, "", "a", `Regex(^a$)`))
		require.NoError(t, err)

		entries := m.Entries()
		require.Len(t, entries, 2)
		require.Equal(t, "^a$", entries[0].Key)
		require.Equal(t, "^b$", entries[1].Key)
	})
}

func TestClassMatcher(t *testing.T) {
	t.Parallel()

	t.Run("never matches paths", func(t *testing.T) {
		t.Parallel()

		m := newClassMatcher()
		_, err := m.Register(newTestRecord(t, "books", "edit", "Action(audit)"))
		require.NoError(t, err)

		_, ok := m.Match("books/edit")
		require.False(t, ok)
	})

	t.Run("tagged returns owners", func(t *testing.T) {
		t.Parallel()

		m := newClassMatcher()
		_, err := m.Register(newTestRecord(t, "books", "edit", "Action(audit)"))
		require.NoError(t, err)
		_, err = m.Register(newTestRecord(t, "users", "delete", "Action(audit)"))
		require.NoError(t, err)

		tagged := m.Tagged("audit")
		require.Len(t, tagged, 2)
		require.Empty(t, m.Tagged("missing"))
	})

	t.Run("entries list sorted owners per tag", func(t *testing.T) {
		t.Parallel()

		m := newClassMatcher()
		_, err := m.Register(newTestRecord(t, "users", "delete", "Action(audit)"))
		require.NoError(t, err)
		_, err = m.Register(newTestRecord(t, "books", "edit", "Action(audit)"))
		require.NoError(t, err)

		entries := m.Entries()
		require.Len(t, entries, 1)
		require.Equal(t, "audit", entries[0].Key)
		require.Equal(t, "books/edit, users/delete", entries[0].Value)
	})
}
