package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitTag(t *testing.T) {
	t.Parallel()

	t.Run("bare kind", func(t *testing.T) {
		t.Parallel()

		kind, value, hasValue, err := splitTag("Local")
		require.NoError(t, err)
		require.Equal(t, "Local", kind)
		require.Empty(t, value)
		require.False(t, hasValue)
	})

	t.Run("kind with value", func(t *testing.T) {
		t.Parallel()

		kind, value, hasValue, err := splitTag("Path(/books)")
		require.NoError(t, err)
		require.Equal(t, "Path", kind)
		require.Equal(t, "/books", value)
		require.True(t, hasValue)
	})

	t.Run("strips surrounding quotes", func(t *testing.T) {
		t.Parallel()

		kind, value, _, err := splitTag(`Path("/books")`)
		require.NoError(t, err)
		require.Equal(t, "Path", kind)
		require.Equal(t, "/books", value)

		_, value, _, err = splitTag("Path('/books')")
		require.NoError(t, err)
		require.Equal(t, "/books", value)
	})

	t.Run("keeps inner parens", func(t *testing.T) {
		t.Parallel()

		kind, value, _, err := splitTag(`Regex(^books/(\d+)$)`)
		require.NoError(t, err)
		require.Equal(t, "Regex", kind)
		require.Equal(t, `^books/(\d+)$`, value)
	})

	t.Run("missing closing paren", func(t *testing.T) {
		t.Parallel()

		_, _, _, err := splitTag("Path(/books")
		require.ErrorIs(t, err, errUnterminatedTag)
	})
}

func TestParseTags(t *testing.T) {
	t.Parallel()

	t.Run("global resolves to root-level name", func(t *testing.T) {
		t.Parallel()

		attrs, err := parseTags([]string{"Global"}, "list", "books")
		require.NoError(t, err)
		require.Equal(t, []string{"/list"}, attrs.Values(attrPath))
	})

	t.Run("local resolves under the namespace", func(t *testing.T) {
		t.Parallel()

		attrs, err := parseTags([]string{"Local"}, "list", "books")
		require.NoError(t, err)
		require.Equal(t, []string{"books/list"}, attrs.Values(attrPath))
	})

	t.Run("absolute path kept verbatim", func(t *testing.T) {
		t.Parallel()

		attrs, err := parseTags([]string{"Path(/catalog)"}, "list", "books")
		require.NoError(t, err)
		require.Equal(t, []string{"/catalog"}, attrs.Values(attrPath))
	})

	t.Run("relative path joined with namespace", func(t *testing.T) {
		t.Parallel()

		attrs, err := parseTags([]string{"Path(recent)"}, "list", "books")
		require.NoError(t, err)
		require.Equal(t, []string{"books/recent"}, attrs.Values(attrPath))
	})

	t.Run("empty path binds the namespace itself", func(t *testing.T) {
		t.Parallel()

		attrs, err := parseTags([]string{"Path()"}, "index", "books")
		require.NoError(t, err)
		require.Equal(t, []string{"books"}, attrs.Values(attrPath))
	})

	t.Run("regex kept verbatim", func(t *testing.T) {
		t.Parallel()

		attrs, err := parseTags([]string{`Regex(^books/(\d+)$)`}, "show", "books")
		require.NoError(t, err)
		require.Equal(t, []string{`^books/(\d+)$`}, attrs.Values(attrRegex))
	})

	t.Run("local regex anchors to the namespace", func(t *testing.T) {
		t.Parallel()

		attrs, err := parseTags([]string{`LocalRegex((\d+))`}, "show", "books")
		require.NoError(t, err)
		require.Equal(t, []string{`^books/.*?(\d+)`}, attrs.Values(attrRegex))
	})

	t.Run("anchored local regex skips the wildcard prefix", func(t *testing.T) {
		t.Parallel()

		attrs, err := parseTags([]string{`LocalRegex(^show/(\d+))`}, "show", "books")
		require.NoError(t, err)
		require.Equal(t, []string{`^books/show/(\d+)`}, attrs.Values(attrRegex))
	})

	t.Run("roles split on commas", func(t *testing.T) {
		t.Parallel()

		attrs, err := parseTags([]string{"Roles(admin, editor,  )"}, "edit", "books")
		require.NoError(t, err)
		require.Equal(t, []string{"admin", "editor"}, attrs.Values(attrRoles))
	})

	t.Run("unknown kinds pass through", func(t *testing.T) {
		t.Parallel()

		attrs, err := parseTags([]string{"ChainedTo(/root)", "Audit"}, "edit", "books")
		require.NoError(t, err)
		require.Equal(t, []string{"/root"}, attrs.Values("ChainedTo"))
		require.True(t, attrs.Has("Audit"))
	})

	t.Run("malformed tag is a config error", func(t *testing.T) {
		t.Parallel()

		_, err := parseTags([]string{"Path(/books"}, "list", "books")
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		require.Equal(t, "books/list", cfgErr.Action)
		require.Equal(t, "Path(/books", cfgErr.Tag)
	})

	t.Run("declaration order preserved per kind", func(t *testing.T) {
		t.Parallel()

		attrs, err := parseTags([]string{"Path(/a)", "Path(/b)"}, "x", "")
		require.NoError(t, err)
		require.Equal(t, []string{"/a", "/b"}, attrs.Values(attrPath))
	})
}

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	require.Equal(t, "books/list", normalizePath("/books/list/"))
	require.Equal(t, "books", normalizePath("books"))
	require.Empty(t, normalizePath("/"))
	require.Empty(t, normalizePath(""))
}

func TestNamespaceChain(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{""}, namespaceChain(""))
	require.Equal(t, []string{"", "a"}, namespaceChain("a"))
	require.Equal(t, []string{"", "a", "a/b", "a/b/c"}, namespaceChain("a/b/c"))
}
