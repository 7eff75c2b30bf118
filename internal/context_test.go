package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mantle/pkg/logger"
)

func TestContext(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil, nil)

	t.Run("positional args", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(t, reg, nil, "/books/1/2")
		c.setResolution(Resolution{Args: []string{"1", "2"}})

		require.Equal(t, []string{"1", "2"}, c.Args())
		require.Equal(t, "1", c.Arg(0))
		require.Equal(t, "2", c.Arg(1))
		require.Empty(t, c.Arg(2))
		require.Empty(t, c.Arg(-1))
	})

	t.Run("query helpers", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(t, reg, nil, "/books?page=3")

		require.Equal(t, "3", c.Query("page"))
		require.Equal(t, "3", c.QueryDefault("page", "1"))
		require.Equal(t, "1", c.QueryDefault("missing", "1"))
	})

	t.Run("json response", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		c := newContext(rec, r, logger.NewNope(), reg, nil)

		require.NoError(t, c.JSON(http.StatusCreated, map[string]string{"id": "42"}))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		require.JSONEq(t, `{"id":"42"}`, rec.Body.String())
		require.True(t, c.Written())
	})

	t.Run("string response", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		c := newContext(rec, r, logger.NewNope(), reg, nil)

		require.NoError(t, c.String(http.StatusOK, "hello"))
		require.Equal(t, "hello", rec.Body.String())
		require.Equal(t, http.StatusOK, c.ResponseWriter().Status())
		require.EqualValues(t, 5, c.ResponseWriter().Size())
	})

	t.Run("store values win over the request context", func(t *testing.T) {
		t.Parallel()

		type key struct{}

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(context.WithValue(r.Context(), key{}, "from request"))
		c := newContext(httptest.NewRecorder(), r, logger.NewNope(), reg, nil)

		require.Equal(t, "from request", c.Value(key{}))

		c.Set(key{}, "from store")
		require.Equal(t, "from store", c.Value(key{}))
		require.Equal(t, "from store", c.Get(key{}))
		require.Nil(t, c.Get("absent"))
	})

	t.Run("add error ignores nil", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(t, reg, nil, "/")
		c.AddError(nil)
		require.Empty(t, c.Errors())
		require.False(t, c.failed())

		c.Stop()
		require.True(t, c.failed())
	})

	t.Run("forward executes by reverse path", func(t *testing.T) {
		t.Parallel()

		var got []string
		fwdReg := newTestRegistry(t, &testController{ns: "books", actions: func(r Registrar) {
			r.Action("render", func(c Context, args ...string) error {
				got = args
				return nil
			}, "Path(render)")
		}})

		c := newTestContext(t, fwdReg, nil, "/")
		require.NoError(t, c.Forward("books/render", "a", "b"))
		require.Equal(t, []string{"a", "b"}, got)

		require.ErrorIs(t, c.Forward("books/missing"), ErrUnknownResource)
	})
}
