package internal

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mantle/pkg/logger"
)

func newTestContext(t *testing.T, reg *Registry, gate *Gate, path string) *requestContext {
	t.Helper()

	if gate == nil {
		gate = NewGate(nil, nil, logger.NewNope())
	}
	r := httptest.NewRequest(http.MethodGet, path, nil)
	return newContext(httptest.NewRecorder(), r, logger.NewNope(), reg, gate)
}

// resolveOnto resolves the context's path and records the outcome, the
// way App.dispatch does before running the lifecycle.
func resolveOnto(t *testing.T, reg *Registry, c *requestContext) {
	t.Helper()

	res, err := reg.Resolve(c.Path())
	require.NoError(t, err)
	c.setResolution(res)
}

func traced(trace *[]string, name string) ActionFunc {
	return func(c Context, args ...string) error {
		*trace = append(*trace, name)
		return nil
	}
}

func TestLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("phases run in order", func(t *testing.T) {
		t.Parallel()

		var trace []string
		reg := newTestRegistry(t,
			&testController{ns: "", actions: func(r Registrar) {
				r.Action("begin", traced(&trace, "begin"))
				r.Action("auto", traced(&trace, "auto"))
				r.Action("end", traced(&trace, "end"))
			}},
			&testController{ns: "books", actions: func(r Registrar) {
				r.Action("list", traced(&trace, "action"), "Path(/books)")
			}},
		)

		c := newTestContext(t, reg, nil, "/books")
		resolveOnto(t, reg, c)

		l := NewLifecycle(reg, logger.NewNope())
		l.Run(c)
		l.Finalize(c)

		require.Equal(t, []string{"begin", "auto", "action", "end"}, trace)
		require.Empty(t, c.Errors())
	})

	t.Run("auto failure skips the action but not the end", func(t *testing.T) {
		t.Parallel()

		var trace []string
		reg := newTestRegistry(t,
			&testController{ns: "", actions: func(r Registrar) {
				r.Action("auto", func(c Context, args ...string) error {
					trace = append(trace, "auto")
					return errors.New("not ready")
				})
				r.Action("end", traced(&trace, "end"))
			}},
			&testController{ns: "books", actions: func(r Registrar) {
				r.Action("list", traced(&trace, "action"), "Path(/books)")
			}},
		)

		c := newTestContext(t, reg, nil, "/books")
		resolveOnto(t, reg, c)

		l := NewLifecycle(reg, logger.NewNope())
		l.Run(c)
		l.Finalize(c)

		require.Equal(t, []string{"auto", "end"}, trace)
		require.Len(t, c.Errors(), 1)

		var phaseErr *PhaseError
		require.ErrorAs(t, c.Errors()[0], &phaseErr)
		require.Equal(t, phaseAuto, phaseErr.Phase)
	})

	t.Run("stop raised in begin halts without an error", func(t *testing.T) {
		t.Parallel()

		var trace []string
		reg := newTestRegistry(t,
			&testController{ns: "", actions: func(r Registrar) {
				r.Action("begin", func(c Context, args ...string) error {
					trace = append(trace, "begin")
					c.Stop()
					return nil
				})
				r.Action("end", traced(&trace, "end"))
			}},
			&testController{ns: "books", actions: func(r Registrar) {
				r.Action("list", traced(&trace, "action"), "Path(/books)")
			}},
		)

		c := newTestContext(t, reg, nil, "/books")
		resolveOnto(t, reg, c)

		l := NewLifecycle(reg, logger.NewNope())
		l.Run(c)
		l.Finalize(c)

		require.Equal(t, []string{"begin", "end"}, trace)
		require.True(t, c.Stopped())
		require.Empty(t, c.Errors())
	})

	t.Run("panic in the action becomes a phase error", func(t *testing.T) {
		t.Parallel()

		reg := newTestRegistry(t, &testController{ns: "books", actions: func(r Registrar) {
			r.Action("list", func(c Context, args ...string) error {
				panic("boom")
			}, "Path(/books)")
		}})

		c := newTestContext(t, reg, nil, "/books")
		resolveOnto(t, reg, c)

		l := NewLifecycle(reg, logger.NewNope())
		l.Run(c)

		require.Len(t, c.Errors(), 1)

		var phaseErr *PhaseError
		require.ErrorAs(t, c.Errors()[0], &phaseErr)
		require.Equal(t, phaseAction, phaseErr.Phase)
		require.Contains(t, phaseErr.Error(), "boom")
	})

	t.Run("begin and end use the most specific override", func(t *testing.T) {
		t.Parallel()

		var trace []string
		reg := newTestRegistry(t,
			&testController{ns: "", actions: func(r Registrar) {
				r.Action("begin", traced(&trace, "root begin"))
				r.Action("end", traced(&trace, "root end"))
			}},
			&testController{ns: "books", actions: func(r Registrar) {
				r.Action("begin", traced(&trace, "books begin"))
				r.Action("list", traced(&trace, "action"), "Path(/books)")
			}},
		)

		c := newTestContext(t, reg, nil, "/books")
		resolveOnto(t, reg, c)

		l := NewLifecycle(reg, logger.NewNope())
		l.Run(c)
		l.Finalize(c)

		require.Equal(t, []string{"books begin", "action", "root end"}, trace)
	})

	t.Run("auto chain runs every namespace level", func(t *testing.T) {
		t.Parallel()

		var trace []string
		reg := newTestRegistry(t,
			&testController{ns: "", actions: func(r Registrar) {
				r.Action("auto", traced(&trace, "root auto"))
			}},
			&testController{ns: "admin", actions: func(r Registrar) {
				r.Action("auto", traced(&trace, "admin auto"))
			}},
			&testController{ns: "admin/books", actions: func(r Registrar) {
				r.Action("auto", traced(&trace, "leaf auto"))
				r.Action("list", traced(&trace, "action"), "Path(/admin/books)")
			}},
		)

		c := newTestContext(t, reg, nil, "/admin/books")
		resolveOnto(t, reg, c)

		NewLifecycle(reg, logger.NewNope()).Run(c)

		require.Equal(t, []string{"root auto", "admin auto", "leaf auto", "action"}, trace)
	})

	t.Run("missing roles deny the action", func(t *testing.T) {
		t.Parallel()

		var trace []string
		reg := newTestRegistry(t, &testController{ns: "admin", actions: func(r Registrar) {
			r.Action("purge", traced(&trace, "action"), "Path(/admin/purge)", "Roles(admin)")
		}})

		c := newTestContext(t, reg, nil, "/admin/purge")
		resolveOnto(t, reg, c)

		NewLifecycle(reg, logger.NewNope()).Run(c)

		require.Empty(t, trace)
		require.Len(t, c.Errors(), 1)
		require.ErrorIs(t, c.Errors()[0], ErrAuthorizationDenied)
	})

	t.Run("phase timings recorded", func(t *testing.T) {
		t.Parallel()

		reg := newTestRegistry(t, &testController{ns: "books", actions: func(r Registrar) {
			r.Action("list", noopAction, "Path(/books)")
		}})

		c := newTestContext(t, reg, nil, "/books")
		resolveOnto(t, reg, c)

		NewLifecycle(reg, logger.NewNope()).Run(c)

		require.Contains(t, c.Timings(), "action books/list")
	})
}
