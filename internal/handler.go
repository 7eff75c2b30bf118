package internal

// Controller declares dispatchable actions under a namespace.
//
// Example:
//
//	type BooksController struct {
//	    repo *repository.Queries
//	}
//
//	func (ctrl *BooksController) Namespace() string { return "books" }
//
//	func (ctrl *BooksController) Actions(r mantle.Registrar) {
//	    r.Action("list", ctrl.list, "Path(/books)")
//	    r.Action("show", ctrl.show, "Local")
//	    r.Action("search", ctrl.search, `LocalRegex((\w+)/(\d+))`)
//	}
type Controller interface {
	// Namespace returns the slash-delimited prefix the controller's
	// actions resolve under. The root controller returns "".
	Namespace() string

	// Actions registers the controller's actions on the registrar.
	// Called exactly once during application assembly.
	Actions(r Registrar)
}

// Registrar collects action registrations from a controller.
type Registrar interface {
	// Action registers a named action with its raw attribute tags.
	// The reserved names "begin", "auto" and "end" register private
	// lifecycle actions; "default" registers the unmatched-path fallback.
	Action(name string, fn ActionFunc, tags ...string)
}

// ActionFunc is the signature for dispatched actions.
// Positional args are the path segments left over after the matched prefix;
// regex matches receive their capture snippets instead.
// Returning a non-nil error records it and halts the remaining phases.
type ActionFunc func(c Context, args ...string) error

// Behavior wraps an action's execution with before/after logic.
// Behaviors are bound to actions declaratively via Action(...) attribute
// tags and composed around the base callable at registration time.
//
// Example:
//
//	type RequireLogin struct{}
//
//	func (RequireLogin) Wrap(next mantle.ActionFunc) mantle.ActionFunc {
//	    return func(c mantle.Context, args ...string) error {
//	        if c.Header("Authorization") == "" {
//	            return c.Error(http.StatusUnauthorized, "login required")
//	        }
//	        return next(c, args...)
//	    }
//	}
type Behavior interface {
	Wrap(next ActionFunc) ActionFunc
}

// HandlerFunc is the signature for transport-level handlers and middleware.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware runs outside the dispatch lifecycle and can short-circuit
// processing before path resolution happens.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors accumulated during dispatch.
type ErrorHandler func(Context, error) error
