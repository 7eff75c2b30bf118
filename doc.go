// Package mantle provides a controller-oriented request dispatch
// framework: an application bootstrapper, a request context, and an
// attribute-driven action dispatch system with a fixed per-request
// lifecycle and role-based authorization gating.
//
// Actions are declared with attribute tags that bind them to exact
// paths, regex patterns or behavior hooks; the resolver walks decreasing
// path prefixes and consults each matching strategy in priority order,
// so the longest registered prefix wins and leftover segments become
// positional arguments.
//
// # Quick Start
//
// Create an application with mantle.New(), register controllers, and
// call Run() to start the HTTP server:
//
//	app, err := mantle.New(
//	    mantle.WithControllers(controllers.NewBooks(repo)),
//	    mantle.WithMiddleware(middlewares.RequestID()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Controllers
//
// Controllers implement the [Controller] interface to declare actions:
//
//	type BooksController struct {
//	    repo *repository.Queries
//	}
//
//	func (ctrl *BooksController) Namespace() string { return "books" }
//
//	func (ctrl *BooksController) Actions(r mantle.Registrar) {
//	    r.Action("list", ctrl.list, "Path(/books)")
//	    r.Action("show", ctrl.show, "Local")               // -> books/show
//	    r.Action("find", ctrl.find, `LocalRegex((\d+))`)   // -> ^books/.*?(\d+)
//	    r.Action("begin", ctrl.begin)                      // lifecycle phase
//	}
//
// Requests run through a fixed phase sequence: begin, the auto chain
// (root namespace to leaf), the resolved action, then end. A phase that
// fails halts the rest of the sequence; end still runs for cleanup.
//
// # Authorization
//
// Actions gated with Roles(...) tags only execute once the permission
// gate grants every required role. Granted roles are memoized per
// request; only roles not yet granted reach the configured
// [Authorizer] (see pkg/authz).
package mantle
