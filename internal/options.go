package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/mantle/pkg/logger"
)

// Option configures the application.
type Option func(*App)

// WithControllers registers controllers that declare actions.
// Each controller's Actions method is called once during New.
func WithControllers(ctrls ...Controller) Option {
	return func(a *App) {
		a.controllers = append(a.controllers, ctrls...)
	}
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided, outside the dispatch
// lifecycle.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithBehavior binds a behavior to a tag that Action(...) attribute tags
// may reference. Registering an action with an unbound tag is a
// configuration error.
//
// Example:
//
//	mantle.WithBehavior("auth", behaviors.RequireLogin{}),
//	// then on an action: r.Action("edit", ctrl.edit, "Local", "Action(auth)")
func WithBehavior(tag string, b Behavior) Option {
	return func(a *App) {
		a.behaviors[tag] = b
	}
}

// WithAuthorizer sets the role-verification collaborator consulted by the
// permission gate. Without one, any non-empty role requirement is denied.
func WithAuthorizer(az Authorizer) Option {
	return func(a *App) {
		a.authorizer = az
	}
}

// WithSubjectFunc sets how the authorization subject is extracted from the
// request context (session user, token owner). Defaults to an empty
// subject.
func WithSubjectFunc(fn SubjectFunc) Option {
	return func(a *App) {
		a.subject = fn
	}
}

// WithDispatchTable merges a declarative attribute table into controller
// registrations. Keys are reverse paths ("namespace/name"); values are
// raw attribute tags appended after the controller's own tags.
// See pkg/dispatchcfg for loading the table from YAML.
func WithDispatchTable(table map[string][]string) Option {
	return func(a *App) {
		for reverse, tags := range table {
			key := strings.Trim(reverse, "/")
			a.extraTags[key] = append(a.extraTags[key], tags...)
		}
	}
}

// WithErrorHandler sets a custom error handler for dispatch errors.
// Called when the request accumulated errors or resolution failed.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithLogger creates a logger with a component name and optional
// extractors. The component name is added to every log entry.
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With(slog.String("component", component))
	}
}

// WithCustomLogger sets a preconfigured application logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled. Files are served with default cache
// headers.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	mantle.WithStaticFiles("/static/", assets, "public"),
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}

		fileServer := http.FileServerFS(subFS)

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Block directory listings
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")

			fileServer.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler, pattern})
	}
}

// WithHealthChecks enables health check endpoints with optional
// configuration.
// Liveness (/health/live): always returns OK if the process is running.
// Readiness (/health/ready): runs all configured checks in parallel.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}
