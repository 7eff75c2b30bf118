package internal

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mantle/pkg/health"
	"github.com/dmitrymomot/mantle/pkg/logger"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App orchestrates the application lifecycle: it owns the dispatch
// registry, the permission gate and the outer HTTP mount, and runs the
// per-request phase sequence. App is immutable after New.
type App struct {
	router       chi.Router
	registry     *Registry
	lifecycle    *Lifecycle
	gate         *Gate
	logger       *slog.Logger
	errorHandler ErrorHandler
	authorizer   Authorizer
	subject      SubjectFunc
	middlewares  []Middleware
	controllers  []Controller
	behaviors    map[string]Behavior
	extraTags    map[string][]string
	healthConfig *healthConfig
	staticRoutes []staticRoute
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options and registers
// every controller. Configuration errors (malformed attribute tags,
// unknown behavior tags, invalid patterns) are fatal and abort assembly.
//
// Example:
//
//	app, err := mantle.New(
//	    mantle.WithMiddleware(middlewares.RequestID()),
//	    mantle.WithControllers(
//	        controllers.NewRoot(repo),
//	        controllers.NewBooks(repo),
//	    ),
//	)
func New(opts ...Option) (*App, error) {
	a := &App{
		router:    chi.NewRouter(),
		logger:    logger.NewNope(),
		behaviors: make(map[string]Behavior),
		extraTags: make(map[string][]string),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.registry = NewRegistry(a.behaviors, a.extraTags)
	a.gate = NewGate(a.authorizer, a.subject, a.logger)
	a.lifecycle = NewLifecycle(a.registry, a.logger)

	for _, ctrl := range a.controllers {
		if err := a.registry.RegisterController(ctrl); err != nil {
			return nil, err
		}
	}

	a.setupRoutes()
	a.logger.Debug("dispatch tables registered", slog.String("tables", a.registry.DebugString()))
	return a, nil
}

// Registry returns the dispatch registry for diagnostics and re-dispatch.
func (a *App) Registry() *Registry {
	return a.registry
}

// Handler returns the root http.Handler, for tests and external servers.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	err := app.Run(":8080", mantle.Logger(slog))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes configures the outer router: static mounts and health
// endpoints take precedence, everything else falls through to the
// dispatcher.
func (a *App) setupRoutes() {
	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks))
	}

	// Middleware wraps the dispatcher directly; the first registered
	// middleware is the outermost.
	h := a.dispatch
	mw := slices.Clone(a.middlewares)
	slices.Reverse(mw)
	for _, m := range mw {
		h = m(h)
	}
	a.router.NotFound(a.wrapHandler(h))
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's
// error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger, a.registry, a.gate)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// dispatch resolves the request path and drives the lifecycle. The end
// phase runs even when an earlier phase halted the sequence; accumulated
// errors surface through the error handler afterwards.
func (a *App) dispatch(c Context) error {
	rc, ok := c.(*requestContext)
	if !ok {
		return ErrInternal("unsupported context implementation")
	}

	res, err := a.registry.Resolve(rc.Path())
	if err != nil {
		a.logger.InfoContext(rc, "resolution failed",
			slog.String("path", rc.Path()),
			slog.Any("error", err),
		)
		rc.AddError(err)
		return err
	}
	rc.setResolution(res)

	a.logger.DebugContext(rc, "action resolved",
		slog.String("action", res.Action.ReversePath()),
		slog.String("label", res.Label),
		slog.Int("args", len(res.Args)),
	)

	a.lifecycle.Run(rc)
	a.lifecycle.Finalize(rc)

	if errs := rc.Errors(); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// handleError renders errors using the configured error handler, falling
// back to a plain status-text response. A response already written by an
// action is left alone.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr == nil {
			return
		}
	}
	status := http.StatusInternalServerError
	for _, e := range splitJoined(err) {
		if s := statusFor(e); s != http.StatusInternalServerError {
			status = s
			break
		}
	}
	http.Error(c.Response(), http.StatusText(status), status)
}

// splitJoined unwraps errors.Join results so the most specific dispatch
// error decides the response status.
func splitJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during the readiness probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
