package mantle

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/dmitrymomot/mantle/internal"
	"github.com/dmitrymomot/mantle/pkg/health"
	"github.com/dmitrymomot/mantle/pkg/logger"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It owns the dispatch registry, the permission gate and the HTTP mount.
	App = internal.App

	// Context provides request/response access and dispatch state.
	Context = internal.Context

	// Controller declares dispatchable actions under a namespace.
	Controller = internal.Controller

	// Registrar collects action registrations from a controller.
	Registrar = internal.Registrar

	// ActionFunc is the signature for dispatched actions.
	ActionFunc = internal.ActionFunc

	// ActionRecord is the immutable descriptor of one registered action.
	ActionRecord = internal.ActionRecord

	// Behavior wraps an action's execution with before/after logic.
	Behavior = internal.Behavior

	// HandlerFunc is the signature for transport-level handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler renders errors accumulated during dispatch.
	ErrorHandler = internal.ErrorHandler

	// Authorizer verifies that a subject holds a set of roles.
	Authorizer = internal.Authorizer

	// SubjectFunc extracts the authorization subject from the context.
	SubjectFunc = internal.SubjectFunc

	// Registry owns the dispatch tables.
	Registry = internal.Registry

	// Resolution is the outcome of path resolution.
	Resolution = internal.Resolution

	// DispatchType is one path-matching strategy.
	DispatchType = internal.DispatchType

	// TypeTable is one dispatch type's diagnostic listing.
	TypeTable = internal.TypeTable

	// Entry is one row of a dispatch type's diagnostic table.
	Entry = internal.Entry

	// Attributes maps an attribute kind to its ordered values.
	Attributes = internal.Attributes

	// HTTPError represents an HTTP error with rendering data.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// ConfigError is a startup-fatal configuration error.
	ConfigError = internal.ConfigError

	// PhaseError records a failure inside a lifecycle phase.
	PhaseError = internal.PhaseError

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// ResponseWriter wraps http.ResponseWriter with write tracking.
	ResponseWriter = internal.ResponseWriter

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// Sentinel errors re-exported from the dispatch core.
var (
	ErrUnknownResource     = internal.ErrUnknownResource
	ErrPrivateResource     = internal.ErrPrivateResource
	ErrAuthorizationDenied = internal.ErrAuthorizationDenied
)

// Constructors

// New creates a new application with the given options and registers
// every controller. Configuration errors are fatal and abort assembly.
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
	return internal.New(opts...)
}

// App options

// WithControllers registers controllers that declare actions.
func WithControllers(ctrls ...Controller) Option {
	return internal.WithControllers(ctrls...)
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithBehavior binds a behavior to a tag referenced by Action(...)
// attribute tags.
func WithBehavior(tag string, b Behavior) Option {
	return internal.WithBehavior(tag, b)
}

// WithAuthorizer sets the role-verification collaborator for the
// permission gate. Without one, any non-empty role requirement is denied.
func WithAuthorizer(az Authorizer) Option {
	return internal.WithAuthorizer(az)
}

// WithSubjectFunc sets how the authorization subject is extracted from
// the request context.
func WithSubjectFunc(fn SubjectFunc) Option {
	return internal.WithSubjectFunc(fn)
}

// WithDispatchTable merges a declarative attribute table into controller
// registrations. See pkg/dispatchcfg for loading tables from YAML.
func WithDispatchTable(table map[string][]string) Option {
	return internal.WithDispatchTable(table)
}

// WithErrorHandler sets a custom error handler for dispatch errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithLogger creates a logger with a component name and optional
// extractors. The component name is added to every log entry.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a preconfigured application logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithStaticFiles mounts a static file handler at the given pattern.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithHealthChecks enables health check endpoints with optional
// configuration.
//
// Example:
//
//	mantle.WithHealthChecks(
//	    mantle.WithReadinessCheck("roles", verifier.Healthcheck()),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// Health options

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the server runtime logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run before the server starts
// accepting connections.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a function to run during graceful shutdown.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// NewHTTPError creates a new HTTPError with the given status code and
// message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}
