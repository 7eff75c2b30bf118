package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"time"
)

// Context provides request/response access and dispatch state for one
// request. It also implements context.Context by delegating to the
// underlying request context.
//
// A Context is created per request, mutated throughout the lifecycle and
// discarded once the response is finalized. It is not safe for use from
// multiple goroutines.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Method returns the request method.
	Method() string

	// Path returns the request path as received, before normalization.
	Path() string

	// Action returns the matched action, nil if resolution failed.
	Action() *ActionRecord

	// Namespace returns the matched action's namespace, "" if none.
	Namespace() string

	// Args returns the positional arguments produced by resolution.
	Args() []string

	// Arg returns the positional argument at index i, "" if out of range.
	Arg(i int) string

	// Snippets returns the regex capture groups, empty for exact matches.
	Snippets() []string

	// MatchLabel identifies the winning registration: matched path or
	// pattern source.
	MatchLabel() string

	// Query returns the query parameter value by name.
	Query(name string) string

	// QueryDefault returns the query parameter value or a default.
	QueryDefault(name, defaultValue string) string

	// Form returns the form value by name.
	// Calls ParseForm internally on first access.
	Form(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to the given URL with the given status code.
	Redirect(code int, url string) error

	// Error creates and returns an HTTPError without writing a response.
	// Return it from the action to trigger the error handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Stop raises the short-circuit flag. The current phase finishes but
	// no further phase executes.
	Stop()

	// Stopped reports whether the short-circuit flag is raised.
	Stopped() bool

	// AddError appends an error to the request's error list.
	AddError(err error)

	// Errors returns the accumulated error list.
	Errors() []error

	// GrantedRoles returns a sorted copy of the roles granted so far.
	GrantedRoles() []string

	// CheckRoles reports whether every listed role is granted for this
	// request. Roles not yet granted are verified through the configured
	// authorizer and memoized on success.
	CheckRoles(roles ...string) bool

	// Forward executes another action by its reverse path with the given
	// positional arguments, sharing this context. The target's behavior
	// chain applies; its role requirements do not (the caller already
	// passed resolution).
	Forward(reversePath string, args ...string) error

	// Written reports whether the response has been written.
	Written() bool

	// ResponseWriter returns the wrapped response writer.
	ResponseWriter() *ResponseWriter

	// Set stores a request-scoped value.
	Set(key, value any)

	// Get retrieves a request-scoped value, nil if absent.
	Get(key any) any

	// Timings returns a copy of the recorded per-phase durations.
	Timings() map[string]time.Duration

	// Logger returns the request logger.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)
}

type requestContext struct {
	w        *ResponseWriter
	r        *http.Request
	logger   *slog.Logger
	registry *Registry
	gate     *Gate

	action   *ActionRecord
	args     []string
	snippets []string
	label    string

	stopped bool
	errs    []error
	granted map[string]struct{}
	timings map[string]time.Duration
	store   map[any]any
}

func newContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger, registry *Registry, gate *Gate) *requestContext {
	return &requestContext{
		w:        NewResponseWriter(w),
		r:        r,
		logger:   logger,
		registry: registry,
		gate:     gate,
		granted:  make(map[string]struct{}),
		timings:  make(map[string]time.Duration),
	}
}

// setResolution records the resolver's outcome on the context.
func (c *requestContext) setResolution(res Resolution) {
	c.action = res.Action
	c.args = res.Args
	c.snippets = res.Snippets
	c.label = res.Label
}

func (c *requestContext) Request() *http.Request {
	return c.r
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.w
}

func (c *requestContext) Context() context.Context {
	return c.r.Context()
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.r.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.r.Context().Done()
}

func (c *requestContext) Err() error {
	return c.r.Context().Err()
}

// Value consults the request-scoped store first so values placed with Set
// (request IDs, auth state) are visible to context extractors, then falls
// back to the underlying request context.
func (c *requestContext) Value(key any) any {
	if v, ok := c.store[key]; ok {
		return v
	}
	return c.r.Context().Value(key)
}

func (c *requestContext) Method() string {
	return c.r.Method
}

func (c *requestContext) Path() string {
	return c.r.URL.Path
}

func (c *requestContext) Action() *ActionRecord {
	return c.action
}

func (c *requestContext) Namespace() string {
	if c.action == nil {
		return ""
	}
	return c.action.Namespace()
}

func (c *requestContext) Args() []string {
	return c.args
}

func (c *requestContext) Arg(i int) string {
	if i < 0 || i >= len(c.args) {
		return ""
	}
	return c.args[i]
}

func (c *requestContext) Snippets() []string {
	return c.snippets
}

func (c *requestContext) MatchLabel() string {
	return c.label
}

func (c *requestContext) Query(name string) string {
	return c.r.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *requestContext) Form(name string) string {
	return c.r.FormValue(name)
}

func (c *requestContext) Header(name string) string {
	return c.r.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.w.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.w.WriteHeader(code)
	return json.NewEncoder(c.w).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.w.WriteHeader(code)
	_, err := c.w.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.w.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.w, c.r, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Stop() {
	c.stopped = true
}

func (c *requestContext) Stopped() bool {
	return c.stopped
}

func (c *requestContext) AddError(err error) {
	if err != nil {
		c.errs = append(c.errs, err)
	}
}

func (c *requestContext) Errors() []error {
	return c.errs
}

func (c *requestContext) GrantedRoles() []string {
	return slices.Sorted(maps.Keys(c.granted))
}

func (c *requestContext) CheckRoles(roles ...string) bool {
	if len(roles) == 0 {
		return true
	}
	if c.gate == nil {
		return false
	}
	return c.gate.checkRoles(c, roles)
}

// failed reports whether the request should short-circuit: either a phase
// raised the stop flag or the error list is non-empty.
func (c *requestContext) failed() bool {
	return c.stopped || len(c.errs) > 0
}

func (c *requestContext) Forward(reversePath string, args ...string) error {
	rec := c.registry.ByReversePath(reversePath)
	if rec == nil {
		return fmt.Errorf("%w: forward target %q", ErrUnknownResource, reversePath)
	}
	return rec.Execute(c, args...)
}

func (c *requestContext) Written() bool {
	return c.w.Written()
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.w
}

func (c *requestContext) Set(key, value any) {
	if c.store == nil {
		c.store = make(map[any]any)
	}
	c.store[key] = value
}

func (c *requestContext) Get(key any) any {
	return c.store[key]
}

func (c *requestContext) recordTiming(phase string, d time.Duration) {
	c.timings[phase] = d
}

func (c *requestContext) Timings() map[string]time.Duration {
	out := make(map[string]time.Duration, len(c.timings))
	maps.Copy(out, c.timings)
	return out
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

// The Log helpers pass the Context itself so logger extractors can see
// request-scoped values placed with Set.

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c, msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c, msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c, msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c, msg, attrs...)
}
