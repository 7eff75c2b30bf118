// Package middlewares provides transport-level middleware for mantle
// applications: request ID assignment, panic recovery at the dispatch
// boundary, and request logging.
//
// Middleware runs outside the dispatch lifecycle; it wraps the whole
// resolve-and-run pipeline and can short-circuit before path resolution.
package middlewares
