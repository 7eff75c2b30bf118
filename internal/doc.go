// Package internal provides the core types and implementation for the
// mantle framework.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/mantle" instead, which re-exports the public
// API.
//
// # Core Types
//
//   - App: owns the dispatch registry and outer HTTP mount, drives the
//     per-request lifecycle and graceful shutdown
//   - Registry: the dispatch tables, one per matching strategy, plus
//     private lifecycle actions and the reverse-path index
//   - ActionRecord: immutable descriptor of one registered action
//   - Context: request/response access plus dispatch state (positional
//     args, snippets, accumulated errors, granted roles)
//   - Lifecycle: the begin/auto/action/end phase runner
//   - Gate: role-requirement checks with per-request memoization
package internal
