// Package health provides HTTP handlers for liveness and readiness probes.
//
// LivenessHandler is an always-OK endpoint reporting process liveness.
// ReadinessHandler runs a set of named checks in parallel under a shared
// timeout and reports aggregate service readiness. Responses are plain
// text by default; JSON is returned when requested via the Accept header
// or ?format=json.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "redis": redisConn.Healthcheck(),
//	}))
package health
