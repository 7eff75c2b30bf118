package internal

import (
	"context"
	"log/slog"
)

// Authorizer verifies that a subject holds a set of roles. Implementations
// live outside the dispatch core (see pkg/authz); the gate only ever asks
// about roles not yet granted for the request.
type Authorizer interface {
	// Authorize reports whether the subject holds every listed role.
	// An error counts as a denial but is logged separately.
	Authorize(ctx context.Context, subject string, roles []string) (bool, error)
}

// SubjectFunc extracts the authorization subject (user ID, token owner)
// from the request context.
type SubjectFunc func(c Context) string

// Gate performs role-requirement checks with per-request memoization of
// granted roles. Roles already granted are never re-verified; only the
// delta reaches the authorizer.
type Gate struct {
	authorizer Authorizer
	subject    SubjectFunc
	logger     *slog.Logger
}

// NewGate creates a permission gate. With a nil authorizer any non-empty
// role requirement is denied.
func NewGate(authorizer Authorizer, subject SubjectFunc, logger *slog.Logger) *Gate {
	return &Gate{authorizer: authorizer, subject: subject, logger: logger}
}

// checkRoles reports whether every required role is granted for the
// request. On success the newly verified roles merge into the granted set;
// on failure the set is left untouched.
func (g *Gate) checkRoles(c *requestContext, required []string) bool {
	delta := make([]string, 0, len(required))
	for _, role := range required {
		if _, ok := c.granted[role]; !ok {
			delta = append(delta, role)
		}
	}
	if len(delta) == 0 {
		return true
	}

	if g.authorizer == nil {
		return false
	}

	subject := ""
	if g.subject != nil {
		subject = g.subject(c)
	}

	ok, err := g.authorizer.Authorize(c.Context(), subject, delta)
	if err != nil {
		g.logger.ErrorContext(c, "role verification failed",
			slog.String("subject", subject),
			slog.Any("roles", delta),
			slog.Any("error", err),
		)
		return false
	}
	if !ok {
		return false
	}

	for _, role := range delta {
		c.granted[role] = struct{}{}
	}
	return true
}
