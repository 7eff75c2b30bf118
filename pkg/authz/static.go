package authz

import (
	"context"
	"slices"
)

// Static verifies roles against an in-memory table of subject -> roles.
// The table is fixed at construction; use it for tests and small
// deployments with a config-defined role model.
type Static struct {
	roles map[string]map[string]struct{}
}

// NewStatic creates a static verifier from a subject -> roles table.
func NewStatic(table map[string][]string) *Static {
	roles := make(map[string]map[string]struct{}, len(table))
	for subject, list := range table {
		set := make(map[string]struct{}, len(list))
		for _, role := range list {
			set[role] = struct{}{}
		}
		roles[subject] = set
	}
	return &Static{roles: roles}
}

// Authorize reports whether the subject holds every listed role.
// Unknown subjects hold no roles.
func (s *Static) Authorize(_ context.Context, subject string, roles []string) (bool, error) {
	held := s.roles[subject]
	for _, role := range roles {
		if _, ok := held[role]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// Roles returns a sorted copy of the subject's roles, for diagnostics.
func (s *Static) Roles(subject string) []string {
	held := s.roles[subject]
	out := make([]string, 0, len(held))
	for role := range held {
		out = append(out, role)
	}
	slices.Sort(out)
	return out
}

// DenyAll refuses every non-empty role requirement. It is the explicit
// form of the gate's default posture.
type DenyAll struct{}

// Authorize denies unless no roles are required.
func (DenyAll) Authorize(_ context.Context, _ string, roles []string) (bool, error) {
	return len(roles) == 0, nil
}
