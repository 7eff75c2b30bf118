package authz

import "errors"

// Sentinel errors for role verification.
var (
	// ErrVerificationFailed is returned when the backing store could not
	// answer a role query.
	ErrVerificationFailed = errors.New("authz: role verification failed")
)
