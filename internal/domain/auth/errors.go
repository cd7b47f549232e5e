package auth

import "errors"

// Auth domain errors. Token issuance lives in the identity service; the
// engine only verifies and scopes.
var (
	ErrInvalidToken           = errors.New("invalid or missing token")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
