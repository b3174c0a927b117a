package auth

import "context"

// Identity is the verified principal extracted from a bearer credential.
type Identity struct {
	UID      string
	Email    string
	Name     string
	PhotoURL string
}

// TokenVerifier verifies an opaque bearer credential and returns the
// authenticated identity, or fails. Verification is read-only; a failure
// rejects the request before any storage access.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
