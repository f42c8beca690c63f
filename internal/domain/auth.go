package domain

import "time"

// TokenIssuer issues signed tokens for a subject.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}
