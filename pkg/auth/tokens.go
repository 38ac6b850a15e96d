package auth

import (
	"context"

	"github.com/google/uuid"
)

// TokenIssuer abstracts token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenIssuer interface {
	Issue(ctx context.Context, subject uuid.UUID) (string, error)
}

// PasswordHasher hashes passwords one way and checks candidates against a hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
