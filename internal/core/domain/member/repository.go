package member

import (
	"context"
	c "memberd/internal/core/domain/common"
	"time"
)

type UpsertMemberInput struct {
	Name        Name
	Email       c.Email
	DateOfBirth c.Optional[DateOfBirth]
	TokenHash   TokenHash
	TokenExpiry time.Time
	CreatedAt   time.Time
}

// Repository persists members keyed by unique email.
//
// UpsertByEmail must be atomic: it inserts a new record or overwrites the
// mutable fields of an existing one (name, date of birth, token hash, token
// expiry) and resets Verified to false, leaving ID and CreatedAt untouched.
type Repository interface {
	UpsertByEmail(ctx context.Context, input UpsertMemberInput) (Member, error)
	GetByEmail(ctx context.Context, email c.Email) (Member, error)
	// Verify marks the member verified and clears the outstanding token.
	Verify(ctx context.Context, email c.Email) (Member, error)
	SetPassword(ctx context.Context, email c.Email, password PasswordHash) error
	// ListVerified returns verified members ordered by creation time,
	// most recent first.
	ListVerified(ctx context.Context) ([]Member, error)
}
