package member

import (
	"crypto/subtle"
	"fmt"
	c "memberd/internal/core/domain/common"
	e "memberd/internal/core/domain/errors"
	"time"
)

type ID int64

type Name string

// DateOfBirth is free-form user input and is never parsed.
type DateOfBirth string

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

// VerificationToken is the raw secret delivered to the user by email.
// It is never persisted; only its hash is.
type VerificationToken string

func (t VerificationToken) String() string {
	return "***"
}

type TokenHash string

// Matches compares two hashes in constant time.
func (h TokenHash) Matches(other TokenHash) bool {
	return subtle.ConstantTimeCompare([]byte(h), []byte(other)) == 1
}

// Member is a single registration record, keyed by its unique email.
//
// A member moves through pending -> verified -> credentialed. Re-initiating
// registration puts the record back to pending with a fresh token and
// Verified forced to false; an already stored password hash is kept so that
// a third party re-submitting the email cannot wipe an existing credential.
type Member struct {
	ID           ID
	Name         Name
	Email        c.Email
	DateOfBirth  c.Optional[DateOfBirth]
	Verified     bool
	PasswordHash c.Optional[PasswordHash]
	TokenHash    c.Optional[TokenHash]
	TokenExpiry  c.Optional[time.Time]
	CreatedAt    time.Time
}

func (m *Member) Validate() error {
	if m.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for member %d", m.ID))
	}
	if m.Verified && m.TokenHash.IsPresent {
		return e.NewInvalidStateError(
			fmt.Sprintf("member %d is verified but still has an outstanding token", m.ID),
		)
	}
	if m.TokenHash.IsPresent != m.TokenExpiry.IsPresent {
		return e.NewInvalidStateError(
			fmt.Sprintf("token hash and token expiry must be set together for member %d", m.ID),
		)
	}
	return nil
}

func (m *Member) HasPendingVerification() bool {
	return m.TokenHash.IsPresent
}

func (m *Member) IsCredentialed() bool {
	return m.Verified && m.PasswordHash.IsPresent
}
