package member

import (
	"context"
	"time"
)

type VerificationTokenGenerator interface {
	GenerateVerificationToken() VerificationToken
}

type VerificationTokenHasher interface {
	HashVerificationToken(token VerificationToken) TokenHash
}

// VerificationTokenSender delivers the raw token to the member, typically
// as a link embedded in an email.
type VerificationTokenSender interface {
	SendVerificationToken(ctx context.Context, m Member, token VerificationToken, expiresAt time.Time) error
}
