package issueverification

import (
	"context"
	"errors"
	c "memberd/internal/core/domain/common"
	e "memberd/internal/core/domain/errors"
	"memberd/internal/core/domain/logging"
	"memberd/internal/core/domain/member"
	"memberd/internal/core/services"
	"time"
)

type Input struct {
	Name        member.Name
	Email       c.Email
	DateOfBirth c.Optional[member.DateOfBirth]
}

type Result struct {
	Member    member.Member
	Token     member.VerificationToken
	ExpiresAt time.Time
}

type service struct {
	log                logging.Logger
	memberRepository   member.Repository
	tokenGenerator     member.VerificationTokenGenerator
	tokenHasher        member.VerificationTokenHasher
	tokenValidDuration time.Duration
	now                func() time.Time
}

func New(
	log logging.Logger,
	memberRepository member.Repository,
	tokenGenerator member.VerificationTokenGenerator,
	tokenHasher member.VerificationTokenHasher,
	tokenValidDuration time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if memberRepository == nil {
		panic(e.NewNilArgumentError("memberRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if tokenHasher == nil {
		panic(e.NewNilArgumentError("tokenHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		memberRepository:   memberRepository,
		tokenGenerator:     tokenGenerator,
		tokenHasher:        tokenHasher,
		tokenValidDuration: tokenValidDuration,
		now:                now,
	}
}

// Run creates or re-initializes a registration: a fresh token is issued,
// only its hash is persisted, and the record always goes back to the
// pending state. The raw token is returned to the caller for delivery.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Name == "" || input.Email == "" {
		return result, member.ErrInvalidInput
	}

	token := s.tokenGenerator.GenerateVerificationToken()
	expiresAt := s.now().Add(s.tokenValidDuration)

	upsertedMember, err := s.memberRepository.UpsertByEmail(ctx, member.UpsertMemberInput{
		Name:        input.Name,
		Email:       input.Email,
		DateOfBirth: input.DateOfBirth,
		TokenHash:   s.tokenHasher.HashVerificationToken(token),
		TokenExpiry: expiresAt,
		CreatedAt:   s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not upsert member.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Verification has been initiated for the member.",
		logging.Entry("memberId", upsertedMember.ID),
		logging.Entry("email", upsertedMember.Email),
		logging.Entry("expiresAt", expiresAt),
	)
	return Result{Member: upsertedMember, Token: token, ExpiresAt: expiresAt}, nil
}
