package confirmverification

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
	Email c.Email
	Token member.VerificationToken
}

type Result struct {
	Member member.Member
}

type service struct {
	log              logging.Logger
	memberRepository member.Repository
	tokenHasher      member.VerificationTokenHasher
	now              func() time.Time
}

func New(
	log logging.Logger,
	memberRepository member.Repository,
	tokenHasher member.VerificationTokenHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if memberRepository == nil {
		panic(e.NewNilArgumentError("memberRepository"))
	}
	if tokenHasher == nil {
		panic(e.NewNilArgumentError("tokenHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:              log,
		memberRepository: memberRepository,
		tokenHasher:      tokenHasher,
		now:              now,
	}
}

// Run checks expiry before the hash, so a stale token always reports
// ErrTokenExpired no matter what was submitted. A token that has already
// been used fails with ErrTokenMismatch because the stored hash is cleared
// on the first successful confirmation.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	m, err := s.memberRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, member.ErrMemberDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get member by email.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	if m.TokenExpiry.IsPresent && s.now().After(m.TokenExpiry.Value) {
		return result, member.ErrTokenExpired
	}

	tokenHash := s.tokenHasher.HashVerificationToken(input.Token)
	if !m.TokenHash.IsPresent || !m.TokenHash.Value.Matches(tokenHash) {
		return result, member.ErrTokenMismatch
	}

	verifiedMember, err := s.memberRepository.Verify(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not verify member.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Member has been verified.",
		logging.Entry("memberId", verifiedMember.ID),
		logging.Entry("email", verifiedMember.Email),
	)
	return Result{Member: verifiedMember}, nil
}
