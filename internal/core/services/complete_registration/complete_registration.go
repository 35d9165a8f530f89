package completeregistration

import (
	"context"
	"errors"
	c "memberd/internal/core/domain/common"
	e "memberd/internal/core/domain/errors"
	"memberd/internal/core/domain/logging"
	"memberd/internal/core/domain/member"
	"memberd/internal/core/services"
)

type Input struct {
	Email    c.Email
	Password member.RawPassword
}

type Result struct{}

type service struct {
	log              logging.Logger
	memberRepository member.Repository
	passwordHasher   member.PasswordHasher
}

func New(
	log logging.Logger,
	memberRepository member.Repository,
	passwordHasher member.PasswordHasher,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if memberRepository == nil {
		panic(e.NewNilArgumentError("memberRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	return &service{
		log:              log,
		memberRepository: memberRepository,
		passwordHasher:   passwordHasher,
	}
}

// Run sets the password hash for a verified member. Repeated calls
// overwrite the stored hash; there is no "already set" guard.
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

	if !m.Verified {
		return result, member.ErrMemberNotVerified
	}

	passwordHash, err := s.passwordHasher.HashPassword(input.Password)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	if err := s.memberRepository.SetPassword(ctx, input.Email, passwordHash); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, member.ErrMemberDoesNotExist) {
			return result, err
		}
		s.log.Error(
			ctx,
			"Could not set member password.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Member registration has been completed.",
		logging.Entry("memberId", m.ID),
		logging.Entry("email", m.Email),
	)
	return Result{}, nil
}
