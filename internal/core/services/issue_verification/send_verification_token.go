package issueverification

import (
	"context"
	"errors"
	"fmt"
	e "memberd/internal/core/domain/errors"
	"memberd/internal/core/domain/logging"
	"memberd/internal/core/domain/member"
	"memberd/internal/core/services"
)

type serviceWithVerificationTokenSending struct {
	log    logging.Logger
	sender member.VerificationTokenSender
	inner  services.Service[Input, Result]
}

func NewWithVerificationTokenSending(
	log logging.Logger,
	sender member.VerificationTokenSender,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithVerificationTokenSending{
		log:    log,
		sender: sender,
		inner:  inner,
	}
}

// Run persists first, then delivers. A delivery failure is reported as
// ErrTokenDeliveryFailed and never rolls back the stored token: the member
// can always re-initiate registration to get a new link.
func (s *serviceWithVerificationTokenSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Info(ctx, "Skip sending verification token.", logging.Entry("err", err))
		return result, err
	}

	err = s.sender.SendVerificationToken(ctx, result.Member, result.Token, result.ExpiresAt)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send verification token.",
			logging.Entry("memberId", result.Member.ID),
			logging.Entry("email", result.Member.Email),
			logging.Entry("err", err),
		)
		return result, fmt.Errorf("%w: %v", member.ErrTokenDeliveryFailed, err)
	}

	s.log.Info(
		ctx,
		"Verification token has been sent to the member.",
		logging.Entry("memberId", result.Member.ID),
		logging.Entry("email", result.Member.Email),
	)
	return result, nil
}
