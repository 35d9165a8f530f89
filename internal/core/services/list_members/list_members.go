package listmembers

import (
	"context"
	e "memberd/internal/core/domain/errors"
	"memberd/internal/core/domain/logging"
	"memberd/internal/core/domain/member"
	"memberd/internal/core/services"
)

type Input struct{}

type Result struct {
	Members []member.Member
}

type service struct {
	log              logging.Logger
	memberRepository member.Repository
}

func New(
	log logging.Logger,
	memberRepository member.Repository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if memberRepository == nil {
		panic(e.NewNilArgumentError("memberRepository"))
	}
	return &service{
		log:              log,
		memberRepository: memberRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	members, err := s.memberRepository.ListVerified(ctx)
	if err != nil {
		s.log.Error(ctx, "Could not list verified members.", logging.Entry("err", err))
		return result, err
	}
	return Result{Members: members}, nil
}
