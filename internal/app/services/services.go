package services

import (
	"memberd/internal/app/deps"
	"memberd/internal/core/services"
	completeregistration "memberd/internal/core/services/complete_registration"
	confirmverification "memberd/internal/core/services/confirm_verification"
	issueverification "memberd/internal/core/services/issue_verification"
	listmembers "memberd/internal/core/services/list_members"
)

type Services struct {
	IssueVerification    services.Service[issueverification.Input, issueverification.Result]
	ConfirmVerification  services.Service[confirmverification.Input, confirmverification.Result]
	CompleteRegistration services.Service[completeregistration.Input, completeregistration.Result]
	ListMembers          services.Service[listmembers.Input, listmembers.Result]
}

func InitServices(deps *deps.Deps) *Services {
	issueVerification := issueverification.NewWithVerificationTokenSending(
		deps.Logger,
		deps.VerificationTokenSender,
		issueverification.New(
			deps.Logger,
			deps.MemberRepository,
			deps.VerificationTokenGenerator,
			deps.VerificationTokenHasher,
			deps.Config.VerificationTokenValidDuration,
			deps.Now,
		),
	)

	confirmVerification := confirmverification.New(
		deps.Logger,
		deps.MemberRepository,
		deps.VerificationTokenHasher,
		deps.Now,
	)

	completeRegistration := completeregistration.New(
		deps.Logger,
		deps.MemberRepository,
		deps.PasswordHasher,
	)

	listMembers := listmembers.New(deps.Logger, deps.MemberRepository)

	return &Services{
		IssueVerification:    issueVerification,
		ConfirmVerification:  confirmVerification,
		CompleteRegistration: completeRegistration,
		ListMembers:          listMembers,
	}
}
