package confirmverification

import (
	"context"
	c "memberd/internal/core/domain/common"
	"memberd/internal/core/domain/logging"
	"memberd/internal/core/domain/member"
	"memberd/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	NAME  = "Alice"
	EMAIL = "alice@x.com"
	TOKEN = "test-verification-token"
)

var Now time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger           *logging.FakeLogger
	MemberRepository *member.FakeMemberRepository
	TokenHasher      *member.FakeVerificationTokenHasher
	Service          services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.MemberRepository = member.NewFakeMemberRepository()
	suite.TokenHasher = member.NewFakeVerificationTokenHasher()
	suite.Service = New(
		suite.Logger,
		suite.MemberRepository,
		suite.TokenHasher,
		func() time.Time { return Now },
	)
}

func TestConfirmVerificationService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createPendingMember(rawEmail string, token string, expiry time.Time) member.Member {
	m, err := s.MemberRepository.UpsertByEmail(context.Background(), member.UpsertMemberInput{
		Name:        member.Name(NAME),
		Email:       c.NewEmail(rawEmail),
		TokenHash:   s.TokenHasher.HashVerificationToken(member.VerificationToken(token)),
		TokenExpiry: expiry,
		CreatedAt:   Now,
	})
	s.Require().Nil(err)
	return m
}

func (s *testSuite) TestSuccessMemberVerified() {
	s.createPendingMember(EMAIL, TOKEN, Now.Add(time.Hour))

	result, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail(EMAIL), Token: member.VerificationToken(TOKEN)},
	)

	assert := s.Require()
	assert.Nil(err)
	assert.True(result.Member.Verified)
	assert.False(result.Member.TokenHash.IsPresent)
	assert.False(result.Member.TokenExpiry.IsPresent)
}

func (s *testSuite) TestSecondConfirmFailsWithTokenMismatch() {
	s.createPendingMember(EMAIL, TOKEN, Now.Add(time.Hour))

	input := Input{Email: c.NewEmail(EMAIL), Token: member.VerificationToken(TOKEN)}
	_, err := s.Service.Run(context.Background(), input)
	s.Require().Nil(err)

	_, err = s.Service.Run(context.Background(), input)

	assert := s.Require()
	assert.ErrorIs(err, member.ErrTokenMismatch)

	m, getErr := s.MemberRepository.GetByEmail(context.Background(), c.NewEmail(EMAIL))
	assert.Nil(getErr)
	assert.True(m.Verified)
}

func (s *testSuite) TestWrongToken() {
	s.createPendingMember(EMAIL, TOKEN, Now.Add(time.Hour))

	_, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail(EMAIL), Token: member.VerificationToken("wrong-token")},
	)

	assert := s.Require()
	assert.ErrorIs(err, member.ErrTokenMismatch)

	m, getErr := s.MemberRepository.GetByEmail(context.Background(), c.NewEmail(EMAIL))
	assert.Nil(getErr)
	assert.False(m.Verified)
	assert.True(m.HasPendingVerification())
}

func (s *testSuite) TestExpiredTokenFailsRegardlessOfHash() {
	s.createPendingMember(EMAIL, TOKEN, Now.Add(-time.Minute))

	cases := []struct {
		id    string
		token string
	}{
		{id: "correct token", token: TOKEN},
		{id: "wrong token", token: "wrong-token"},
	}

	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			_, err := s.Service.Run(
				context.Background(),
				Input{Email: c.NewEmail(EMAIL), Token: member.VerificationToken(testcase.token)},
			)
			s.Require().ErrorIs(err, member.ErrTokenExpired)
		})
	}
}

func (s *testSuite) TestMemberDoesNotExist() {
	_, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail("unknown@x.com"), Token: member.VerificationToken(TOKEN)},
	)

	s.Require().ErrorIs(err, member.ErrMemberDoesNotExist)
}

func (s *testSuite) TestEmailNormalization() {
	s.createPendingMember(" Foo@Bar.com ", TOKEN, Now.Add(time.Hour))

	result, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail("foo@bar.com"), Token: member.VerificationToken(TOKEN)},
	)

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(c.Email("foo@bar.com"), result.Member.Email)
	assert.True(result.Member.Verified)
}

func (s *testSuite) TestReRegistrationInvalidatesEarlierToken() {
	s.createPendingMember(EMAIL, TOKEN, Now.Add(time.Hour))
	s.createPendingMember(EMAIL, "second-token", Now.Add(time.Hour))

	_, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail(EMAIL), Token: member.VerificationToken(TOKEN)},
	)
	s.Require().ErrorIs(err, member.ErrTokenMismatch)

	result, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail(EMAIL), Token: member.VerificationToken("second-token")},
	)
	s.Require().Nil(err)
	s.Require().True(result.Member.Verified)
}

func (s *testSuite) TestRepositoryError() {
	s.MemberRepository.ReturnError = true

	_, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail(EMAIL), Token: member.VerificationToken(TOKEN)},
	)

	s.Require().NotNil(err)
}
