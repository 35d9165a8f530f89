package listmembers

import (
	"context"
	"fmt"
	c "memberd/internal/core/domain/common"
	"memberd/internal/core/domain/logging"
	"memberd/internal/core/domain/member"
	"memberd/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger           *logging.FakeLogger
	MemberRepository *member.FakeMemberRepository
	Service          services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.MemberRepository = member.NewFakeMemberRepository()
	suite.Service = New(suite.Logger, suite.MemberRepository)
}

func TestListMembersService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createMember(ix int, createdAt time.Time, verified bool) member.Member {
	email := c.NewEmail(fmt.Sprintf("member-%d@x.com", ix))
	m, err := s.MemberRepository.UpsertByEmail(context.Background(), member.UpsertMemberInput{
		Name:        member.Name(fmt.Sprintf("Member %d", ix)),
		Email:       email,
		TokenHash:   member.TokenHash("hash"),
		TokenExpiry: createdAt.Add(time.Hour),
		CreatedAt:   createdAt,
	})
	s.Require().Nil(err)
	if verified {
		m, err = s.MemberRepository.Verify(context.Background(), email)
		s.Require().Nil(err)
	}
	return m
}

func (s *testSuite) TestSuccessOnlyVerifiedMembersReturned() {
	verified := s.createMember(1, Now, true)
	s.createMember(2, Now.Add(time.Minute), false)

	result, err := s.Service.Run(context.Background(), Input{})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(1, len(result.Members))
	assert.Equal(verified.ID, result.Members[0].ID)
	for _, m := range result.Members {
		assert.True(m.Verified)
	}
}

func (s *testSuite) TestSuccessOrderedByCreatedAtDesc() {
	oldest := s.createMember(1, Now.Add(-2*time.Hour), true)
	newest := s.createMember(2, Now, true)
	middle := s.createMember(3, Now.Add(-time.Hour), true)

	result, err := s.Service.Run(context.Background(), Input{})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(3, len(result.Members))
	assert.Equal(newest.ID, result.Members[0].ID)
	assert.Equal(middle.ID, result.Members[1].ID)
	assert.Equal(oldest.ID, result.Members[2].ID)
}

func (s *testSuite) TestSuccessEmptyList() {
	result, err := s.Service.Run(context.Background(), Input{})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(0, len(result.Members))
}

func (s *testSuite) TestRepositoryError() {
	s.MemberRepository.ReturnError = true

	_, err := s.Service.Run(context.Background(), Input{})

	s.Require().NotNil(err)
}
