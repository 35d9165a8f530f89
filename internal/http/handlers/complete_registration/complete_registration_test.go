package completeregistration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	c "memberd/internal/core/domain/common"
	"memberd/internal/core/domain/member"
	service "memberd/internal/core/services/complete_registration"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	return result, nil
}

func TestCompleteRegistrationHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "success",
			body:           `{"email": "alice@x.com", "password": "secret"}`,
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				Email:    c.Email("alice@x.com"),
				Password: member.RawPassword("secret"),
			},
		},
		{
			id:             "email is normalized",
			body:           `{"email": " Alice@X.com ", "password": "secret"}`,
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				Email:    c.Email("alice@x.com"),
				Password: member.RawPassword("secret"),
			},
		},
		{
			id:             "invalid json",
			body:           `{"email": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing email",
			body:           `{"password": "secret"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing password",
			body:           `{"email": "alice@x.com"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "password too short",
			body:           `{"email": "alice@x.com", "password": "abc"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "member does not exist",
			body:           `{"email": "alice@x.com", "password": "secret"}`,
			serviceErr:     member.ErrMemberDoesNotExist,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "not verified",
			body:           `{"email": "alice@x.com", "password": "secret"}`,
			serviceErr:     member.ErrMemberNotVerified,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			handler := New(stub)

			request := httptest.NewRequest(
				http.MethodPost,
				"/complete-registration",
				strings.NewReader(testcase.body),
			)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
			if testcase.expectedInput != nil {
				assert.Equal(t, testcase.expectedInput, stub.input)
			}
		})
	}
}
