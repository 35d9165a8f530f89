package registerinit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	c "memberd/internal/core/domain/common"
	"memberd/internal/core/domain/member"
	service "memberd/internal/core/services/issue_verification"

	"github.com/stretchr/testify/assert"
)

var Now time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.Member = member.Member{
		ID:        1,
		Name:      input.Name,
		Email:     input.Email,
		CreatedAt: Now,
	}
	result.Token = member.VerificationToken("test-verification-token")
	result.ExpiresAt = Now.Add(time.Hour)
	return result, nil
}

func TestRegisterInitHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "success",
			body:           `{"name": "Alice", "email": "alice@x.com", "dob": "1990-01-01"}`,
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				Name:        member.Name("Alice"),
				Email:       c.Email("alice@x.com"),
				DateOfBirth: c.NewOptional(member.DateOfBirth("1990-01-01"), true),
			},
		},
		{
			id:             "success without dob",
			body:           `{"name": "Alice", "email": "alice@x.com"}`,
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				Name:  member.Name("Alice"),
				Email: c.Email("alice@x.com"),
			},
		},
		{
			id:             "email is normalized",
			body:           `{"name": "Alice", "email": " Alice@X.com "}`,
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				Name:  member.Name("Alice"),
				Email: c.Email("alice@x.com"),
			},
		},
		{
			id:             "invalid json",
			body:           `{"name": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing name",
			body:           `{"email": "alice@x.com"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing email",
			body:           `{"name": "Alice"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid email",
			body:           `{"name": "Alice", "email": "not-an-email"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "service error",
			body:           `{"name": "Alice", "email": "alice@x.com"}`,
			serviceErr:     member.ErrTokenDeliveryFailed,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			handler := New(stub, false)

			request := httptest.NewRequest(
				http.MethodPost,
				"/register-init",
				strings.NewReader(testcase.body),
			)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
			if testcase.expectedInput != nil {
				assert.Equal(t, testcase.expectedInput, stub.input)
			} else {
				assert.Nil(t, stub.input)
			}
		})
	}
}

func TestRegisterInitHandlerSuccessBody(t *testing.T) {
	handler := New(&stubService{}, false)

	request := httptest.NewRequest(
		http.MethodPost,
		"/register-init",
		strings.NewReader(`{"name": "Alice", "email": "alice@x.com"}`),
	)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	body := make(map[string]interface{})
	err := json.Unmarshal(recorder.Body.Bytes(), &body)
	assert.Nil(t, err)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "", recorder.Header().Get("x-test-verification-token"))
}

func TestRegisterInitHandlerExposesTokenInTestMode(t *testing.T) {
	handler := New(&stubService{}, true)

	request := httptest.NewRequest(
		http.MethodPost,
		"/register-init",
		strings.NewReader(`{"name": "Alice", "email": "alice@x.com"}`),
	)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "test-verification-token", recorder.Header().Get("x-test-verification-token"))
}
