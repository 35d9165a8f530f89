package verifyemail

import (
	"errors"
	"net/http"

	c "memberd/internal/core/domain/common"
	e "memberd/internal/core/domain/errors"
	"memberd/internal/core/domain/member"
	"memberd/internal/core/services"
	confirmverification "memberd/internal/core/services/confirm_verification"
	"memberd/internal/http/handlers/response"
)

// Handler serves the link clicked from the verification email, so all
// responses are plain text meant for a browser.
type Handler struct {
	service services.Service[confirmverification.Input, confirmverification.Result]
}

func New(
	service services.Service[confirmverification.Input, confirmverification.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	email := r.URL.Query().Get("email")
	if token == "" || email == "" {
		response.RenderText(rw, "Invalid request", http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		confirmverification.Input{
			Email: c.NewEmail(email),
			Token: member.VerificationToken(token),
		},
	)
	if errors.Is(err, member.ErrMemberDoesNotExist) {
		response.RenderText(rw, "Invalid link", http.StatusBadRequest)
		return
	}
	if errors.Is(err, member.ErrTokenExpired) {
		response.RenderText(rw, "Link expired", http.StatusBadRequest)
		return
	}
	if errors.Is(err, member.ErrTokenMismatch) {
		response.RenderText(rw, "Invalid token", http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderText(rw, "Server error", http.StatusInternalServerError)
		return
	}

	response.RenderText(rw, "Email verified. You may now return to the website.", http.StatusOK)
}
