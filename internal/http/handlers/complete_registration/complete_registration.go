package completeregistration

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	c "memberd/internal/core/domain/common"
	e "memberd/internal/core/domain/errors"
	"memberd/internal/core/domain/member"
	"memberd/internal/core/services"
	completeregistration "memberd/internal/core/services/complete_registration"
	"memberd/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[completeregistration.Input, completeregistration.Result]
}

func New(
	service services.Service[completeregistration.Input, completeregistration.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	if err := e.Decode(i); err != nil {
		return err
	}
	i.Email = strings.TrimSpace(i.Email)
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(6, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		completeregistration.Input{
			Email:    c.NewEmail(input.Email),
			Password: member.RawPassword(input.Password),
		},
	)
	if errors.Is(err, member.ErrMemberDoesNotExist) {
		response.RenderError(rw, "user not found", http.StatusBadRequest)
		return
	}
	if errors.Is(err, member.ErrMemberNotVerified) {
		response.RenderError(rw, "email not verified", http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.RenderOk(rw)
}
