package registerinit

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
	issueverification "memberd/internal/core/services/issue_verification"
	"memberd/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service    services.Service[issueverification.Input, issueverification.Result]
	isTestMode bool
}

func New(
	service services.Service[issueverification.Input, issueverification.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Dob   string `json:"dob"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	if err := e.Decode(i); err != nil {
		return err
	}
	// Clients pad addresses; trim before validation so a padded email
	// passes the format check the same way its normalized form would.
	i.Email = strings.TrimSpace(i.Email)
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required, validation.Length(1, 512)),
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Dob, validation.Length(0, 128)),
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

	result, err := h.service.Run(
		r.Context(),
		issueverification.Input{
			Name:        member.Name(input.Name),
			Email:       c.NewEmail(input.Email),
			DateOfBirth: c.NewOptional(member.DateOfBirth(input.Dob), input.Dob != ""),
		},
	)
	if errors.Is(err, member.ErrInvalidInput) {
		response.RenderError(rw, "name and email required", http.StatusBadRequest)
		return
	}
	if err != nil {
		// Store and delivery failures alike render an opaque 500; details
		// are logged by the service.
		response.RenderInternalError(rw)
		return
	}

	if h.isTestMode {
		rw.Header().Set("x-test-verification-token", string(result.Token))
	}
	response.RenderOk(rw)
}
