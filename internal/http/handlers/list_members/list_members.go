package listmembers

import (
	"net/http"

	e "memberd/internal/core/domain/errors"
	"memberd/internal/core/services"
	listmembers "memberd/internal/core/services/list_members"
	"memberd/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[listmembers.Input, listmembers.Result]
}

func New(
	service services.Service[listmembers.Input, listmembers.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Members []response.Member `json:"members"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), listmembers.Input{})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	members := make([]response.Member, len(result.Members))
	for ix, dm := range result.Members {
		members[ix].FromDomainMember(dm)
	}
	response.Render(rw, Result{Members: members}, http.StatusOK)
}
