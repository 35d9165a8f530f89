package healthz

import (
	"net/http"

	"memberd/internal/http/handlers/response"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	response.RenderText(rw, "ok", http.StatusOK)
}
