package response

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

type okResponse struct {
	Ok bool `json:"ok"`
}

func RenderOk(rw http.ResponseWriter) {
	Render(rw, okResponse{Ok: true}, http.StatusOK)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, "internal error", http.StatusInternalServerError)
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	Render(rw, errorResponse{Error: msg}, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}

func RenderText(rw http.ResponseWriter, msg string, status int) {
	rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	rw.WriteHeader(status)
	rw.Write([]byte(msg))
}
