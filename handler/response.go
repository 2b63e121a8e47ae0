package handler

import (
	"encoding/json"
	"net/http"
)

// jsonResponse implements Response for JSON rendering.
type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	if j.body == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(j.body)
}

// JSON creates a JSON response. The status defaults to 200 OK.
func JSON(v any, status ...int) Response {
	code := http.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	return jsonResponse{status: code, body: v}
}

// NoContent creates an empty 204 response.
func NoContent() Response {
	return jsonResponse{status: http.StatusNoContent}
}
