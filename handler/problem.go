package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/validkit"
	"github.com/dmitrymomot/validkit/pkg/requestid"
)

// Problem is an RFC 9457 problem details document. For validation failures
// the Errors member carries the engine's path-keyed error map verbatim,
// one named field-error list per map entry.
type Problem struct {
	Type      string              `json:"type"`
	Title     string              `json:"title"`
	Status    int                 `json:"status"`
	Detail    string              `json:"detail,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	RequestID string              `json:"requestId,omitempty"`
}

type problemResponse struct {
	problem Problem
}

func (p problemResponse) Render(w http.ResponseWriter, r *http.Request) error {
	p.problem.RequestID = requestid.FromContext(r.Context())
	w.Header().Set("Content-Type", "application/problem+json; charset=utf-8")
	w.WriteHeader(p.problem.Status)
	return json.NewEncoder(w).Encode(p.problem)
}

// ValidationProblem creates a 400 problem response from a validation error
// map.
func ValidationProblem(errs validkit.ValidationError) Response {
	return problemResponse{
		problem: Problem{
			Type:   "https://tools.ietf.org/html/rfc9110#section-15.5.1",
			Title:  "One or more validation errors occurred.",
			Status: http.StatusBadRequest,
			Errors: map[string][]string(errs),
		},
	}
}

// ProblemResponse creates a problem response with an arbitrary status and
// detail message.
func ProblemResponse(status int, detail string) Response {
	return problemResponse{
		problem: Problem{
			Type:   "about:blank",
			Title:  http.StatusText(status),
			Status: status,
			Detail: detail,
		},
	}
}
