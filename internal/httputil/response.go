package httputil

import (
	"encoding/json"
	"net/http"
)

// Problem types returned by the dashboard API. Each maps to one class of
// domain error so clients can branch on "type" instead of parsing detail.
const (
	ProblemInvalidRequest        = "/problems/invalid-request"
	ProblemNotFound              = "/problems/not-found"
	ProblemNameTaken             = "/problems/name-taken"
	ProblemAssistanceUnavailable = "/problems/assistance-unavailable"
	ProblemInternal              = "/problems/internal"
)

var problemTypes = map[int]string{
	http.StatusBadRequest:            ProblemInvalidRequest,
	http.StatusRequestEntityTooLarge: ProblemInvalidRequest,
	http.StatusNotFound:              ProblemNotFound,
	http.StatusConflict:              ProblemNameTaken,
	http.StatusBadGateway:            ProblemAssistanceUnavailable,
	http.StatusInternalServerError:   ProblemInternal,
}

// ProblemType returns the problem type for a status, or "about:blank"
// when the status has no dashboard-specific meaning
func ProblemType(status int) string {
	if t, ok := problemTypes[status]; ok {
		return t
	}
	return "about:blank"
}

// RespondJSON writes a JSON response with the given status code.
// The payload is marshaled before any header is written, so an encoding
// failure still produces a clean 500.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// ProblemDetail is an RFC 7807 error body. Extra members are written at the
// top level but never replace the standard ones.
type ProblemDetail struct {
	Type   string
	Title  string
	Status int
	Detail string
	Extra  map[string]interface{}
}

// MarshalJSON flattens Extra next to the standard members
func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(p.Extra)+4)
	for k, v := range p.Extra {
		m[k] = v
	}
	m["type"] = p.Type
	m["title"] = p.Title
	m["status"] = p.Status
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	return json.Marshal(m)
}

// RespondError writes a problem response for status
func RespondError(w http.ResponseWriter, status int, detail string) {
	RespondErrorWithExtras(w, status, detail, nil)
}

// RespondErrorWithExtras writes a problem response carrying extra members,
// e.g. the conflicting resource
func RespondErrorWithExtras(w http.ResponseWriter, status int, detail string, extras map[string]interface{}) {
	payload, err := json.Marshal(ProblemDetail{
		Type:   ProblemType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
		Extra:  extras,
	})
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	w.Write(payload)
}
