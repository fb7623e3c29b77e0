package web

// errors.go provides unified error responses for the web layer.
//
// The technical error is logged with the request ID; the client only sees
// the mapped user message and its code, as JSON on /api paths (or when the
// client asks for JSON) and as an HTML alert elsewhere.

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/JonMunkholm/fifastats/internal/core"
	"github.com/JonMunkholm/fifastats/internal/logging"
	"github.com/JonMunkholm/fifastats/internal/report"
)

// ErrorResponse is the JSON body of an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor picks the HTTP status for a mapped error code.
func statusFor(msg core.UserMessage) int {
	switch msg.Code {
	case "DS001":
		return http.StatusNotFound
	case "SRV001":
		return http.StatusServiceUnavailable
	case "CONV001":
		return http.StatusUnprocessableEntity
	case "REQ001":
		return http.StatusServiceUnavailable
	case "REQ002":
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes the user-facing response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	msg := core.MapError(err)
	status := statusFor(msg)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", msg.Code,
		"error", err,
	)

	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "5")
	}

	if wantsJSON(r) {
		respondErrorJSON(w, msg, status)
		return
	}
	respondErrorHTML(w, r, msg, status)
}

func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

func respondErrorHTML(w http.ResponseWriter, r *http.Request, msg core.UserMessage, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	report.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w)
}

// wantsJSON reports whether the client should get a JSON error body.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
