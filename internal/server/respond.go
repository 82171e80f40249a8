package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	errs "github.com/matzehuels/classlayout/pkg/errors"
)

type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"requestId,omitempty"`
}

type errorDetail struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status and writes it as a JSON error body.
// Internal errors are logged and reported without their details.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errs.GetCode(err)
	msg := errs.UserMessage(err)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		code, msg = errs.ErrCodeTimeout, "request timed out"
	case errors.Is(err, context.Canceled):
		code, msg = errs.ErrCodeTimeout, "request canceled"
	case code == "":
		code = errs.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		loggerFrom(r.Context()).Error("request failed", "code", code, "error", err)
		if code == errs.ErrCodeInternal {
			msg = "internal error"
		}
	}

	writeJSON(w, status, errorBody{
		Error:     errorDetail{Code: code, Message: msg},
		RequestID: requestIDFrom(r.Context()),
	})
}

func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusGatewayTimeout
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeLimitExceeded:
		return http.StatusRequestEntityTooLarge
	case errs.ErrCodeNotFound, errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errs.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errs.ErrCodeNetwork:
		return http.StatusBadGateway
	}
	if errs.IsClientError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
