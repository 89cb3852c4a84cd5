package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/grantflow/grantflow/pkg/proto"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// errorResponse is the body of every API error.
type errorResponse struct {
	Error string `json:"error"`
}

func renderStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		io.WriteString(w, fmt.Sprintf("%d %s", code, http.StatusText(code))) //nolint:errcheck,gosec
	}
}

func renderJSON(w http.ResponseWriter, r *http.Request, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.FromContext(r.Context()).Error("error encoding json", "err", err)
	}
}

// statusCode maps a backend error to its HTTP status.
func statusCode(err error) int {
	switch {
	case errors.Is(err, proto.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, proto.ErrUnauthorized):
		return http.StatusForbidden
	case proto.IsNotFound(err):
		return http.StatusNotFound
	case proto.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// renderError writes err as a JSON error. Messages of unexpected errors are
// logged and never sent to the client.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusCode(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		log.FromContext(r.Context()).Error("request failed", "err", err)
		msg = http.StatusText(code)
	}
	renderJSON(w, r, code, errorResponse{Error: msg})
}

// decodeJSON decodes a request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", proto.ErrInvalidRequest, err)
	}
	return nil
}

// HTTP error response handling functions

func renderNotFound(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusNotFound, errorResponse{Error: http.StatusText(http.StatusNotFound)})
}

func renderMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusMethodNotAllowed, errorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
}

func renderForbidden(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusForbidden, errorResponse{Error: http.StatusText(http.StatusForbidden)})
}
