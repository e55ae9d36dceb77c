package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/aTrapDeer/portfolio/internal/schema"
	"github.com/aTrapDeer/portfolio/internal/util"
)

// genericFailure is the only detail a client sees when the store fails.
const genericFailure = "An error occurred while processing your request. Please try again later."

// envelope wraps every API response.
type envelope struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  []schema.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg})
}

// internalError logs the cause and answers with a generic 500.
func internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	util.LoggerFromContext(r.Context()).Error("request failed", "op", op, "err", err)
	writeFailure(w, http.StatusInternalServerError, genericFailure)
}

func writePanic(w http.ResponseWriter, _ *http.Request) {
	writeFailure(w, http.StatusInternalServerError, genericFailure)
}

// readBody reads the request body up to limit bytes. It writes the error
// response itself and reports false on failure.
func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeFailure(w, http.StatusRequestEntityTooLarge, "Request body too large.")
			return nil, false
		}
		writeFailure(w, http.StatusBadRequest, "Could not read request body.")
		return nil, false
	}
	return body, true
}

// decodeBody validates the body as kind and decodes it into T, writing a
// 400 with per-field errors when it does not validate.
func decodeBody[T any](w http.ResponseWriter, r *http.Request, limit int64, kind schema.Kind, validate func(schema.Kind, []byte, any) error) (T, bool) {
	var out T
	body, ok := readBody(w, r, limit)
	if !ok {
		return out, false
	}
	if err := validate(kind, body, &out); err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, envelope{
				Success: false,
				Message: "Invalid " + strings.ToLower(kind.Label()) + " data.",
				Errors:  verr.Errors,
			})
			return out, false
		}
		internalError(w, r, "validate "+string(kind), err)
		return out, false
	}
	return out, true
}

// pathID parses the {id} path segment. It writes a 400 and reports false
// when the segment is not a non-negative integer.
func pathID(w http.ResponseWriter, r *http.Request, kind schema.Kind) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, strconv.IntSize)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid "+strings.ToLower(kind.Label())+" id.")
		return 0, false
	}
	return uint(id), true
}

func notFound(w http.ResponseWriter, kind schema.Kind) {
	writeFailure(w, http.StatusNotFound, kind.Label()+" not found.")
}
