// internal/app/system/apierr/apierr.go

// Package apierr defines the error taxonomy for the HTTP surface and maps
// each variant to exactly one status code and body shape:
//
//   - validation failures  -> 400, map of field name -> {param, message}
//   - missing entities     -> 404, {status, message}
//   - anything else        -> 500, {status, message} with a generic message
//
// Store errors, including unique-key violations, deliberately land in the
// 500 bucket with no internal detail in the body.
//
// The two body shapes are distinct on purpose: clients key field errors by
// parameter name, everything else is a single status/message object.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/convenehq/convene/internal/app/system/requestlog"
	"go.uber.org/zap"
)

// FieldError describes a single violated field.
type FieldError struct {
	Param    string `json:"param"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"` // "params", "body", or "query"
}

// ValidationError carries every violation found for one request.
// All declared fields are checked; nothing short-circuits across fields.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return "validation failed: " + e.Fields[0].Param
	}
	return fmt.Sprintf("validation failed: %d fields", len(e.Fields))
}

// NotFoundError reports a missing target or referenced entity.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No %s found for %s", e.Kind, e.ID)
}

// NotFound builds a NotFoundError for an entity kind and id.
func NotFound(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// statusBody is the single-object error shape for non-validation failures.
type statusBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Write renders err as the appropriate JSON error response. Store and
// other unclassified errors become a 500 with a generic message; the
// internal detail goes to the log only, tagged with the request id when
// one was assigned.
func Write(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	w.Header().Set("Content-Type", "application/json")

	var ve *ValidationError
	if errors.As(err, &ve) {
		w.WriteHeader(http.StatusBadRequest)
		body := make(map[string]FieldError, len(ve.Fields))
		for _, f := range ve.Fields {
			if _, seen := body[f.Param]; !seen {
				body[f.Param] = f
			}
		}
		_ = json.NewEncoder(w).Encode(body)
		return
	}

	var nf *NotFoundError
	if errors.As(err, &nf) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(statusBody{Status: http.StatusNotFound, Message: nf.Error()})
		return
	}

	if log != nil {
		fields := []zap.Field{zap.Error(err)}
		if id := requestlog.ID(r.Context()); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		log.Error("request failed", fields...)
	}
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(statusBody{
		Status:  http.StatusInternalServerError,
		Message: "An internal error occurred.",
	})
}
