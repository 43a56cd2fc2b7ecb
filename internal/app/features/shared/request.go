// internal/app/features/shared/request.go

// Package shared holds the request/response plumbing common to the JSON
// feature handlers.
package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/convenehq/convene/internal/app/system/apierr"
	"github.com/convenehq/convene/internal/app/system/inputval"
	"github.com/go-chi/chi/v5"
)

// BodyValues decodes a JSON object body into string values for
// validation. Scalars are stringified; string arrays are joined with
// commas; null and absent fields are omitted. An empty body yields an
// empty map.
func BodyValues(r *http.Request) (inputval.Values, error) {
	vals := inputval.Values{}
	if r.Body == nil {
		return vals, nil
	}

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return vals, nil
		}
		return nil, err
	}

	for k, v := range raw {
		switch t := v.(type) {
		case nil:
			// omitted
		case string:
			vals[k] = t
		case bool:
			vals[k] = strconv.FormatBool(t)
		case float64:
			vals[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case []any:
			parts := make([]string, 0, len(t))
			for _, elem := range t {
				if s, ok := elem.(string); ok {
					parts = append(parts, s)
				}
			}
			vals[k] = strings.Join(parts, ",")
		}
	}
	return vals, nil
}

// ParamValues collects named chi URL parameters into a values map.
func ParamValues(r *http.Request, names ...string) inputval.Values {
	vals := inputval.Values{}
	for _, name := range names {
		vals[name] = chi.URLParam(r, name)
	}
	return vals
}

// MalformedBody is the validation error returned when the request body
// is not a JSON object.
func MalformedBody() *apierr.ValidationError {
	return &apierr.ValidationError{Fields: []apierr.FieldError{{
		Param:    "body",
		Message:  "Request body must be a JSON object.",
		Location: inputval.LocationBody,
	}}}
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
