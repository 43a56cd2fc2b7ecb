// internal/app/system/inputval/inputval.go

// Package inputval is the request validation gate. Each endpoint declares
// which fields it reads from each request location (path params, body,
// query); Check trims every declared value, applies the field's rule from
// the rule table, and collects every violation rather than stopping at
// the first. The incoming snapshot is never mutated: callers get back a
// sanitized copy to read values from.
//
// Validation is pure input-shape checking. It never touches the store and
// must fully pass before any existence verification or write happens.
package inputval

import (
	"strings"

	"github.com/convenehq/convene/internal/app/system/apierr"
)

// Location names where a field came from, for error payloads.
const (
	LocationParams = "params"
	LocationBody   = "body"
	LocationQuery  = "query"
)

// Field declares one field an endpoint reads. Optional fields are
// validated only when present and non-empty after trimming.
type Field struct {
	Name     string
	Optional bool
}

// F declares a required field.
func F(name string) Field { return Field{Name: name} }

// Opt declares an optional field.
func Opt(name string) Field { return Field{Name: name, Optional: true} }

// Spec lists the fields an endpoint reads per location.
type Spec struct {
	Params []Field
	Body   []Field
	Query  []Field
}

// Values holds raw string values for one request location.
type Values map[string]string

// Request is an immutable snapshot of the inbound request's primitive
// values.
type Request struct {
	Params Values
	Body   Values
	Query  Values
}

// Check validates req against spec using the given rule table. It returns
// a sanitized copy of the request (declared values trimmed) and, when any
// declared field is missing or malformed, a ValidationError listing every
// violation.
//
// A declared field with no entry in the rule table is a programming
// error and panics.
func Check(rules Rules, req Request, spec Spec) (Request, *apierr.ValidationError) {
	out := Request{
		Params: cloneValues(req.Params),
		Body:   cloneValues(req.Body),
		Query:  cloneValues(req.Query),
	}

	var fields []apierr.FieldError
	fields = checkLocation(rules, out.Params, spec.Params, LocationParams, fields)
	fields = checkLocation(rules, out.Body, spec.Body, LocationBody, fields)
	fields = checkLocation(rules, out.Query, spec.Query, LocationQuery, fields)

	if len(fields) > 0 {
		return out, &apierr.ValidationError{Fields: fields}
	}
	return out, nil
}

func checkLocation(rules Rules, vals Values, decl []Field, loc string, fields []apierr.FieldError) []apierr.FieldError {
	for _, f := range decl {
		rule, ok := rules[f.Name]
		if !ok {
			panic("inputval: no rule for field " + f.Name)
		}

		raw, present := vals[f.Name]
		trimmed := strings.TrimSpace(raw)
		if present {
			vals[f.Name] = trimmed
		}

		if trimmed == "" {
			if f.Optional {
				continue
			}
			fields = append(fields, apierr.FieldError{
				Param:    f.Name,
				Message:  requiredMessage(rule),
				Location: loc,
			})
			continue
		}

		if !rule.Valid(trimmed) {
			fields = append(fields, apierr.FieldError{
				Param:    f.Name,
				Message:  rule.Message,
				Location: loc,
			})
		}
	}
	return fields
}

// requiredMessage keeps "must not be empty" style rules readable when the
// field is missing outright.
func requiredMessage(rule Rule) string {
	if rule.Message == "Must not be empty." {
		return "Is required and must not be empty."
	}
	return rule.Message
}

func cloneValues(v Values) Values {
	if v == nil {
		return Values{}
	}
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}
