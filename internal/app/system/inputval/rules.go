// internal/app/system/inputval/rules.go
package inputval

import (
	"net/mail"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rule validates one field's trimmed value.
type Rule struct {
	Valid   func(string) bool
	Message string
}

// Rules is the rule table, keyed by field name. Rules are shared across
// entity types where the field means the same thing (every *Id field is a
// store identifier, name and title are both non-empty text, and so on).
type Rules map[string]Rule

// Default returns the rule table for the API surface. Handlers receive it
// as an explicit dependency; nothing consults a package-level table.
func Default() Rules {
	id := Rule{Valid: IsValidObjectID, Message: "A valid id is required."}
	nonEmpty := Rule{
		Valid:   func(s string) bool { return s != "" },
		Message: "Must not be empty.",
	}
	anyText := Rule{
		Valid:   func(string) bool { return true },
		Message: "Must be text.",
	}
	date := Rule{Valid: IsValidDate, Message: "A valid date is required."}

	return Rules{
		"id":       id,
		"memberId": id,
		"groupId":  id,
		"eventId":  id,
		"postId":   id,
		"owner":    id,

		"name":  nonEmpty,
		"title": nonEmpty,
		"text":  nonEmpty,

		"description": anyText,
		"tags":        anyText,

		"email": {Valid: IsValidEmail, Message: "A valid email address is required."},

		"isPublic": {Valid: IsValidBool, Message: "Must be true or false."},

		"startDate": date,
		"endDate":   date,

		"invitees": {Valid: IsValidObjectIDList, Message: "Must be a comma-separated list of valid ids."},
	}
}

// IsValidObjectID reports whether s (after trimming) parses as a Mongo
// ObjectID.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	return err == nil
}

// IsValidEmail reports whether s is a bare RFC 5322 address. Addresses
// with display names ("Jo <jo@example.com>") are rejected.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || !strings.Contains(s, "@") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s
}

// IsValidObjectIDList reports whether s is a comma-separated list of
// valid ObjectIDs. Empty segments are ignored.
func IsValidObjectIDList(s string) bool {
	_, err := ParseObjectIDList(s)
	return err == nil
}

// ParseObjectIDList parses a comma-separated list of hex ObjectIDs,
// trimming whitespace and skipping empty segments.
func ParseObjectIDList(s string) ([]primitive.ObjectID, error) {
	out := []primitive.ObjectID{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := primitive.ObjectIDFromHex(part)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// IsValidBool reports whether s parses as a boolean.
func IsValidBool(s string) bool {
	_, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil
}

// dateLayouts are the accepted date formats, most specific first.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// IsValidDate reports whether s parses with one of the accepted layouts.
func IsValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// ParseDate parses a date field value. RFC 3339 timestamps and bare
// dates are accepted.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range dateLayouts {
		var ts time.Time
		if ts, err = time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}
