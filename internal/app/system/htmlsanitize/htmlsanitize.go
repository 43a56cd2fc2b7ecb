// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize cleans member-supplied free text (post text, group
// descriptions) before it is persisted.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	// ugc keeps basic formatting and safe links, strips scripts and
	// event handlers.
	ugc = bluemonday.UGCPolicy()

	// strict strips all markup, leaving plain text.
	strict = bluemonday.StrictPolicy()
)

// Sanitize cleans rich free text such as post bodies.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// SanitizeStrict reduces input to plain text. Used for one-line fields
// like member, group, event, and post names where markup has no place.
func SanitizeStrict(s string) string {
	return strict.Sanitize(s)
}
