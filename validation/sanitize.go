package validation

import (
	"context"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips all markup; nothing on this API renders HTML.
var strict = bluemonday.StrictPolicy()

// StripMarkup removes markup from the given fields in place. This runs
// before validation so stored script never survives, even on requests
// that are rejected for other reasons. The policy entity-escapes the
// text it keeps, which is undone here so the finalizing pass escapes
// exactly once; rejected requests never persist, so the plain text is
// only ever in memory.
func StripMarkup(values ...*string) Step {
	return Step{
		Name: "strip-markup",
		Run: func(ctx context.Context) []Failure {
			for _, value := range values {
				if value == nil {
					continue
				}
				*value = html.UnescapeString(strict.Sanitize(*value))
			}
			return nil
		},
	}
}

// TrimEscape trims and HTML-escapes the given fields in place. This is
// the finalizing pass, only applied once validation has passed.
func TrimEscape(values ...*string) Step {
	return Step{
		Name: "trim-escape",
		Run: func(ctx context.Context) []Failure {
			for _, value := range values {
				if value == nil {
					continue
				}
				*value = html.EscapeString(strings.TrimSpace(*value))
			}
			return nil
		},
	}
}
