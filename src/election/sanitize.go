package election

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var namePolicy = bluemonday.StrictPolicy()

// SanitizeName prepares a candidate's free-text name for display: markup is
// stripped, entities are folded back to text, and single quotes are removed.
func SanitizeName(name string) string {
	clean := html.UnescapeString(namePolicy.Sanitize(name))
	return strings.ReplaceAll(clean, "'", "")
}
