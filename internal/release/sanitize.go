package release

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var markdownMarks = strings.NewReplacer("**", "", "#", "")

// Sanitize normalizes s to NFC and strips markdown bold and heading markers,
// which the generation prompt treats as formatting instructions.
func Sanitize(s string) string {
	return markdownMarks.Replace(norm.NFC.String(s))
}
