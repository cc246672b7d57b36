package validation

import (
	"regexp"
	"strings"
)

// dataURLRegex matches the strict form data:<mime-type>;base64,<payload>.
var dataURLRegex = regexp.MustCompile(`^data:([a-zA-Z0-9]+/[a-zA-Z0-9.+-]+);base64,(.+)$`)

// ParseDataURL splits a base64 data URL into its MIME type and payload.
// Any deviation from the strict pattern returns ok=false.
func ParseDataURL(dataURL string) (mimeType, payload string, ok bool) {
	match := dataURLRegex.FindStringSubmatch(dataURL)
	if match == nil {
		return "", "", false
	}
	return match[1], match[2], true
}

// SanitizeFilename reduces a client-supplied filename to a safe base name:
// path components, null bytes and surrounding whitespace are stripped.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\x00", "")
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return name
}
