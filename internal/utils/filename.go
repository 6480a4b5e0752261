// Package utils holds small helpers shared by the HTTP layer.
package utils

import (
	"regexp"
	"strings"
)

var (
	// Anything but word characters, whitespace and dashes
	unsafeFilenameChars = regexp.MustCompile(`[^\w\s-]`)
	// Whitespace characters to normalize
	whitespaceChars = regexp.MustCompile(`[\r\n\t]`)
	// Multiple spaces to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// maxFilenameLength leaves room for an extension within the usual 255 byte limit.
const maxFilenameLength = 200

// SanitizeFilename turns an arbitrary title into a name that is safe to use
// in a Content-Disposition header or on disk. Path separators and
// punctuation are removed and whitespace is collapsed. fallback is returned
// when nothing usable remains.
func SanitizeFilename(name, fallback string) string {
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = whitespaceChars.ReplaceAllString(name, " ")
	name = multipleSpaces.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	if len(name) > maxFilenameLength {
		name = strings.TrimSpace(name[:maxFilenameLength])
	}

	if name == "" {
		return fallback
	}
	return name
}
