// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"strings"
	"unicode/utf8"
)

// MaxFilenameLength caps a sanitized title in bytes, leaving room for the
// extension within the usual 255-byte filename limit.
const MaxFilenameLength = 250

const forbiddenChars = `<>:"/\|?*`

// SanitizeFilename maps a paper title to a filename stem that is safe on
// common filesystems. It removes <>:"/\|?*, replaces spaces with
// underscores, truncates to MaxFilenameLength bytes on a rune boundary and
// trims leading and trailing dots and underscores. The result is stable:
// sanitizing it again returns it unchanged.
func SanitizeFilename(title string) string {
	s := strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbiddenChars, r) {
			return -1
		}
		if r == ' ' {
			return '_'
		}
		return r
	}, title)

	if len(s) > MaxFilenameLength {
		cut := MaxFilenameLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return strings.Trim(s, "._")
}
