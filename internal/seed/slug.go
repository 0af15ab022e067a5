package seed

import (
	"strings"
	"unicode"
)

// Slugify lowercases s and collapses every run of non-alphanumeric characters into one hyphen,
// trimming hyphens at either end. "Drama - Topic 1" becomes "drama-topic-1".
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
