package tenant

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]{3,63}$`)

// NormalizeSlug turns a display name into a URL-safe store slug.
func NormalizeSlug(input string) string {
	s := slug.Make(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, "_", "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// ValidSlug reports whether input is an acceptable store slug.
func ValidSlug(input string) bool {
	return slugPattern.MatchString(input)
}
