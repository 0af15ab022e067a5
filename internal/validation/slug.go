package validation

import (
	"fmt"
	"regexp"
)

// MaxSlugLength matches the widest slug column (forum_topics.slug).
const MaxSlugLength = 255

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateSlug accepts lowercase ASCII words joined by single hyphens.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug must not be empty")
	}
	if len(slug) > MaxSlugLength {
		return fmt.Errorf("slug must not exceed %d characters", MaxSlugLength)
	}
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("slug %q must contain only lowercase letters, numbers, and single hyphens between them", slug)
	}
	return nil
}
