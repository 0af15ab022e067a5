package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixtures(t *testing.T) {
	fx, err := LoadFixtures()
	require.NoError(t, err)

	assert.NotEmpty(t, fx.Trailers)
	assert.NotEmpty(t, fx.Genres)
	assert.NotEmpty(t, fx.CrewRoles)
	assert.NotEmpty(t, fx.ForumCategories)

	slugs := make(map[string]bool)
	for _, c := range fx.ForumCategories {
		slug := Slugify(c.Name)
		assert.NotEmpty(t, slug)
		assert.False(t, slugs[slug], "categories %q collide", c.Name)
		slugs[slug] = true
	}

	for _, u := range fx.TrailerURLs() {
		assert.True(t, strings.HasPrefix(u, TrailerBaseURL))
	}
}

func TestParseFixtures_RejectsEmptyPools(t *testing.T) {
	_, err := ParseFixtures([]byte(`
trailers: [abc]
genres: [{name: Drama}]
crew_roles: []
forum_categories: [{name: General}]
`))
	assert.ErrorContains(t, err, "crew roles")

	_, err = ParseFixtures([]byte("trailers: [unterminated"))
	assert.ErrorContains(t, err, "decode fixtures")
}

func TestParseFixtures_RejectsBadCategorySlugs(t *testing.T) {
	_, err := ParseFixtures([]byte(`
trailers: [abc]
genres: [{name: Drama}]
crew_roles: [Director]
forum_categories: [{name: "Off Topic"}, {name: "off-topic"}]
`))
	assert.ErrorContains(t, err, "share slug")

	_, err = ParseFixtures([]byte(`
trailers: [abc]
genres: [{name: Drama}]
crew_roles: [Director]
forum_categories: [{name: "!!!"}]
`))
	assert.ErrorContains(t, err, "slug must not be empty")
}
