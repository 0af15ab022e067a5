package seed

import (
	_ "embed"
	"fmt"

	"cinedex/internal/validation"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// TrailerBaseURL prefixes every generated trailer id.
const TrailerBaseURL = "https://www.youtube.com/embed/"

// GenreFixture is a static genre row.
type GenreFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// CategoryFixture is a static forum category row.
type CategoryFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Fixtures is the static catalogue the generators draw from.
type Fixtures struct {
	Trailers        []string          `yaml:"trailers"`
	Genres          []GenreFixture    `yaml:"genres"`
	CrewRoles       []string          `yaml:"crew_roles"`
	ForumCategories []CategoryFixture `yaml:"forum_categories"`
}

// LoadFixtures parses the embedded fixture catalogue.
func LoadFixtures() (*Fixtures, error) {
	return ParseFixtures(fixturesYAML)
}

// ParseFixtures decodes a fixture catalogue and checks that every pool is populated.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	switch {
	case len(f.Trailers) == 0:
		return nil, fmt.Errorf("fixtures: trailer pool is empty")
	case len(f.Genres) == 0:
		return nil, fmt.Errorf("fixtures: no genres")
	case len(f.CrewRoles) == 0:
		return nil, fmt.Errorf("fixtures: no crew roles")
	case len(f.ForumCategories) == 0:
		return nil, fmt.Errorf("fixtures: no forum categories")
	}

	slugs := make(map[string]string, len(f.ForumCategories))
	for _, c := range f.ForumCategories {
		slug := Slugify(c.Name)
		if err := validation.ValidateSlug(slug); err != nil {
			return nil, fmt.Errorf("fixtures: category %q: %w", c.Name, err)
		}
		if other, ok := slugs[slug]; ok {
			return nil, fmt.Errorf("fixtures: categories %q and %q share slug %q", other, c.Name, slug)
		}
		slugs[slug] = c.Name
	}
	return &f, nil
}

// TrailerURLs returns every trailer URL the generators can emit.
func (f *Fixtures) TrailerURLs() []string {
	out := make([]string, len(f.Trailers))
	for i, id := range f.Trailers {
		out[i] = TrailerBaseURL + id
	}
	return out
}
