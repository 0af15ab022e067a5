package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Drama - Topic 1", "drama-topic-1"},
		{"General Discussion", "general-discussion"},
		{"  Sci-Fi & Fantasy!  ", "sci-fi-fantasy"},
		{"Already-a-slug", "already-a-slug"},
		{"Café Talk", "caf-talk"},
		{"---", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
