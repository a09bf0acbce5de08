package posts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"stopwords dropped", "Title a an Json", "title-json"},
		{"articles stripped", "The Greek in a Box with an Clock", "greek-in-box-with-clock"},
		{"punctuation collapsed", "Go: the good,   the bad & the ugly!", "go-good-bad-ugly"},
		{"accents folded", "Café Déjà Vu", "cafe-deja-vu"},
		{"numbers kept", "Top 10 Tips for 2026", "top-10-tips-for-2026"},
		{"only stopwords keeps words", "The A An", "the-a-an"},
		{"empty title", "", "post"},
		{"symbols only", "!!! ???", "post"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.title))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	titles := []string{"Hello World", "Title a an Json", "Top 10 Tips for 2026"}
	for _, title := range titles {
		once := Slugify(title)
		assert.Equal(t, once, Slugify(once), "slugifying a slug must be a no-op")
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	for i := 0; i < 5; i++ {
		assert.Equal(t, "greek-in-box-with-clock", Slugify("The Greek in a Box with an Clock"))
	}
}

func TestSlugifyMaxLength(t *testing.T) {
	long := strings.Repeat("word ", 40)
	slug := Slugify(long)
	assert.LessOrEqual(t, len(slug), slugMaxLength)
	assert.False(t, strings.HasSuffix(slug, slugSeparator))

	// Truncation lands on a word boundary: every segment stays intact.
	for _, part := range strings.Split(slug, slugSeparator) {
		assert.Equal(t, "word", part)
	}
}

func TestSlugifySingleOverlongWord(t *testing.T) {
	slug := Slugify(strings.Repeat("x", 100))
	assert.Len(t, slug, slugMaxLength)
}

func TestRenderBody(t *testing.T) {
	assert.Equal(t, "<p>body of the <em>blog</em> post</p>", RenderBody("body of the *blog* post"))
	assert.Equal(t, "<h1>Heading</h1>", RenderBody("# Heading"))
}
