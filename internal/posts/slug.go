package posts

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	slugSeparator = "-"
	slugMaxLength = 64
)

// Stopwords are dropped as whole words so that reordering or adding articles
// does not produce a different slug.
var slugStopwords = map[string]struct{}{
	"the": {},
	"a":   {},
	"an":  {},
}

var slugFolder = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives the normalized slug candidate for a title: accents folded,
// lowercased, stopwords stripped, non-alphanumeric runs collapsed into the
// separator, truncated to slugMaxLength at a word boundary. Deterministic and
// idempotent on already-slugified input. Collision suffixes are appended by
// the store probe, not here.
func Slugify(title string) string {
	folded, _, err := transform.String(slugFolder, title)
	if err != nil {
		folded = title
	}
	lower := strings.ToLower(folded)

	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})

	kept := words[:0:0]
	for _, w := range words {
		if _, stop := slugStopwords[w]; !stop {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		// A title made solely of stopwords keeps them rather than
		// collapsing to an empty slug.
		kept = words
	}
	if len(kept) == 0 {
		return "post"
	}

	var b strings.Builder
	for _, w := range kept {
		extra := len(w)
		if b.Len() > 0 {
			extra++
		}
		if b.Len()+extra > slugMaxLength {
			break
		}
		if b.Len() > 0 {
			b.WriteString(slugSeparator)
		}
		b.WriteString(w)
	}
	if b.Len() == 0 {
		// First word alone exceeds the limit; hard-truncate it.
		return kept[0][:slugMaxLength]
	}
	return b.String()
}
