package posts

import (
	"strings"

	"github.com/russross/blackfriday/v2"
)

// RenderBody converts a markdown body to HTML. The transform is deterministic:
// the rendered body is derived state, recomputed whenever the body changes and
// never accepted from clients.
func RenderBody(body string) string {
	return strings.TrimSpace(string(blackfriday.Run([]byte(body))))
}
