package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer turns the text of message and error tables into safe HTML fragments.
// Messages are markdown: numbered guidance becomes a list and single newlines become line breaks.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	// Raw HTML in the source is escaped by goldmark; table and view names typed by the user end up
	// in messages verbatim.
	md := goldmark.New(
		goldmark.WithExtensions(extension.Linkify),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	policy := bluemonday.NewPolicy()
	policy.AllowElements("p", "br", "ol", "ul", "li", "code", "strong", "em")
	policy.AllowStandardURLs()
	policy.AllowAttrs("href").OnElements("a")
	policy.RequireNoFollowOnLinks(true)

	return &Renderer{
		md:     md,
		policy: policy,
	}
}

// Render converts text to HTML and sanitizes the result.
func (r *Renderer) Render(text string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to render message: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}
