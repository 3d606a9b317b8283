// Package content renders and sanitizes user-authored calendar content.
//
// Day payloads of type "text" and "letter" are Markdown written by the
// calendar's creator; everything else (image URLs, embed codes, quiz JSON)
// is stored and returned opaque. Guestbook input comes from arbitrary
// visitors and is stripped to plain text.
package content

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/instantcheese/adventcal/internal/database"
)

var (
	// Raw HTML passes through the renderer so the sanitizer sees it; the
	// bluemonday pass below is what keeps the output safe.
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithUnsafe()),
	)

	// ugcPolicy keeps the formatting tags Markdown emits and nothing else.
	ugcPolicy = bluemonday.UGCPolicy()

	// textPolicy strips all markup.
	textPolicy = bluemonday.StrictPolicy()
)

// RenderMarkdown converts creator-authored Markdown to sanitized HTML.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return ugcPolicy.Sanitize(buf.String()), nil
}

// IsMarkdownType reports whether a content type carries Markdown.
func IsMarkdownType(ct database.ContentType) bool {
	return ct == database.ContentTypeText || ct == database.ContentTypeLetter
}

// SanitizeText strips any markup from visitor-supplied text and trims
// surrounding whitespace. Used for guestbook names and messages.
func SanitizeText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}
