package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are stripped before text extraction: they never carry
// resume or posting content.
var noiseSelectors = []string{"script", "style", "noscript", "nav", "header", "footer", "iframe", "svg"}

// LooksLikeHTML reports whether content is likely an HTML document rather
// than plain text.
func LooksLikeHTML(content string) bool {
	head := strings.ToLower(strings.TrimSpace(content))
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(head, "<!doctype html") ||
		strings.HasPrefix(head, "<html") ||
		strings.Contains(head, "<body")
}

// ExtractVisibleText parses HTML and returns its visible text, block
// elements separated by newlines.
func ExtractVisibleText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var sb strings.Builder
	doc.Find("body").Each(func(_ int, body *goquery.Selection) {
		body.Find("p, li, h1, h2, h3, h4, h5, h6, td, div").Each(func(_ int, s *goquery.Selection) {
			// Only leaf-ish blocks: skip containers whose children are blocks,
			// otherwise text duplicates at every nesting level.
			if s.Children().Filter("p, li, h1, h2, h3, h4, h5, h6, div, ul, ol, table").Length() > 0 {
				return
			}
			text := strings.TrimSpace(s.Text())
			if text != "" {
				sb.WriteString(text)
				sb.WriteString("\n")
			}
		})
	})

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		// Fallback for fragment input without a body element
		text = strings.TrimSpace(doc.Text())
	}
	return text, nil
}
