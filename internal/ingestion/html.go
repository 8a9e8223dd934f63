package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contentSelectors are tried in order; the first match is the document body.
var contentSelectors = []string{
	".job-description",
	"#job-description",
	".job-details",
	".posting-content",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

// noiseSelectors are removed before text extraction.
const noiseSelectors = "nav, footer, header, script, style, noscript, .ad, .advertisement, .sidebar, .cookie-banner, .popup"

// ExtractHTMLText parses HTML and returns the main body text, one block per line.
// If no content selector matches, the whole body is used.
func ExtractHTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelectors).Remove()

	var main *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	// Keep list items and block elements on their own lines.
	main.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})
	main.Find("p, li, h1, h2, h3, h4, h5, h6, br, div, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return cleanWhitespace(main.Text()), nil
}

// cleanWhitespace trims each line and drops empty ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
