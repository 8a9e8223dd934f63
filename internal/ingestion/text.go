// Package ingestion reads CVs and job postings from disk and returns clean text.
package ingestion

import (
	"strings"
)

// bulletGlyphs are list markers left by word processors and pasted postings.
// A line starting with one is rewritten to the "- " marker ExtractHTMLText uses.
// U+F0B7 is the Symbol-font bullet Word stores for its default list style.
var bulletGlyphs = []string{"•", "◦", "▪", "▫", "‣", "●", "○", "■", "□", "·", "\uf0b7", "* ", "– "}

var invisibleRunes = strings.NewReplacer(
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\u00ad", "",
	"\ufeff", "",
)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// CleanText normalizes extracted text to one trimmed line per block.
// Whitespace runs inside a line (tabs and non-breaking spaces included)
// become a single space, bullets become "- ", and blank runs collapse to
// one empty line. The result has no leading or trailing blank lines.
func CleanText(content string) string {
	content = invisibleRunes.Replace(lineEndings.Replace(content))

	var out []string
	pendingBlank := false
	for _, line := range strings.Split(content, "\n") {
		line = normalizeBullet(strings.Join(strings.Fields(line), " "))
		if line == "" {
			pendingBlank = len(out) > 0
			continue
		}
		if pendingBlank {
			out = append(out, "")
			pendingBlank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// normalizeBullet rewrites a leading bullet glyph to "- ". HTML list items
// already carry "- ", so a glyph right after it is dropped. A bullet with no
// text becomes an empty line.
func normalizeBullet(line string) string {
	rest := strings.TrimPrefix(line, "- ")
	for _, glyph := range bulletGlyphs {
		after, ok := strings.CutPrefix(rest, glyph)
		if !ok {
			continue
		}
		after = strings.TrimSpace(after)
		if after == "" {
			return ""
		}
		return "- " + after
	}
	return line
}
