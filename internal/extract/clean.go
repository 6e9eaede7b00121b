package extract

import (
	"regexp"
	"strings"
)

// PDF text streams lose word boundaries and carry page furniture; these
// patterns repair the common cases before chunking.
var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	camelBoundary  = regexp.MustCompile(`([a-z])([A-Z])`)
	sentenceBound  = regexp.MustCompile(`([.!?])([A-Z])`)
	pageNumberRe   = regexp.MustCompile(`\n\d+\n`)
	copyrightRe    = regexp.MustCompile(`\n[^\n]*©[^\n]*\n`)
	confidentialRe = regexp.MustCompile(`(?i)\n[^\n]*confidential[^\n]*\n`)
)

// CleanText normalizes text extracted from a PDF page.
func CleanText(text string) string {
	text = pageNumberRe.ReplaceAllString(text, "\n")
	text = copyrightRe.ReplaceAllString(text, "\n")
	text = confidentialRe.ReplaceAllString(text, "\n")

	text = whitespaceRe.ReplaceAllString(text, " ")
	text = camelBoundary.ReplaceAllString(text, "$1 $2")
	text = sentenceBound.ReplaceAllString(text, "$1 $2")

	return strings.TrimSpace(text)
}
