package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/opskit/awsmcp/internal/errors"
)

// PDFExtractor extracts text from PDF files page by page.
// Pages that fail to decode are skipped with a warning; the document only
// fails when no text at all could be extracted.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDF extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extensions implements Extractor.
func (e *PDFExtractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract implements Extractor.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (*Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, errors.ExtractionFailed(path, err)
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	total := reader.NumPage()

	for num := 1; num <= total; num++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			slog.Warn("failed to extract PDF page",
				slog.String("path", path),
				slog.Int("page", num),
				slog.String("error", err.Error()))
			continue
		}

		text = CleanText(text)
		if text == "" {
			continue
		}
		fmt.Fprintf(&sb, "\n\n--- Page %d ---\n\n%s", num, text)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, errors.ExtractionFailed(path, nil).WithDetail("reason", "no text content")
	}

	return &Document{
		Title: TitleFromPath(path),
		Text:  text,
	}, nil
}
