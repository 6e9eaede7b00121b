package extract

import (
	"context"
	"os"
	"strings"

	"github.com/opskit/awsmcp/internal/errors"
)

// TextExtractor handles plain-text formats that need no conversion.
type TextExtractor struct{}

// NewTextExtractor creates a plain-text extractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extensions implements Extractor.
func (e *TextExtractor) Extensions() []string {
	return []string{".txt", ".md"}
}

// Extract implements Extractor.
func (e *TextExtractor) Extract(ctx context.Context, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ExtractionFailed(path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, errors.ExtractionFailed(path, nil).WithDetail("reason", "no text content")
	}

	return &Document{
		Title: TitleFromPath(path),
		Text:  text,
	}, nil
}
