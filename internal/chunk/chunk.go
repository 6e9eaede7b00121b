// Package chunk splits extracted document text into overlapping windows.
//
// Windows are fixed-size with stride (size - overlap), measured in runes
// so a boundary never splits a multi-byte character; the last window may
// be shorter. For text of rune length L > size the chunk count is exactly
// ceil((L-overlap)/(size-overlap)), and L <= size yields a single chunk.
// The non-overlap portions of consecutive chunks concatenate back to the
// original text, which is what makes re-ingestion reproducible.
package chunk

import (
	"github.com/opskit/awsmcp/internal/errors"
)

// Config is a validated (size, overlap) pair, in characters.
type Config struct {
	Size    int
	Overlap int
}

// Validate checks the chunk geometry. overlap must be smaller than size and
// both non-negative; violating this is a startup error, not a per-file one.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return errors.InvalidChunkConfig("chunk size must be positive")
	}
	if c.Overlap < 0 {
		return errors.InvalidChunkConfig("chunk overlap must be non-negative")
	}
	if c.Overlap >= c.Size {
		return errors.InvalidChunkConfig("chunk overlap must be smaller than chunk size")
	}
	return nil
}

// Chunker produces overlapping windows over text.
type Chunker struct {
	cfg Config
}

// New creates a Chunker, validating the configuration.
func New(cfg Config) (*Chunker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Chunker{cfg: cfg}, nil
}

// NewFromPreset creates a Chunker from a named preset.
func NewFromPreset(name string) (*Chunker, error) {
	cfg, err := Preset(name)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// Config returns the chunker's geometry.
func (c *Chunker) Config() Config {
	return c.cfg
}

// Split returns the ordered chunk windows of text.
// Empty text yields no chunks.
func (c *Chunker) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= c.cfg.Size {
		return []string{text}
	}

	stride := c.cfg.Size - c.cfg.Overlap
	chunks := make([]string, 0, (len(runes)-c.cfg.Overlap+stride-1)/stride)

	for start := 0; start < len(runes); start += stride {
		end := start + c.cfg.Size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
