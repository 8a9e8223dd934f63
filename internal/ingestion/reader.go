package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/jobready/internal/apperr"
	"golang.org/x/sync/errgroup"
)

// Supported formats, keyed by lower-case extension.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatDOCX = "docx"
)

var formatsByExt = map[string]string{
	".txt":  FormatText,
	".md":   FormatText,
	".html": FormatHTML,
	".htm":  FormatHTML,
	".docx": FormatDOCX,
}

// maxConcurrentReads bounds ReadAll.
const maxConcurrentReads = 4

// Document is the cleaned text of one file.
type Document struct {
	Text     string    `json:"text"`
	Metadata *Metadata `json:"metadata"`
}

// FormatOf returns the format for path, or an apperr InvalidFormat error.
func FormatOf(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := formatsByExt[ext]
	if !ok {
		return "", apperr.InvalidFormat("read document", fmt.Sprintf("unsupported file type %q", ext), nil)
	}
	return format, nil
}

// ReadDocument reads path and returns its cleaned plain text.
func ReadDocument(path string) (string, error) {
	doc, err := Ingest(path)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

// Ingest reads path, dispatching on its extension, and returns the cleaned
// text with metadata. Missing files are apperr NotFound; unsupported
// extensions and unreadable content are apperr InvalidFormat.
func Ingest(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.NotFound("read document", fmt.Sprintf("file not found: %s", path), err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var text string
	switch format {
	case FormatHTML:
		text, err = ExtractHTMLText(string(data))
	case FormatDOCX:
		text, err = ExtractDOCXText(data)
	default:
		text = string(data)
	}
	if err != nil {
		return nil, apperr.InvalidFormat("read document", filepath.Base(path), err)
	}

	cleaned := CleanText(text)
	return &Document{Text: cleaned, Metadata: NewMetadata(cleaned, path, format)}, nil
}

// ReadAll ingests several files concurrently. Results keep the order of
// paths; the first failure cancels the rest.
func ReadAll(ctx context.Context, paths []string) ([]*Document, error) {
	docs := make([]*Document, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := Ingest(path)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
