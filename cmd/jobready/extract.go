package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/jobready/internal/ingestion"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE...",
	Short: "Extract clean text from job postings or CVs",
	Long:  "Extract clean text from .txt, .md, .html and .docx files. With --out, the text and metadata of each file are written to the output directory.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExtract,
}

var extractOutDir string

func init() {
	extractCmd.Flags().StringVarP(&extractOutDir, "out", "o", "", "Output directory (default prints to stdout)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	docs, err := ingestion.ReadAll(commandContext(cmd), args)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	out := cmd.OutOrStdout()
	if extractOutDir == "" {
		for _, doc := range docs {
			fmt.Fprintf(out, "==> %s (%s, %d chars, %s)\n", doc.Metadata.Path, doc.Metadata.Format, doc.Metadata.Chars, doc.Metadata.Hash[:12])
			fmt.Fprintln(out, doc.Text)
		}
		return nil
	}

	for _, doc := range docs {
		textPath, err := writeDocument(extractOutDir, doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Extracted %s -> %s\n", doc.Metadata.Path, textPath)
	}
	return nil
}

// writeDocument writes <name>.cleaned.txt and <name>.meta.json into dir and
// returns the text path.
func writeDocument(dir string, doc *ingestion.Document) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(doc.Metadata.Path), filepath.Ext(doc.Metadata.Path))
	textPath := filepath.Join(dir, base+".cleaned.txt")
	if err := os.WriteFile(textPath, []byte(doc.Text), 0644); err != nil {
		return "", fmt.Errorf("failed to write cleaned text: %w", err)
	}

	meta, err := json.MarshalIndent(doc.Metadata, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, base+".meta.json"), meta, 0644); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}
	return textPath, nil
}
