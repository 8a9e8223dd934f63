package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// jobIDLength is the number of hex characters kept from the job hash.
const jobIDLength = 16

// Metadata describes an ingested document.
type Metadata struct {
	Path      string `json:"path"`
	Format    string `json:"format"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned text
	Chars     int    `json:"chars"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content, path, format string) *Metadata {
	return &Metadata{
		Path:      path,
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Chars:     len(content),
	}
}

// JobID returns the content hash identifying a job posting. Identical
// title, company and text always give the same id.
func JobID(title, company, rawText string) string {
	return computeHash(title + "\x00" + company + "\x00" + rawText)[:jobIDLength]
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
