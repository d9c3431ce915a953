package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// documentNamespace scopes document IDs derived from content hashes
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/jonathan/campus-match/documents"))

// Metadata contains metadata about an ingested document
type Metadata struct {
	Source    string `json:"source,omitempty"` // File path or URL
	Format    Format `json:"format"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned text
	WordCount int    `json:"word_count"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, source string, format Format) *Metadata {
	return &Metadata{
		Source:    source,
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		WordCount: WordCount(content),
	}
}

// DocumentID returns a stable UUID for the document content.
// Identical text always yields the same ID.
func (m *Metadata) DocumentID() string {
	return uuid.NewSHA1(documentNamespace, []byte(m.Hash)).String()
}

// DocumentID returns the stable UUID for a piece of cleaned text
func DocumentID(content string) string {
	return uuid.NewSHA1(documentNamespace, []byte(computeHash(content))).String()
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
