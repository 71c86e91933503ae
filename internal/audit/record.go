// Package audit records assembled system prompts to JSONL files and SQLite.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/kayz/sysprompt/internal/promptbuild"
)

// Record is one assembled document plus what produced it.
type Record struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	WorkspaceDir  string    `json:"workspace_dir"`
	RequestDigest string    `json:"request_digest"`
	Sections      []string  `json:"sections"`
	Prompt        string    `json:"prompt"`
}

// Sink persists records.
type Sink interface {
	Write(ctx context.Context, rec Record) error
}

// NewRecord builds a record for prompt, which must be Build(req).
func NewRecord(req promptbuild.BuildRequest, prompt string, now time.Time) Record {
	return Record{
		ID:            uuid.NewString(),
		Timestamp:     now.UTC(),
		WorkspaceDir:  req.WorkspaceDir,
		RequestDigest: RequestDigest(req),
		Sections:      promptbuild.IncludedSections(req),
		Prompt:        prompt,
	}
}

// RequestDigest is the hex SHA-256 of the request's JSON encoding. Equal
// requests always share a digest, so it identifies repeated assemblies.
func RequestDigest(req promptbuild.BuildRequest) string {
	payload, _ := json.Marshal(req)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
