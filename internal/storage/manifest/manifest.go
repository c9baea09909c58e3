// Package manifest holds the records kept for each generation run.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Status is the outcome of a run.
type Status string

const (
	StatusRunning Status = "running"
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
)

// Run is one invocation of the generator over a directory.
type Run struct {
	ID         string    `json:"id" yaml:"id"`
	Dir        string    `json:"dir" yaml:"dir"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
	Files      int       `json:"files" yaml:"files"`
	Variants   int       `json:"variants" yaml:"variants"`
	Status     Status    `json:"status" yaml:"status"`
}

// Entry records the code produced for one variant during a run.
type Entry struct {
	RunID     string   `json:"run_id" yaml:"run_id"`
	TypeName  string   `json:"type_name" yaml:"type_name"`
	Variant   string   `json:"variant,omitempty" yaml:"variant,omitempty"`
	Template  string   `json:"template" yaml:"template"`
	Rewritten string   `json:"rewritten" yaml:"rewritten"`
	Fields    []string `json:"fields" yaml:"fields"`
	Hash      string   `json:"hash" yaml:"hash"`
	Output    string   `json:"output" yaml:"output"`
}

// Label names the variant the way diagnostics do: Type.Variant or Type.
func (e Entry) Label() string {
	if e.Variant == "" {
		return e.TypeName
	}
	return e.TypeName + "." + e.Variant
}

// Hash fingerprints generated output so later runs can report unchanged variants.
func Hash(template, output string) string {
	h := sha256.New()
	h.Write([]byte(template))
	h.Write([]byte{0})
	h.Write([]byte(output))
	return hex.EncodeToString(h.Sum(nil))
}

// ShortID trims an identifier or hash for tabular output.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
