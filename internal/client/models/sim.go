package models

import (
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/simkeeper/internal/uuidx"
)

const (
	MinLogLength = 0
	MaxLogLength = 10_000

	// MaxSims is the system-wide limit on stored Sims. It is advisory; the
	// store does not enforce it.
	MaxSims = 10_000

	DefaultLogPreviewLength = 100
)

// Sim is the primary record. Timestamps are milliseconds since the Unix
// epoch.
type Sim struct {
	ID        string `json:"id"`
	Log       string `json:"log"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// Validate rejects a decoded Sim that cannot be a stored record. A nil Sim
// is left to the caller.
func (s *Sim) Validate() error {
	if s == nil {
		return nil
	}
	if !uuidx.IsValid(s.ID) {
		return fmt.Errorf("invalid sim id %q", s.ID)
	}
	return nil
}

// CreateSimInput carries the caller-supplied fields of a new Sim. A nil Log
// means an empty one.
type CreateSimInput struct {
	Log *string `json:"log,omitempty"`
}

// UpdateSimInput carries the fields to change. Nil fields are left alone;
// a nil UpdatedAt is stamped automatically.
type UpdateSimInput struct {
	Log       *string `json:"log,omitempty"`
	UpdatedAt *int64  `json:"updatedAt,omitempty"`
}

func IsValidLogLength(log string) bool {
	n := utf8.RuneCountInString(log)
	return n >= MinLogLength && n <= MaxLogLength
}

// TruncateLog cuts log to MaxLogLength characters.
func TruncateLog(log string) string {
	return truncate(log, MaxLogLength)
}

// GetLogPreview shortens log for list views; maxLength defaults to
// DefaultLogPreviewLength when not positive.
func GetLogPreview(log string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultLogPreviewLength
	}
	return GetPreview(log, maxLength)
}

// HasLogContent reports whether the Sim's log has any non-whitespace text.
func HasLogContent(sim Sim) bool {
	return HasContent(sim.Log)
}
