package models

import "unicode/utf8"

const (
	MinKeyLength   = 0
	MaxKeyLength   = 100
	MinValueLength = 0
	MaxValueLength = 10_000

	// MaxMetadataPerSim is a soft cap, checked by callers through
	// WouldExceedMetadataLimit before they add an entry.
	MaxMetadataPerSim = 20

	DefaultValuePreviewLength = 50
)

// Metadata is a key/value attribute owned by the Sim named in EntityID.
type Metadata struct {
	ID       string `json:"id"`
	EntityID string `json:"entity_id"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

type CreateMetadataInput struct {
	EntityID string `json:"entity_id"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

// UpdateMetadataInput changes only the non-nil fields.
type UpdateMetadataInput struct {
	Key   *string `json:"key,omitempty"`
	Value *string `json:"value,omitempty"`
}

func IsValidKeyLength(key string) bool {
	n := utf8.RuneCountInString(key)
	return n >= MinKeyLength && n <= MaxKeyLength
}

func IsValidValueLength(value string) bool {
	n := utf8.RuneCountInString(value)
	return n >= MinValueLength && n <= MaxValueLength
}

func TruncateKey(key string) string {
	return truncate(key, MaxKeyLength)
}

func TruncateValue(value string) string {
	return truncate(value, MaxValueLength)
}

// GetValuePreview shortens value for list views; maxLength defaults to
// DefaultValuePreviewLength when not positive.
func GetValuePreview(value string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultValuePreviewLength
	}
	return GetPreview(value, maxLength)
}

// HasMetadataContent reports whether both key and value are non-blank.
func HasMetadataContent(md Metadata) bool {
	return HasContent(md.Key) && HasContent(md.Value)
}

// WouldExceedMetadataLimit reports whether an entity that already owns
// count entries is at the soft cap.
func WouldExceedMetadataLimit(count int) bool {
	return count >= MaxMetadataPerSim
}
