// Package uuidx mints and validates the record identifiers used by the store.
//
// Identifiers are random (version 4) UUIDs with the RFC 4122 variant, always
// rendered in the canonical 36-character hyphenated form:
//
//	xxxxxxxx-xxxx-4xxx-[89ab]xxx-xxxxxxxxxxxx
//
// Generation and validation agree on exactly this shape: uuid.Parse alone
// also accepts the braced and urn: forms, which IsValid rejects.
package uuidx

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// canonicalLen is the length of the hyphenated textual form.
const canonicalLen = 36

// ErrInvalidID is returned by Parse for anything that is not a canonical UUID4.
var ErrInvalidID = errors.New("not a valid UUID4")

// New returns a freshly generated UUID4 string.
func New() string {
	return uuid.NewString()
}

// IsValid reports whether s is a canonical version 4 UUID.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Parse returns the typed identifier for s or ErrInvalidID.
func Parse(s string) (uuid.UUID, error) {
	if len(s) != canonicalLen {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	if id.Version() != 4 || id.Variant() != uuid.RFC4122 {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// MustParse is like Parse but panics on invalid input. The optional context
// is appended to the panic message, e.g. "invalid UUID4 in deleteSim: abc".
func MustParse(s string, context ...string) uuid.UUID {
	id, err := Parse(s)
	if err != nil {
		if len(context) > 0 && context[0] != "" {
			panic(fmt.Sprintf("invalid UUID4 in %s: %s", context[0], s))
		}
		panic(fmt.Sprintf("invalid UUID4: %s", s))
	}
	return id
}
