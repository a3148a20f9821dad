package core

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewID generates a new ULID with the given prefix.
// The format is: prefix_ULID
// Example: core.NewID("doc") returns "doc_01G0EZ1XTM37C5X11SQTDNCTM1"
func NewID(prefix string) string {
	if strings.TrimSpace(prefix) == "" {
		panic("prefix cannot be empty")
	}

	// Generate a new ULID with current timestamp and crypto/rand entropy
	entropy := ulid.Monotonic(rand.Reader, 0)
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)

	return strings.ToLower(strings.TrimSpace(prefix)) + "_" + id.String()
}

// IsValidULID checks if the given string is a valid ULID format with prefix.
// The format should be: prefix_ULID where ULID is 26 characters, base32 encoded.
func IsValidULID(id string) bool {
	if id == "" {
		return false
	}

	parts := strings.Split(id, "_")
	if len(parts) != 2 {
		return false
	}

	prefix := parts[0]
	ulidPart := parts[1]

	if prefix == "" {
		return false
	}
	for _, r := range prefix {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return false
		}
	}

	if len(ulidPart) != 26 {
		return false
	}
	if _, err := ulid.ParseStrict(ulidPart); err != nil {
		return false
	}

	return true
}
