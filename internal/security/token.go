package security

import (
	"strings"

	"github.com/google/uuid"
)

// NewSessionToken returns an opaque token suitable for a session cookie.
func NewSessionToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
