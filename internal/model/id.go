package model

import (
	"strings"

	"github.com/google/uuid"
)

// NewID mints a 12-hex-character identifier drawn from a uniformly random
// source. It trims the dashes from a v4 UUID and keeps the first 12 hex
// digits — enough entropy for this project's scale while matching the
// "12-hex-character tokens" shape every record in the data model uses.
func NewID() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return raw[:12]
}
