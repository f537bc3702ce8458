package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewReferenceCode returns a short human-quotable code like ORD-1A2B3C4D.
func NewReferenceCode(prefix string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s", prefix, id[:8])
}
