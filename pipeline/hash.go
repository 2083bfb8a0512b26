package pipeline

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ContentHash returns a short stable hash of extracted content, recorded
// in result metadata so callers can detect unchanged pages across runs.
func ContentHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
