package paths

import (
	"strings"

	"github.com/arthur-debert/xfmt/pkg/errors"
)

// ValidatePath performs basic validation on a user supplied path.
// It checks for:
// - Empty paths
// - Null bytes
// - Excessive path length
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Check path length (common filesystem limit)
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ShadowName returns the name a file is renamed to while it is hidden from
// tool auto-discovery: the original base name with a leading underscore.
func ShadowName(fileName string) string {
	return "_" + fileName
}
