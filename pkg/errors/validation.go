package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxCells caps rows*cols for a single grid so that a request cannot allocate
// an unbounded cell array.
const MaxCells = 4_000_000

// ValidateDimensions checks grid dimensions.
//
// Validation rules:
//   - rows and cols must both be positive
//   - rows*cols must not exceed MaxCells
func ValidateDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return New(ErrCodeInvalidConfiguration, "grid dimensions must be positive, got %dx%d", rows, cols)
	}
	if rows > MaxCells/cols {
		return New(ErrCodeInvalidConfiguration, "grid %dx%d exceeds %d cells", rows, cols, MaxCells)
	}
	return nil
}

// ValidateFraction checks a blocked-cell fraction. Valid fractions lie in [0, 1);
// a fraction of 1 would ask the sampler to block every cell, which never terminates.
func ValidateFraction(fraction float64) error {
	if math.IsNaN(fraction) || fraction < 0 || fraction >= 1 {
		return New(ErrCodeInvalidConfiguration, "block coverage must be in [0, 1), got %v", fraction)
	}
	return nil
}

// ValidateRadius checks a tower radius.
func ValidateRadius(radius int) error {
	if radius < 0 {
		return New(ErrCodeInvalidConfiguration, "radius must be >= 0, got %d", radius)
	}
	return nil
}

// ValidatePath validates an output path supplied by a user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
