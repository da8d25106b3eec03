package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateOutputBase validates the base name used for output artifacts.
// The base may include a directory, but must name a file: it cannot be empty,
// end in a path separator, carry a format extension, or contain control characters.
func ValidateOutputBase(base string) error {
	if base == "" {
		return New(ErrCodeUsage, "output base name cannot be empty")
	}

	const maxLength = 255
	if len(filepath.Base(base)) > maxLength {
		return New(ErrCodeUsage, "output base name too long (max %d characters)", maxLength)
	}

	for _, r := range base {
		if unicode.IsControl(r) {
			return New(ErrCodeUsage, "output base name contains invalid control characters")
		}
	}

	if strings.HasSuffix(base, "/") || strings.HasSuffix(base, string(filepath.Separator)) {
		return New(ErrCodeUsage, "output base name must name a file, not a directory: %q", base)
	}

	switch strings.ToLower(filepath.Ext(base)) {
	case ".svg", ".png", ".pdf":
		return New(ErrCodeUsage, "output base name must not include a format extension: %q", base)
	}

	return nil
}

// ValidateLimits checks a manually configured axis range.
func ValidateLimits(axis string, lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return New(ErrCodeInvalidInput, "%s limits must be finite numbers", axis)
	}
	if lo >= hi {
		return New(ErrCodeInvalidInput, "%s limits must be increasing (got %g, %g)", axis, lo, hi)
	}
	return nil
}
