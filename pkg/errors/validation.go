package errors

import (
	"math"
	"regexp"
	"strings"
)

// MaxDimension is the largest accepted chart width or height in pixels.
const MaxDimension = 8192

// ValidateDimensions checks a requested chart size. Zero means "use the
// chart default" and is accepted; anything else must be a finite positive
// number no larger than MaxDimension.
func ValidateDimensions(w, h float64) error {
	for _, v := range []float64{w, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidDimensions, "dimensions must be finite numbers")
		}
		if v < 0 {
			return New(ErrCodeInvalidDimensions, "dimensions cannot be negative")
		}
		if v > MaxDimension {
			return New(ErrCodeInvalidDimensions, "dimensions too large (max %d)", MaxDimension)
		}
	}
	return nil
}

// ValidateFinite checks that a numeric parameter is a finite number.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	}
	return nil
}

// symbolRegex matches ticker symbols.
var symbolRegex = regexp.MustCompile(`^[A-Za-z0-9]{1,16}$`)

// ValidateSymbol validates an asset ticker symbol.
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return New(ErrCodeInvalidInput, "symbol cannot be empty")
	}
	if !symbolRegex.MatchString(symbol) {
		return New(ErrCodeInvalidInput, "invalid symbol: %q", symbol)
	}
	return nil
}

// idRegex matches node identifiers.
var idRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// ValidateNodeID validates a network node identifier used for hover
// selection. Empty means no selection and is accepted.
func ValidateNodeID(id string) error {
	if id == "" {
		return nil
	}
	if !idRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid node id: %q", id)
	}
	return nil
}

// ValidateURI checks that a connection URI uses one of the given schemes.
func ValidateURI(raw string, schemes ...string) error {
	if raw == "" {
		return New(ErrCodeInvalidConfig, "URI cannot be empty")
	}
	for _, s := range schemes {
		if strings.HasPrefix(raw, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "URI must use one of the schemes %s", strings.Join(schemes, ", "))
}
