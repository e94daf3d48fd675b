package errors

import (
	"math"
	"testing"
)

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"defaults", 0, 0, false},
		{"typical", 800, 600, false},
		{"max", MaxDimension, MaxDimension, false},

		{"negative", -1, 100, true},
		{"too large", 100, MaxDimension + 1, true},
		{"nan", math.NaN(), 100, true},
		{"inf", 100, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDimensions) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidDimensions)
			}
		})
	}
}

func TestValidateFinite(t *testing.T) {
	if err := ValidateFinite("rotation", 45); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateFinite("rotation", math.NaN()); err == nil {
		t.Error("expected error for NaN")
	}
}

func TestValidateSymbol(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"upper", "BTC", false},
		{"mixed", "Stokero", false},
		{"digits", "H1", false},

		{"empty", "", true},
		{"space", "BT C", true},
		{"slash", "BTC/USDT", true},
		{"too long", "ABCDEFGHIJKLMNOPQ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSymbol(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSymbol(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"simple", "btc", false},
		{"dashed", "ai-core", false},
		{"dotted", "q.1", false},

		{"leading dash", "-x", true},
		{"quote", `a"b`, true},
		{"angle", "<script>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURI(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"redis", "redis://localhost:6379/0", false},
		{"mongo", "mongodb://localhost:27017", false},
		{"mongo srv", "mongodb+srv://cluster.example.com", false},

		{"empty", "", true},
		{"http", "http://example.com", true},
		{"bare", "localhost:6379", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURI(tt.input, "redis", "rediss", "mongodb", "mongodb+srv")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURI(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
