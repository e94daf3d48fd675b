package chart

import "testing"

func TestFormatters(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{formatPrice(10234.567), "$10,234.57"},
		{formatPrice(5), "$5"},
		{formatVolume(1_234_567), "1.2M"},
		{formatVolume(890_000), "890.0k"},
		{formatPercent(45.2), "45.2%"},
		{formatChange(-0.17), "-0.17%"},
		{formatChange(12.45), "+12.45%"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
