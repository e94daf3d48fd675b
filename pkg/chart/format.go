package chart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

func formatPrice(v float64) string {
	return "$" + humanize.CommafWithDigits(math.Round(v*100)/100, 2)
}

func formatVolume(v float64) string {
	value, prefix := humanize.ComputeSI(v)
	return fmt.Sprintf("%.1f%s", value, prefix)
}

func formatPercent(v float64) string { return fmt.Sprintf("%.1f%%", v) }

func formatChange(v float64) string { return fmt.Sprintf("%+.2f%%", v) }

func formatNumber(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
