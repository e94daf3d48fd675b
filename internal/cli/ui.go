package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/matzehuels/cryptoviz/pkg/render/styles"
)

// Terminal colors follow the cyber chart theme; grays stay ANSI so they
// read on light terminals too.
var (
	colorPrimary = lipgloss.Color(styles.Cyber.Primary)
	colorUp      = lipgloss.Color(styles.Cyber.Up)
	colorDown    = lipgloss.Color(styles.Cyber.Down)
	colorYellow  = lipgloss.Color(styles.Cyber.Highlight)
	colorBlue    = lipgloss.Color(styles.Cyber.Muted)
	colorWhite   = lipgloss.Color("255")
	colorGray    = lipgloss.Color("245")
	colorDim     = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorPrimary)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorPrimary)

	// StyleUp and StyleDown color price moves.
	StyleUp   = lipgloss.NewStyle().Foreground(colorUp)
	StyleDown = lipgloss.NewStyle().Foreground(colorDown)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorUp)
	styleIconError   = lipgloss.NewStyle().Foreground(colorDown)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorPrimary)

	styleCached   = lipgloss.NewStyle().Foreground(colorUp)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output file.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printStats prints render statistics on one line: scene items, bytes
// written, elapsed time and whether the frame came from the cache.
func printStats(items int, size int, elapsed time.Duration, cached bool) {
	var parts []string
	if items > 0 {
		parts = append(parts, humanize.Comma(int64(items))+" items")
	}
	if size > 0 {
		parts = append(parts, humanize.Bytes(uint64(size)))
	}
	if elapsed > 0 {
		parts = append(parts, elapsed.Round(time.Millisecond).String())
	}

	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	sep := StyleDim.Render(" · ")
	for i := range len(parts) - 1 {
		parts[i] = StyleDim.Render(parts[i])
	}
	fmt.Println("  " + strings.Join(parts, sep))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// valueStyle colors signed changes like "+2.10%" by direction.
func valueStyle(v string) lipgloss.Style {
	switch {
	case strings.HasPrefix(v, "+"):
		return StyleUp
	case strings.HasPrefix(v, "-"):
		return StyleDown
	default:
		return StyleValue
	}
}
