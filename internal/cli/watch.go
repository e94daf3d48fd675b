package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cryptoviz/pkg/anim"
	"github.com/matzehuels/cryptoviz/pkg/chart"
	"github.com/matzehuels/cryptoviz/pkg/market"
	"github.com/matzehuels/cryptoviz/pkg/pipeline"
	"github.com/matzehuels/cryptoviz/pkg/scene"
	"github.com/matzehuels/cryptoviz/pkg/viewport"
)

// Terminal cells are mapped to pixels at this size when the window resizes.
const (
	cellWidth  = 8
	cellHeight = 16
)

var (
	watchLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	watchPausedText = lipgloss.NewStyle().Foreground(colorYellow).Render("paused")
)

// watchCommand previews an animated chart in the terminal.
func (c *CLI) watchCommand() *cobra.Command {
	var opts pipeline.Options
	var fps int

	cmd := &cobra.Command{
		Use:   "watch <chart>",
		Short: "Preview a chart's animation and hover state in the terminal",
		Long: `Run a chart's animation driver and show the frame state live: clock,
size, item count and the tooltip of the hovered element. Resizing the
terminal resizes the chart through its viewport bounds.

Keys: ←/→ hover  r range  m mode  s save SVG  space pause  q quit`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeCharts,
		PreRun: func(cmd *cobra.Command, args []string) {
			mergeUnset(cmd, &opts, c.baseOptions(args[0]))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Chart = args[0]
			if !cmd.Flags().Changed("fps") {
				fps = c.Config.Server.FPS
			}
			return runWatch(cmd.Context(), opts, fps)
		},
	}

	addViewFlags(cmd, &opts)
	cmd.Flags().IntVar(&fps, "fps", 0, "frame rate cap (default from config)")

	return cmd
}

// frameMsg is one driver tick. The model advances its own clock, so a
// paused preview resumes where it stopped.
type frameMsg struct{}

// savedMsg reports a written snapshot.
type savedMsg struct {
	path string
	err  error
}

// watchModel is the bubbletea model for the watch command.
type watchModel struct {
	opts     pipeline.Options
	observer *viewport.Observer
	clock    anim.Clock
	interval time.Duration

	scene  *scene.Scene
	keys   []string // hover targets in paint order
	cursor int      // index into keys, -1 for none
	paused bool
	status string
	err    error
}

func newWatchModel(opts pipeline.Options, b viewport.Bounds, start anim.Clock, interval time.Duration) watchModel {
	m := watchModel{
		opts:     opts,
		observer: viewport.NewObserverAt(b, viewport.Size{W: opts.Width, H: opts.Height}),
		clock:    start,
		interval: interval,
		cursor:   -1,
	}
	size := m.observer.Size()
	m.opts.Width, m.opts.Height = size.W, size.H
	return m.rebuild()
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if m.paused {
			return m, nil
		}
		m.clock = m.clock.Tick()
		return m.rebuild(), nil
	case tea.WindowSizeMsg:
		if m.observer.Resize(viewport.Size{W: float64(msg.Width * cellWidth), H: float64(msg.Height * cellHeight)}) {
			size := m.observer.Size()
			m.opts.Width, m.opts.Height = size.W, size.H
			return m.rebuild(), nil
		}
	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = "saved " + msg.path
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "tab":
			return m.hover(m.cursor + 1), nil
		case "left", "h", "shift+tab":
			return m.hover(m.cursor - 1), nil
		case "r":
			m.opts.Range = string(market.Range(m.opts.Range).Next())
			return m.rebuild(), nil
		case "m":
			m.opts.Mode = string(market.Mode(m.opts.Mode).Toggle())
			return m.rebuild(), nil
		case " ":
			m.paused = !m.paused
		case "s":
			return m, m.save()
		}
	}
	return m, nil
}

// hover moves the selection; stepping past either end clears it.
func (m watchModel) hover(i int) watchModel {
	switch {
	case len(m.keys) == 0:
		i = -1
	case i >= len(m.keys):
		i = -1
	case i < -1:
		i = len(m.keys) - 1
	}
	m.cursor = i
	m.opts.Hover, m.opts.HoverID = chart.NoHover, ""
	if i >= 0 {
		key := m.keys[i]
		if n, err := strconv.Atoi(key); err == nil {
			m.opts.Hover = n
		} else {
			m.opts.HoverID = key
		}
	}
	return m.rebuild()
}

// rebuild lays out the current frame.
func (m watchModel) rebuild() watchModel {
	s, err := pipeline.Scene(m.opts.WithClock(m.clock))
	if err != nil {
		m.err = err
		return m
	}
	m.scene, m.err = s, nil
	m.keys = hoverKeys(s.Items, nil)
	if m.cursor >= len(m.keys) {
		m.cursor = -1
	}
	return m
}

// save writes the current frame as SVG.
func (m watchModel) save() tea.Cmd {
	if m.scene == nil {
		return nil
	}
	s, opts := m.scene, m.opts
	return func() tea.Msg {
		data, err := pipeline.RenderFormat(context.Background(), s, pipeline.FormatSVG, opts)
		if err != nil {
			return savedMsg{err: err}
		}
		path := fmt.Sprintf("%s-%d.svg", opts.Chart, m.clock.Ticks)
		return savedMsg{path: path, err: writeFile(path, data)}
	}
}

// hoverKeys collects the hover targets of items and their children,
// keeping the first occurrence of each.
func hoverKeys(items []scene.Item, keys []string) []string {
	for _, it := range items {
		if k, ok := it.Data["hover"]; ok && !lo.Contains(keys, k) {
			keys = append(keys, k)
		}
		keys = hoverKeys(it.Children, keys)
	}
	return keys
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Watching " + m.opts.Chart))
	if m.paused {
		b.WriteString("  " + watchPausedText)
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ hover  r range  m mode  s save  space pause  q quit"))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(watchLabelStyle.Render(label) + " " + StyleValue.Render(value) + "\n")
	}
	row("Clock", fmt.Sprintf("%6.1f°  phase %5.1f  tick %s", m.clock.Angle(), m.clock.Phase.Value, humanize.Comma(int64(m.clock.Ticks))))
	row("Interval", m.interval.String())
	row("Size", fmt.Sprintf("%.0f×%.0f", m.opts.Width, m.opts.Height))
	if m.opts.Chart == string(chart.KindInsight) {
		row("Range", m.opts.Range+"  "+m.opts.Mode)
	}
	if m.scene != nil {
		row("Items", strconv.Itoa(len(m.scene.Items)))
	}
	hovered := "none"
	if m.cursor >= 0 {
		hovered = fmt.Sprintf("%s (%d/%d)", m.keys[m.cursor], m.cursor+1, len(m.keys))
	}
	row("Hover", hovered)

	if m.err != nil {
		b.WriteString("\n" + styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
	}
	if m.scene != nil && m.scene.Tooltip != nil {
		b.WriteString("\n" + tooltipTable(m.scene.Tooltip) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + StyleDim.Render(m.status) + "\n")
	}
	return b.String()
}

// tooltipTable renders a tooltip card.
func tooltipTable(tt *scene.Tooltip) string {
	rows := make([][]string, 0, len(tt.Lines))
	for _, l := range tt.Lines {
		rows = append(rows, []string{l.Label, l.Value})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(tt.Title, "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return StyleHighlight.Bold(true)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return valueStyle(rows[row][col])
		}).
		Render()
}

// runWatch runs the preview until the user quits or ctx ends. The driver
// is stopped before returning, so no frame arrives after exit.
func runWatch(ctx context.Context, opts pipeline.Options, fps int) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	ch, err := chart.Lookup(chart.Kind(opts.Chart))
	if err != nil {
		return err
	}
	ds := opts.Dataset
	if ds == "" {
		ds = ch.Datasets()[0]
	}
	preset := ch.Preset(ds)
	interval := preset.Interval
	if fps > 0 {
		interval = max(interval, time.Second/time.Duration(fps))
	}
	start := preset.Clock.At(opts.Rotation).AtPhase(opts.Phase)

	p := tea.NewProgram(newWatchModel(opts, ch.Bounds(), start, interval), tea.WithContext(ctx))
	driver := anim.NewDriver(start, interval, func(anim.Clock) error {
		p.Send(frameMsg{})
		return nil
	})
	driver.Start(ctx)
	_, err = p.Run()
	driver.Stop()
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
