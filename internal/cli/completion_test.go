package cli

import (
	"slices"
	"testing"
)

func TestCompleteCharts(t *testing.T) {
	got, _ := completeCharts(nil, nil, "n")
	if !slices.Equal(got, []string{"neural", "network"}) {
		t.Errorf("completeCharts(n) = %v", got)
	}
	if got, _ := completeCharts(nil, []string{"orbit"}, ""); got != nil {
		t.Errorf("second arg completed: %v", got)
	}
}

func TestCompleteDatasets(t *testing.T) {
	got, _ := completeDatasets(nil, []string{"insight"}, "")
	if !slices.Equal(got, []string{"portfolio"}) {
		t.Errorf("completeDatasets(insight) = %v", got)
	}
	if got, _ := completeDatasets(nil, []string{"pie"}, ""); len(got) != 0 {
		t.Errorf("unknown chart completed: %v", got)
	}
}

func TestCompleteFormats(t *testing.T) {
	got, _ := completeFormats(nil, nil, "svg,p")
	if !slices.Equal(got, []string{"svg,png", "svg,pdf"}) {
		t.Errorf("completeFormats(svg,p) = %v", got)
	}
}

func TestViewFlagCompletions(t *testing.T) {
	c, _ := newTestCLI(t)
	cmd := c.renderCommand()
	for _, name := range []string{"range", "mode", "style", "dataset", "format"} {
		if _, ok := cmd.GetFlagCompletionFunc(name); !ok {
			t.Errorf("flag --%s has no completion", name)
		}
	}
}
