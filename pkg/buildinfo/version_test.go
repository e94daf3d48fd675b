package buildinfo

import (
	"strings"
	"testing"
)

func TestGetKeepsStampedValues(t *testing.T) {
	old := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = old[0], old[1], old[2] })
	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02T03:04:05Z"

	got := Get()
	if got.Version != "v1.2.3" || got.Commit != "abc123" || got.Date != "2026-01-02T03:04:05Z" {
		t.Errorf("Get() = %+v", got)
	}
	if !strings.HasPrefix(got.GoVersion, "go") {
		t.Errorf("GoVersion = %q", got.GoVersion)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	for _, want := range []string{"{{.Name}} version", "commit:", "built:", "go:"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() missing %q: %s", want, tmpl)
		}
	}
}
