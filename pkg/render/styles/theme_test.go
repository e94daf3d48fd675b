package styles

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		theme Theme
		paint string
		want  string
	}{
		{Cyber, "primary", "#00ffff"},
		{Cyber, "up", "#00ff88"},
		{Neural, "down", "#ef4444"},
		{Neural, "", "none"},
		{Neural, "none", "none"},
		{Cyber, "series-0", "#00ff88"},
		{Cyber, "series-9", "#00aaff"},
		{Cyber, "#f7931a", "#f7931a"},
		{Cyber, "url(#grad)", "url(#grad)"},
	}
	for _, tt := range tests {
		t.Run(tt.theme.Name+"/"+tt.paint, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.theme.Resolve(tt.paint))
		})
	}
}

func TestLookup(t *testing.T) {
	th, ok := Lookup("CYBER")
	assert.True(t, ok)
	assert.Equal(t, "cyber", th.Name)

	_, ok = Lookup("sepia")
	assert.False(t, ok)

	assert.Equal(t, []string{"cyber", "neural"}, Names())
}

func TestRenderDefs(t *testing.T) {
	var buf bytes.Buffer
	Neural.RenderDefs(&buf)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "  <defs>"))
	assert.Contains(t, out, `id="glow"`)
	assert.Contains(t, out, `x="-50%"`)
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt; &amp; &#34;c&#34;", EscapeXML(`a <b> & "c"`))
}
