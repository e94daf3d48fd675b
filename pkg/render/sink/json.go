package sink

import (
	"encoding/json"

	"github.com/matzehuels/cryptoviz/pkg/render/styles"
	"github.com/matzehuels/cryptoviz/pkg/scene"
)

// JSONOption configures JSON export.
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	theme  *styles.Theme
	indent bool
}

// WithJSONTheme resolves paint tokens to the theme's colors before export.
func WithJSONTheme(t styles.Theme) JSONOption { return func(r *jsonRenderer) { r.theme = &t } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	*scene.Scene
	Theme string `json:"theme,omitempty"`
}

// RenderJSON exports the scene primitives.
func RenderJSON(s *scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Scene: s}
	if r.theme != nil {
		resolved := *s
		resolved.Items = resolveItems(s.Items, *r.theme)
		out = jsonOutput{Scene: &resolved, Theme: r.theme.Name}
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

func resolveItems(items []scene.Item, t styles.Theme) []scene.Item {
	out := make([]scene.Item, len(items))
	for i, it := range items {
		if it.Fill != "" {
			it.Fill = t.Resolve(it.Fill)
		}
		if it.Stroke != "" {
			it.Stroke = t.Resolve(it.Stroke)
		}
		if len(it.Children) > 0 {
			it.Children = resolveItems(it.Children, t)
		}
		out[i] = it
	}
	return out
}
