package render

import (
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
)

// MinifyJS transpiles src to ES2015 and, unless debug is set, minifies it.
func MinifyJS(src string, debug bool) (string, error) {
	res := api.Transform(src, api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            api.ES2015,
		MinifySyntax:      !debug,
		MinifyIdentifiers: !debug,
		MinifyWhitespace:  !debug,
	})
	if len(res.Errors) > 0 {
		return "", fmt.Errorf("script failed with: %v", res.Errors[0].Text)
	}
	return string(res.Code), nil
}
