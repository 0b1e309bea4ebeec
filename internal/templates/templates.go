package templates

import (
	"embed"
	"io/fs"
	"os"
	"regexp"
)

//go:embed resources
var resourcesFS embed.FS

var tokenPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_.\-]+)\}`)

// Default returns the embedded template tree.
func Default() fs.FS {
	sub, err := fs.Sub(resourcesFS, "resources")
	if err != nil {
		panic("templates: embedded resources missing: " + err.Error())
	}
	return sub
}

// Source returns the template tree at dir, or the embedded tree when dir is
// empty.
func Source(dir string) fs.FS {
	if dir == "" {
		return Default()
	}
	return os.DirFS(dir)
}

// Render substitutes ${key} tokens in s. Unknown keys are kept verbatim.
func Render(s string, bindings map[string]string) string {
	return tokenPattern.ReplaceAllStringFunc(s, func(token string) string {
		key := tokenPattern.FindStringSubmatch(token)[1]
		if v, ok := bindings[key]; ok {
			return v
		}
		return token
	})
}
