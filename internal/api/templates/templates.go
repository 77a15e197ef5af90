package templates

import (
	"embed"
	"html/template"
	"net/url"
	"strings"

	"retail-dashboard/internal/render"
)

//go:embed *.html
var files embed.FS

// Load parses every page template. Pages are looked up by file name.
func Load() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "*.html")
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"toneClass":  func(t render.Tone) string { return "tone-" + string(t) },
		"title":      func(s string) string { return strings.ReplaceAll(s, "_", " ") },
		"pathEscape": url.PathEscape,
	}
}
