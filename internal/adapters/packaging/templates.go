package packaging

import (
	"bytes"
	"embed"
	"text/template"

	"go.trai.ch/zerr"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

func render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to render template"), "template", name)
	}
	return buf.Bytes(), nil
}
