// Package view wires html/template into Echo's Renderer interface.
// Templates are embedded into the binary so the server has no runtime
// file dependencies. The markup is deliberately minimal: pages exist to
// carry repository output, not to be a design system.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded template set.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates. Each file is addressed by its
// base name, e.g. c.Render(http.StatusOK, "venues.html", data).
func New() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render executes the named template with the given data.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
