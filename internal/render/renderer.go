package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const PageTemplate = "page"

// Renderer executes the page and region templates. They are parsed once;
// html/template escapes every interpolated value for its context.
type Renderer struct {
	templates *template.Template
}

func New() (*Renderer, error) {
	templates, err := template.New(PageTemplate).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	for _, region := range Regions {
		if templates.Lookup(string(region)) == nil {
			return nil, fmt.Errorf("template for region %q is missing", region)
		}
	}

	return &Renderer{templates: templates}, nil
}

// StaticFS serves the bridge script.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// RenderPage writes the whole page.
func (r *Renderer) RenderPage(w io.Writer, view *PageView) error {
	return r.execute(w, PageTemplate, view)
}

// RenderRegion writes a single region's markup.
func (r *Renderer) RenderRegion(w io.Writer, region Region, view *PageView) error {
	if !region.Valid() {
		return fmt.Errorf("unknown region %q", region)
	}
	return r.execute(w, string(region), view)
}

// Render lets echo handlers use c.Render with a template name and a *PageView.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	view, ok := data.(*PageView)
	if !ok {
		return fmt.Errorf("render %s: expected *PageView, got %T", name, data)
	}
	if name == PageTemplate {
		return r.RenderPage(w, view)
	}
	return r.RenderRegion(w, Region(name), view)
}

// execute renders into a buffer first so a failing template never writes a
// half page.
func (r *Renderer) execute(w io.Writer, name string, view *PageView) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, view); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
