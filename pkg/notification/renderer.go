package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
)

//go:embed templates/*
var templateFiles embed.FS

// Renderer turns a body template reference plus a RenderContext into HTML.
type Renderer interface {
	Render(templateName string, data RenderContext) (string, error)
}

// TemplateRenderer renders html/template files parsed once at construction.
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses every *.html file under dir in fsys. A nil fsys
// selects the bundled email templates.
func NewTemplateRenderer(fsys fs.FS, dir string) (*TemplateRenderer, error) {
	if fsys == nil {
		fsys = templateFiles
		dir = "templates/email"
	}
	tmpl, err := template.New("").Option("missingkey=zero").ParseFS(fsys, dir+"/*.html")
	if err != nil {
		slog.Error("Failed to parse email templates", "dir", dir, "error", err)
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateRenderer{templates: tmpl}, nil
}

// Render executes the named template.
func (r *TemplateRenderer) Render(templateName string, data RenderContext) (string, error) {
	if r.templates.Lookup(templateName) == nil {
		return "", fmt.Errorf("template %s not found", templateName)
	}
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", templateName, err)
	}
	return buf.String(), nil
}
