package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	pageForm    = "form"
	pagePreview = "preview"
	pageWarning = "warning"
)

// pages holds one template set per page, each combining the base layout with the page body.
var pages = func() map[string]*template.Template {
	base := template.Must(template.ParseFS(templateFS, "templates/base.html.tmpl"))
	out := make(map[string]*template.Template)
	for _, name := range []string{pageForm, pagePreview, pageWarning} {
		t := template.Must(base.Clone())
		out[name] = template.Must(t.ParseFS(templateFS, "templates/"+name+".html.tmpl"))
	}
	return out
}()

// render executes the base layout of page into a buffer first, so a template
// error never leaves a half-written response.
func render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
	return nil
}
