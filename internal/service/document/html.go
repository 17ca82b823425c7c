package document

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/profile.html.tmpl templates/profile.css
var templateFS embed.FS

var profileTemplates = template.Must(template.ParseFS(templateFS, "templates/profile.html.tmpl"))

// Stylesheet is the CSS shared by the print view and the preview page.
var Stylesheet = func() template.CSS {
	data, err := templateFS.ReadFile("templates/profile.css")
	if err != nil {
		panic(err)
	}
	return template.CSS(data) // #nosec G203 -- embedded asset
}()

type textSection struct {
	Title string
	Body  template.HTML
}

type pageView struct {
	*Document
	Stylesheet      template.CSS
	Details         []Section
	Texts           []textSection
	AutoPrintMillis int64
}

func newPageView(doc *Document) pageView {
	v := pageView{
		Document:        doc,
		Stylesheet:      Stylesheet,
		AutoPrintMillis: doc.AutoPrintDelay.Milliseconds(),
	}
	if !doc.PrintAction {
		v.AutoPrintMillis = 0
	}
	for _, s := range doc.Sections {
		switch s.Kind {
		case KindText:
			v.Texts = append(v.Texts, textSection{Title: s.Title, Body: joinLines(s.Lines)})
		default:
			v.Details = append(v.Details, s)
		}
	}
	return v
}

// HTMLFormatter serializes documents to HTML. The zero value is ready to use.
type HTMLFormatter struct{}

// Format renders doc as a standalone HTML page. When doc.PrintAction is set the
// page carries the print button and opens the print dialog after AutoPrintDelay.
func (HTMLFormatter) Format(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := profileTemplates.ExecuteTemplate(&buf, "page", newPageView(doc)); err != nil {
		return nil, fmt.Errorf("format document: %w", err)
	}
	return buf.Bytes(), nil
}

// Fragment renders only the profile body (header, sections, footer) for embedding in
// another page. The caller is responsible for including Stylesheet.
func (HTMLFormatter) Fragment(doc *Document) (template.HTML, error) {
	var buf bytes.Buffer
	if err := profileTemplates.ExecuteTemplate(&buf, "profile", newPageView(doc)); err != nil {
		return "", fmt.Errorf("format document: %w", err)
	}
	return template.HTML(buf.String()), nil // #nosec G203 -- produced by html/template
}
