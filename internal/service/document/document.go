// Package document turns a profile draft into a printable document and hands it
// to a presentation backend.
//
// Build produces a typed tree; HTMLFormatter serializes it with every user field
// escaped at the output boundary. Exporters decide how the result reaches the
// user: an inline print view or a PDF rendered by a headless browser.
package document

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"

	"github.com/janisto/profile-print/internal/platform/timeutil"
	"github.com/janisto/profile-print/internal/service/draft"
)

// DefaultAutoPrintDelay is how long the print view waits before opening the print dialog.
const DefaultAutoPrintDelay = 500 * time.Millisecond

// Section titles and item labels, in document order.
const (
	TitleContact      = "Contact Information"
	TitleProfessional = "Professional Details"
	TitleAbout        = "About"

	LabelEmail    = "Email"
	LabelPhone    = "Phone"
	LabelPosition = "Current Position"
)

// SectionKind selects how a section is laid out.
type SectionKind int

const (
	// KindDetails is a labelled list of values shown in the two-column grid.
	KindDetails SectionKind = iota
	// KindText is free text split into lines.
	KindText
)

// Document is the rendered profile before serialization.
type Document struct {
	Title          string
	Header         Header
	Sections       []Section
	Footer         Footer
	PrintAction    bool
	AutoPrintDelay time.Duration
}

// Header is the banner at the top of the page.
type Header struct {
	Name     string
	Position string
}

// Section is a titled block of the document body.
type Section struct {
	Kind  SectionKind
	Title string
	Items []Item
	Lines []string
}

// Item is a labelled value inside a details section.
type Item struct {
	Label string
	Value string
}

// Footer carries the generation date, already formatted for the reader's locale.
type Footer struct {
	GeneratedOn string
}

// Build assembles the document for d. now and locale only affect the footer date.
// The draft is not re-validated; empty fields render as blank sections.
func Build(d draft.ProfileDraft, now time.Time, locale language.Tag) *Document {
	return &Document{
		Title: d.Name + " - Profile",
		Header: Header{
			Name:     d.Name,
			Position: d.Position,
		},
		Sections: []Section{
			{
				Kind:  KindDetails,
				Title: TitleContact,
				Items: []Item{
					{Label: LabelEmail, Value: d.Email},
					{Label: LabelPhone, Value: d.PhoneNumber},
				},
			},
			{
				Kind:  KindDetails,
				Title: TitleProfessional,
				Items: []Item{
					{Label: LabelPosition, Value: d.Position},
				},
			},
			{
				Kind:  KindText,
				Title: TitleAbout,
				Lines: SplitLines(d.Description),
			},
		},
		Footer:         Footer{GeneratedOn: timeutil.ShortDate(now, locale)},
		PrintAction:    true,
		AutoPrintDelay: DefaultAutoPrintDelay,
	}
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SplitLines splits s on line breaks. "\r\n", "\n" and a lone "\r" each count as one break.
func SplitLines(s string) []string {
	return strings.Split(lineBreaks.Replace(s), "\n")
}

// Filename returns the download name for the document, e.g. "ada-lovelace-profile.pdf".
func (doc *Document) Filename(ext string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(doc.Header.Name) {
		if isFilenameRune(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "profile." + ext
	}
	return b.String() + "-profile." + ext
}

func isFilenameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
