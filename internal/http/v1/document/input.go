package document

import (
	draftapi "github.com/janisto/profile-print/internal/http/v1/draft"
	docsvc "github.com/janisto/profile-print/internal/service/document"
)

// ReaderHeaders carry the client's locale and time zone, used for the footer date.
type ReaderHeaders struct {
	AcceptLanguage string `header:"Accept-Language" doc:"Locale preference for the footer date"`
	TimeZone       string `header:"X-Time-Zone"     doc:"IANA time zone of the client, e.g. Europe/Berlin" example:"Europe/Berlin"`
}

func (h ReaderHeaders) reader() docsvc.Reader {
	return docsvc.Reader{AcceptLanguage: h.AcceptLanguage, TimeZone: h.TimeZone}
}

// DocumentCreateInput for POST /documents
type DocumentCreateInput struct {
	ReaderHeaders
	Body draftapi.Body
}

// DocumentCurrentInput for GET /documents/current
type DocumentCurrentInput struct {
	ReaderHeaders
}
