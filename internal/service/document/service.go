package document

import (
	"context"
	"mime"
	"time"
	// Zone names sent by browsers must resolve on hosts without a zoneinfo database.
	_ "time/tzdata"

	"golang.org/x/text/language"

	"github.com/janisto/profile-print/internal/platform/timeutil"
	"github.com/janisto/profile-print/internal/service/draft"
)

// Service builds documents for drafts and presents them through an Exporter.
// It reads the draft store but never writes it.
type Service struct {
	store         draft.Store
	exporter      Exporter
	defaultLocale language.Tag
	defaultZone   *time.Location
	now           func() time.Time
}

// Reader describes who a document is dated for. Both fields come from the client
// and only affect the footer date.
type Reader struct {
	// AcceptLanguage is an Accept-Language header value, e.g. "en-GB,en;q=0.8".
	AcceptLanguage string
	// TimeZone is an IANA zone name, e.g. "Europe/Berlin". Unknown names are ignored.
	TimeZone string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for the footer date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithDefaultLocale sets the locale used when Accept-Language matches nothing.
func WithDefaultLocale(tag language.Tag) Option {
	return func(s *Service) { s.defaultLocale = tag }
}

// WithDefaultTimeZone sets the zone used when the reader sends none. Without it the
// clock's own zone is used.
func WithDefaultTimeZone(loc *time.Location) Option {
	return func(s *Service) { s.defaultZone = loc }
}

// NewService creates a document service.
func NewService(store draft.Store, exporter Exporter, opts ...Option) *Service {
	s := &Service{
		store:         store,
		exporter:      exporter,
		defaultLocale: timeutil.DefaultLocale,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build assembles the document for d, dated for rd's locale and time zone.
func (s *Service) Build(d draft.ProfileDraft, rd Reader) *Document {
	locale := timeutil.MatchLocale(rd.AcceptLanguage, s.defaultLocale)
	return Build(d, s.today(rd.TimeZone), locale)
}

// Present builds and presents d. The draft must already be validated.
func (s *Service) Present(ctx context.Context, d draft.ProfileDraft, rd Reader) (*Presentation, error) {
	return s.exporter.Present(ctx, s.Build(d, rd))
}

func (s *Service) today(zone string) time.Time {
	now := s.now()
	if zone != "" {
		if loc, err := time.LoadLocation(zone); err == nil {
			return now.In(loc)
		}
	}
	if s.defaultZone != nil {
		return now.In(s.defaultZone)
	}
	return now
}

// Current loads the stored draft. It returns draft.ErrNotFound when none exists.
func (s *Service) Current(ctx context.Context) (*draft.ProfileDraft, error) {
	return s.store.Load(ctx)
}

// PresentCurrent presents the stored draft, or returns draft.ErrNotFound.
func (s *Service) PresentCurrent(ctx context.Context, rd Reader) (*Presentation, error) {
	d, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.Present(ctx, *d, rd)
}

// ContentDisposition returns the Content-Disposition header value for p.
func (p *Presentation) ContentDisposition() string {
	return mime.FormatMediaType(p.Disposition, map[string]string{"filename": p.Filename})
}
