package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/janisto/profile-print/internal/service/document"
	"github.com/janisto/profile-print/internal/service/draft"
)

type stubExporter struct {
	err   error
	calls int
}

func (s *stubExporter) Present(_ context.Context, doc *document.Document) (*document.Presentation, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &document.Presentation{
		ContentType: "application/pdf",
		Disposition: document.DispositionAttachment,
		Filename:    doc.Filename("pdf"),
		Body:        []byte("%PDF " + doc.Header.Name),
	}, nil
}

type failingStore struct{}

func (failingStore) Save(context.Context, draft.ProfileDraft) error {
	return draft.ErrSaveFailed
}

func (failingStore) Load(context.Context) (*draft.ProfileDraft, error) {
	return nil, draft.ErrNotFound
}

var fixedNow = time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)

func newTestRouter(store draft.Store, exporter document.Exporter) chi.Router {
	docs := document.NewService(store, exporter, document.WithClock(func() time.Time { return fixedNow }))
	router := chi.NewRouter()
	New(store, docs).Register(router)
	return router
}

func validForm() url.Values {
	return url.Values{
		"name":        {"Jane Doe"},
		"email":       {"jane@x.com"},
		"phoneNumber": {"1234567890"},
		"position":    {"Engineer"},
		"description": {"Loves systems design.\r\nAnd <b>tags</b>."},
	}
}

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestFormEmpty(t *testing.T) {
	router := newTestRouter(draft.NewMemoryStore(), &stubExporter{})

	resp := get(router, "/")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		`<label for="name">Full Name</label>`,
		`<label for="email">Email Address</label>`,
		`<label for="phoneNumber">Phone Number</label>`,
		`<label for="position">Position</label>`,
		`<label for="description">Description</label>`,
		`<textarea id="description" name="description"`,
		"View PDF",
		`formaction="/download"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected form to contain %q", want)
		}
	}
	for _, unwanted := range []string{`class="field-error"`, `aria-invalid="true"`, `class="field invalid"`, `role="alert"`} {
		if strings.Contains(body, unwanted) {
			t.Errorf("expected no %s on an empty form", unwanted)
		}
	}
}

func TestPreviewUsesBrowserTimeZone(t *testing.T) {
	store := draft.NewMemoryStore()
	if err := store.Save(context.Background(), draft.ProfileDraft{
		Name:        "Jane Doe",
		Email:       "jane@x.com",
		PhoneNumber: "1234567890",
		Position:    "Engineer",
		Description: "Loves systems design.",
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	router := newTestRouter(store, &stubExporter{})

	req := httptest.NewRequest(http.MethodGet, "/preview", nil)
	req.AddCookie(&http.Cookie{Name: timeZoneCookie, Value: url.QueryEscape("Pacific/Honolulu")})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); !strings.Contains(body, "Generated on 3/4/2024") {
		t.Errorf("expected the browser's local date in the footer")
	}

	resp = get(router, "/preview")
	if body := resp.Body.String(); !strings.Contains(body, "Generated on 3/5/2024") {
		t.Errorf("expected the server date without a time zone cookie")
	}
}

func TestFormSetsTimeZoneCookie(t *testing.T) {
	router := newTestRouter(draft.NewMemoryStore(), &stubExporter{})
	body := get(router, "/").Body.String()
	if !strings.Contains(body, `document.cookie = "tz=" + encodeURIComponent(Intl.DateTimeFormat().resolvedOptions().timeZone)`) {
		t.Error("expected the page to record the browser time zone")
	}
}

func TestFormPrefilledFromStore(t *testing.T) {
	store := draft.NewMemoryStore()
	if err := store.Save(context.Background(), draft.ProfileDraft{
		Name:        `Jane "JD" Doe`,
		Email:       "jane@x.com",
		PhoneNumber: "1234567890",
		Position:    "Engineer",
		Description: "Line one\nLine two",
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	router := newTestRouter(store, &stubExporter{})

	body := get(router, "/").Body.String()
	if !strings.Contains(body, `value="Jane &#34;JD&#34; Doe"`) {
		t.Errorf("expected escaped name value, got:\n%s", body)
	}
	if !strings.Contains(body, `value="jane@x.com"`) {
		t.Error("expected email value")
	}
	if !strings.Contains(body, "Line one\nLine two</textarea>") {
		t.Error("expected description in textarea")
	}
}

func TestFormCorruptedDraftShowsEmptyForm(t *testing.T) {
	store := draft.NewMemoryStore()
	store.SetRaw([]byte("{broken"))
	router := newTestRouter(store, &stubExporter{})

	resp := get(router, "/")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `id="name" name="name" type="text" value=""`) {
		t.Error("expected empty name input")
	}
}

func TestSubmitViewSavesAndRedirects(t *testing.T) {
	store := draft.NewMemoryStore()
	router := newTestRouter(store, &stubExporter{})

	resp := postForm(router, "/", validForm())
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", resp.Code, resp.Body.String())
	}
	if loc := resp.Header().Get("Location"); loc != "/preview" {
		t.Errorf("expected redirect to /preview, got %s", loc)
	}

	d, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if d.Description != "Loves systems design.\r\nAnd <b>tags</b>." {
		t.Errorf("expected description stored verbatim, got %q", d.Description)
	}
}

func TestSubmitViewInvalidNameOnly(t *testing.T) {
	store := draft.NewMemoryStore()
	router := newTestRouter(store, &stubExporter{})

	form := validForm()
	form.Set("name", "A")
	resp := postForm(router, "/", form)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
	body := resp.Body.String()
	if strings.Count(body, `class="field-error"`) != 1 {
		t.Errorf("expected exactly one field error, got:\n%s", body)
	}
	if !strings.Contains(body, "Name must be at least 2 characters.") {
		t.Error("expected name error message")
	}
	if !strings.Contains(body, `value="A"`) {
		t.Error("expected submitted value to be kept")
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, draft.ErrNotFound) {
		t.Errorf("expected no store write, got %v", err)
	}
}

func TestSubmitViewSaveFailure(t *testing.T) {
	router := newTestRouter(failingStore{}, &stubExporter{})

	resp := postForm(router, "/", validForm())
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), MsgSaveFailed) {
		t.Error("expected save failure alert")
	}
}

func TestPreviewNoDraftRedirects(t *testing.T) {
	exporter := &stubExporter{}
	router := newTestRouter(draft.NewMemoryStore(), exporter)

	for _, path := range []string{"/preview", "/preview/download"} {
		resp := get(router, path)
		if resp.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected 303, got %d", path, resp.Code)
		}
		if loc := resp.Header().Get("Location"); loc != "/" {
			t.Errorf("%s: expected redirect to /, got %s", path, loc)
		}
		if resp.Body.Len() > 0 && strings.Contains(resp.Body.String(), "contact-grid") {
			t.Errorf("%s: expected no rendering", path)
		}
	}
	if exporter.calls != 0 {
		t.Errorf("expected no presentation, got %d calls", exporter.calls)
	}
}

func TestPreviewRendersStoredDraft(t *testing.T) {
	store := draft.NewMemoryStore()
	router := newTestRouter(store, &stubExporter{})
	if resp := postForm(router, "/", validForm()); resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/preview", nil)
	req.Header.Set("Accept-Language", "de-DE")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		"<h1>Jane Doe</h1>",
		"<p>Engineer</p>",
		`<div class="contact-value">jane@x.com</div>`,
		`<div class="contact-value">1234567890</div>`,
		`<div class="about-content">Loves systems design.<br>And &lt;b&gt;tags&lt;/b&gt;.</div>`,
		"Generated on 5.3.2024",
		`href="/"`,
		`href="/preview/download"`,
		"Back to Form",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected preview to contain %q", want)
		}
	}
}

func TestPreviewCorruptedDraftRedirects(t *testing.T) {
	store := draft.NewMemoryStore()
	store.SetRaw([]byte("null"))
	router := newTestRouter(store, &stubExporter{})

	resp := get(router, "/preview")
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.Code)
	}
}

func TestDownloadDoesNotWriteStore(t *testing.T) {
	store := draft.NewMemoryStore()
	exporter := &stubExporter{}
	router := newTestRouter(store, exporter)

	resp := postForm(router, "/download", validForm())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %s", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != "attachment; filename=jane-doe-profile.pdf" {
		t.Errorf("unexpected Content-Disposition %s", cd)
	}
	if resp.Body.String() != "%PDF Jane Doe" {
		t.Errorf("unexpected body %q", resp.Body.String())
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, draft.ErrNotFound) {
		t.Errorf("expected store untouched, got %v", err)
	}
}

func TestDownloadInvalidShowsErrors(t *testing.T) {
	exporter := &stubExporter{}
	router := newTestRouter(draft.NewMemoryStore(), exporter)

	form := validForm()
	form.Set("email", "nope")
	resp := postForm(router, "/download", form)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Please enter a valid email address.") {
		t.Error("expected email error")
	}
	if exporter.calls != 0 {
		t.Error("expected no presentation for invalid input")
	}
}

func TestDownloadPathsAreIdentical(t *testing.T) {
	store := draft.NewMemoryStore()
	router := newTestRouter(store, &stubExporter{})

	direct := postForm(router, "/download", validForm())
	if resp := postForm(router, "/", validForm()); resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.Code)
	}
	fromPreview := get(router, "/preview/download")

	if direct.Code != fromPreview.Code || direct.Body.String() != fromPreview.Body.String() {
		t.Errorf("expected identical presentations, got %q and %q", direct.Body.String(), fromPreview.Body.String())
	}
	if direct.Header().Get("Content-Disposition") != fromPreview.Header().Get("Content-Disposition") {
		t.Error("expected identical Content-Disposition")
	}
}

func TestDownloadPresentationBlocked(t *testing.T) {
	store := draft.NewMemoryStore()
	router := newTestRouter(store, &stubExporter{err: document.ErrPresentationBlocked})

	resp := postForm(router, "/download", validForm())
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), MsgPopupsBlocked) {
		t.Error("expected popup warning")
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, draft.ErrNotFound) {
		t.Errorf("expected store untouched, got %v", err)
	}

	if resp := postForm(router, "/", validForm()); resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.Code)
	}
	resp = get(router, "/preview/download")
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	d, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("expected saved draft to survive, got %v", err)
	}
	if d.Name != "Jane Doe" {
		t.Errorf("unexpected draft %+v", d)
	}
}

func TestDownloadRenderFailure(t *testing.T) {
	router := newTestRouter(draft.NewMemoryStore(), &stubExporter{err: document.ErrRenderFailed})

	resp := postForm(router, "/download", validForm())
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), MsgRenderFailed) {
		t.Error("expected render failure warning")
	}
}

func TestDownloadPrintView(t *testing.T) {
	router := newTestRouter(draft.NewMemoryStore(), document.NewPrintViewExporter(0))

	resp := postForm(router, "/download", validForm())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "Download PDF (Ctrl+P)") || !strings.Contains(body, "window.print()") {
		t.Error("expected printable view with print action")
	}
}
