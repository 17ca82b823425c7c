// Package web serves the server-rendered profile form, the preview page and the
// download endpoints.
package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	applog "github.com/janisto/profile-print/internal/platform/logging"
	"github.com/janisto/profile-print/internal/service/document"
	"github.com/janisto/profile-print/internal/service/draft"
)

const maxFormBytes = 64 << 10

// timeZoneCookie holds the browser's IANA time zone, set by the base layout.
const timeZoneCookie = "tz"

// Handler serves the browser-facing pages.
type Handler struct {
	store     draft.Store
	docs      *document.Service
	formatter document.HTMLFormatter
}

// New creates the page handler.
func New(store draft.Store, docs *document.Service) *Handler {
	return &Handler{store: store, docs: docs}
}

// Register mounts the pages on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.showForm)
	r.Post("/", h.submitView)
	r.Post("/download", h.submitDownload)
	r.Get("/preview", h.showPreview)
	r.Get("/preview/download", h.downloadCurrent)
}

// showForm renders the form, pre-filled from the stored draft when one exists.
func (h *Handler) showForm(w http.ResponseWriter, r *http.Request) {
	var in draft.Input
	d, err := h.store.Load(r.Context())
	switch {
	case err == nil:
		in = draft.InputFrom(*d)
	case errors.Is(err, draft.ErrNotFound):
	default:
		applog.LogError(r.Context(), "failed to load draft for form", err)
	}
	h.render(w, r, http.StatusOK, pageForm, newFormView(in, nil))
}

// submitView validates, saves and redirects to the preview. Invalid input is
// shown again with messages and nothing is saved.
func (h *Handler) submitView(w http.ResponseWriter, r *http.Request) {
	in, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	d, errs := draft.Validate(in)
	if errs != nil {
		h.render(w, r, http.StatusUnprocessableEntity, pageForm, newFormView(in, errs))
		return
	}
	if err := h.store.Save(r.Context(), d); err != nil {
		applog.LogError(r.Context(), "failed to save draft", err)
		view := newFormView(in, nil)
		view.Alert = MsgSaveFailed
		h.render(w, r, http.StatusInternalServerError, pageForm, view)
		return
	}
	http.Redirect(w, r, "/preview", http.StatusSeeOther)
}

// submitDownload validates and presents immediately without touching the store.
func (h *Handler) submitDownload(w http.ResponseWriter, r *http.Request) {
	in, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	d, errs := draft.Validate(in)
	if errs != nil {
		h.render(w, r, http.StatusUnprocessableEntity, pageForm, newFormView(in, errs))
		return
	}
	p, err := h.docs.Present(r.Context(), d, readerFrom(r))
	h.writePresentation(w, r, p, err, "/")
}

// showPreview renders the stored draft, or redirects to the form when there is none.
func (h *Handler) showPreview(w http.ResponseWriter, r *http.Request) {
	d, err := h.docs.Current(r.Context())
	if err != nil {
		if !errors.Is(err, draft.ErrNotFound) {
			applog.LogError(r.Context(), "failed to load draft for preview", err)
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	doc := h.docs.Build(*d, readerFrom(r))
	profile, err := h.formatter.Fragment(doc)
	if err != nil {
		applog.LogError(r.Context(), "failed to format preview", err)
		h.warn(w, r, http.StatusInternalServerError, MsgRenderFailed, "/")
		return
	}
	h.render(w, r, http.StatusOK, pagePreview, PreviewView{
		PageTitle:  doc.Title,
		Stylesheet: document.Stylesheet,
		Profile:    profile,
	})
}

// downloadCurrent presents the stored draft through the same path as submitDownload.
func (h *Handler) downloadCurrent(w http.ResponseWriter, r *http.Request) {
	p, err := h.docs.PresentCurrent(r.Context(), readerFrom(r))
	if errors.Is(err, draft.ErrNotFound) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.writePresentation(w, r, p, err, "/preview")
}

// readerFrom collects the locale and time zone the footer date is shown in.
func readerFrom(r *http.Request) document.Reader {
	rd := document.Reader{AcceptLanguage: r.Header.Get("Accept-Language")}
	if c, err := r.Cookie(timeZoneCookie); err == nil {
		if zone, err := url.QueryUnescape(c.Value); err == nil {
			rd.TimeZone = zone
		}
	}
	return rd
}

func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) (draft.Input, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		applog.LogWarn(r.Context(), "invalid form submission", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return draft.Input{}, false
	}
	return draft.Input{
		Name:        r.PostForm.Get(draft.FieldName),
		Email:       r.PostForm.Get(draft.FieldEmail),
		PhoneNumber: r.PostForm.Get(draft.FieldPhoneNumber),
		Position:    r.PostForm.Get(draft.FieldPosition),
		Description: r.PostForm.Get(draft.FieldDescription),
	}, true
}

func (h *Handler) writePresentation(w http.ResponseWriter, r *http.Request, p *document.Presentation, err error, backURL string) {
	switch {
	case err == nil:
	case errors.Is(err, document.ErrPresentationBlocked):
		applog.LogWarn(r.Context(), "presentation blocked", zap.Error(err))
		h.warn(w, r, http.StatusServiceUnavailable, MsgPopupsBlocked, backURL)
		return
	default:
		applog.LogError(r.Context(), "presentation failed", err)
		h.warn(w, r, http.StatusInternalServerError, MsgRenderFailed, backURL)
		return
	}

	w.Header().Set("Content-Type", p.ContentType)
	w.Header().Set("Content-Disposition", p.ContentDisposition())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(p.Body); err != nil {
		applog.LogWarn(r.Context(), "failed to write presentation", zap.Error(err))
	}
}

func (h *Handler) warn(w http.ResponseWriter, r *http.Request, status int, msg, backURL string) {
	h.render(w, r, status, pageWarning, WarningView{PageTitle: "Download failed", Message: msg, BackURL: backURL})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := render(w, status, page, data); err != nil {
		applog.LogError(r.Context(), "failed to render page", err, zap.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
