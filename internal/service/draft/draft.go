// Package draft holds the single persisted profile draft: its shape, the rules a
// draft must satisfy, and the single-slot stores that keep it between visits.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	applog "github.com/janisto/profile-print/internal/platform/logging"
)

// Key is the single well-known slot every store writes to.
const Key = "pdfData"

const resourceType = "draft"

// Store errors
var (
	ErrNotFound   = errors.New("draft not found")
	ErrCorrupted  = errors.New("stored draft is corrupted")
	ErrSaveFailed = errors.New("draft save failed")
)

// ProfileDraft is the most recently submitted form payload.
type ProfileDraft struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Position    string `json:"position"`
	Description string `json:"description"`
}

// Store is a single-slot draft store. Save replaces any prior value in place.
//
// Load returns ErrNotFound when nothing is stored. Data that cannot be decoded is
// reported as ErrNotFound as well (wrapped together with ErrCorrupted), so callers
// fall back to an empty form instead of failing. Loaded drafts are not re-validated.
type Store interface {
	Save(ctx context.Context, d ProfileDraft) error
	Load(ctx context.Context) (*ProfileDraft, error)
}

func encodeDraft(d ProfileDraft) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %w", ErrSaveFailed, err)
	}
	return data, nil
}

func decodeDraft(ctx context.Context, backend string, data []byte) (*ProfileDraft, error) {
	var d *ProfileDraft
	err := json.Unmarshal(data, &d)
	if err == nil && d == nil {
		err = errors.New("stored value is null")
	}
	if err != nil {
		return nil, discardCorrupted(ctx, backend, err, zap.Int("bytes", len(data)))
	}
	return d, nil
}

// discardCorrupted logs a stored value that cannot be decoded and returns the
// error Load reports for it, so the caller treats the slot as empty.
func discardCorrupted(ctx context.Context, backend string, cause error, fields ...zap.Field) error {
	fields = append([]zap.Field{zap.String("backend", backend)}, fields...)
	fields = append(fields, zap.Error(cause))
	applog.LogWarn(ctx, "discarding corrupted draft", fields...)
	return fmt.Errorf("%w: %w: %w", ErrNotFound, ErrCorrupted, cause)
}

func auditSave(ctx context.Context, backend string, err error) {
	if err != nil {
		applog.LogAuditEvent(ctx, "save", resourceType, Key, applog.AuditFailure,
			map[string]any{"backend": backend, "error": "internal_error"})
		return
	}
	applog.LogAuditEvent(ctx, "save", resourceType, Key, applog.AuditSuccess,
		map[string]any{"backend": backend})
}
