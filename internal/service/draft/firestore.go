package draft

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	backendFirestore = "firestore"
	draftsCollection = "drafts"
)

// firestoreDraft maps to the Firestore document structure.
type firestoreDraft struct {
	Name        string    `firestore:"name"`
	Email       string    `firestore:"email"`
	PhoneNumber string    `firestore:"phone_number"`
	Position    string    `firestore:"position"`
	Description string    `firestore:"description"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

// FirestoreStore keeps the draft in the drafts/pdfData document.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) doc() *firestore.DocumentRef {
	return s.client.Collection(draftsCollection).Doc(Key)
}

// Save overwrites the document. Concurrent writers are not arbitrated; the last Set wins.
func (s *FirestoreStore) Save(ctx context.Context, d ProfileDraft) error {
	fd := firestoreDraft{
		Name:        d.Name,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
		Position:    d.Position,
		Description: d.Description,
		UpdatedAt:   time.Now().UTC(),
	}
	var err error
	if _, setErr := s.doc().Set(ctx, fd); setErr != nil {
		err = fmt.Errorf("%w: %w", ErrSaveFailed, setErr)
	}
	auditSave(ctx, backendFirestore, err)
	return err
}

func (s *FirestoreStore) Load(ctx context.Context) (*ProfileDraft, error) {
	snap, err := s.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read draft: %w", err)
	}

	var fd firestoreDraft
	if err := snap.DataTo(&fd); err != nil {
		return nil, discardCorrupted(ctx, backendFirestore, err, zap.String("document", snap.Ref.Path))
	}
	return &ProfileDraft{
		Name:        fd.Name,
		Email:       fd.Email,
		PhoneNumber: fd.PhoneNumber,
		Position:    fd.Position,
		Description: fd.Description,
	}, nil
}

// Compile-time interface check
var _ Store = (*FirestoreStore)(nil)
