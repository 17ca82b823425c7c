package firebase

import (
	"context"
	"errors"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Config holds Firebase configuration.
type Config struct {
	ProjectID                    string
	GoogleApplicationCredentials string // Path to service account JSON (optional)
}

// Clients holds initialized Firebase clients.
type Clients struct {
	Firestore *firestore.Client
}

// InitializeClients sets up the Firebase app and its Firestore client.
// When FIRESTORE_EMULATOR_HOST is set the client talks to the emulator.
func InitializeClients(ctx context.Context, cfg Config) (*Clients, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("firebase: project ID is required")
	}
	var opts []option.ClientOption
	if cfg.GoogleApplicationCredentials != "" {
		creds, err := os.ReadFile(cfg.GoogleApplicationCredentials)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	}

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, err
	}
	fc, err := fbApp.Firestore(ctx)
	if err != nil {
		return nil, err
	}
	return &Clients{Firestore: fc}, nil
}

// Close closes the Firestore client.
func (c *Clients) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
