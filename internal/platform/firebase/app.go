// Package firebase builds the Firestore client backing the Firestore user
// store.
package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Config selects the Firebase project and, optionally, a service account key
// file. Without a key the application default credentials are used.
type Config struct {
	ProjectID                    string
	GoogleApplicationCredentials string
}

// clientOptions turns cfg into Google API client options.
func (cfg Config) clientOptions() ([]option.ClientOption, error) {
	if cfg.GoogleApplicationCredentials == "" {
		return nil, nil
	}
	creds, err := os.ReadFile(cfg.GoogleApplicationCredentials)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	return []option.ClientOption{option.WithCredentialsJSON(creds)}, nil
}

// NewFirestore initializes the Firebase app for cfg and returns its Firestore
// client. The caller closes it.
func NewFirestore(ctx context.Context, cfg Config) (*firestore.Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firebase project id is required")
	}
	opts, err := cfg.clientOptions()
	if err != nil {
		return nil, err
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore: %w", err)
	}
	return client, nil
}
