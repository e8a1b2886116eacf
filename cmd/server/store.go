package main

import (
	"context"
	"fmt"

	"github.com/janisto/huma-users/internal/platform/config"
	"github.com/janisto/huma-users/internal/platform/database"
	"github.com/janisto/huma-users/internal/platform/firebase"
	usersvc "github.com/janisto/huma-users/internal/service/user"
)

// openStore builds the configured user store and returns a function that
// releases its resources.
func openStore(ctx context.Context, cfg *config.Config) (usersvc.Store, func() error, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return usersvc.NewMemoryStore(), func() error { return nil }, nil
	case config.StoreFirestore:
		client, err := firebase.NewFirestore(ctx, firebase.Config{
			ProjectID:                    cfg.FirebaseProjectID,
			GoogleApplicationCredentials: cfg.GoogleCredentials,
		})
		if err != nil {
			return nil, nil, err
		}
		return usersvc.NewFirestoreStore(client), client.Close, nil
	case config.StorePostgres:
		if err := database.Migrate(ctx, cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
		db, err := database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return usersvc.NewPostgresStore(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
