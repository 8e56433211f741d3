package library

import (
	"context"
	"fmt"

	"booklib/pkg/database"
	"booklib/pkg/models"
	"booklib/pkg/utils"
)

// Store loads and saves the whole collection at once.
type Store interface {
	Load(ctx context.Context) ([]models.Book, error)
	Save(ctx context.Context, books []models.Book) error
	Close() error
}

// OpenStore returns the Store selected by cfg.Backend.
func OpenStore(cfg utils.Config) (Store, error) {
	switch cfg.Backend {
	case utils.BackendSQLite:
		db, err := database.Open(database.Config{Path: cfg.DBPath})
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return NewSQLiteStore(db), nil
	case utils.BackendFile, "":
		return NewFileStore(cfg.LibraryFile), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
