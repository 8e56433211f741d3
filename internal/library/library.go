// Package library holds the in-memory book collection, the operations on it
// and the stores that persist it between runs.
package library

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"booklib/pkg/models"
)

// Library is an ordered collection of books. Insertion order is kept and
// duplicate titles are allowed. Changes stay in memory until Save.
type Library struct {
	books []models.Book
}

// Statistics summarises the read status of a Library.
type Statistics struct {
	Total       int     `json:"total"`
	Read        int     `json:"read"`
	Unread      int     `json:"unread"`
	PercentRead float64 `json:"percent_read"`
}

func New(books ...models.Book) *Library {
	l := &Library{books: make([]models.Book, 0, len(books))}
	l.books = append(l.books, books...)
	return l
}

// Add appends b to the end of the collection.
func (l *Library) Add(b models.Book) {
	l.books = append(l.books, b)
}

// Remove drops every book whose title equals title exactly and returns how
// many were removed.
func (l *Library) Remove(title string) int {
	kept := l.books[:0]
	for _, b := range l.books {
		if b.Title != title {
			kept = append(kept, b)
		}
	}

	removed := len(l.books) - len(kept)
	clear(l.books[len(kept):])
	l.books = kept
	return removed
}

// Search returns the books whose title contains query, ignoring case.
func (l *Library) Search(query string) []models.Book {
	needle := strings.ToLower(query)

	found := make([]models.Book, 0)
	for _, b := range l.books {
		if strings.Contains(strings.ToLower(b.Title), needle) {
			found = append(found, b)
		}
	}
	return found
}

// Books returns a copy of the collection in insertion order.
func (l *Library) Books() []models.Book {
	out := make([]models.Book, len(l.books))
	copy(out, l.books)
	return out
}

func (l *Library) Len() int {
	return len(l.books)
}

func (l *Library) Statistics() Statistics {
	var stats Statistics

	stats.Total = len(l.books)
	for _, b := range l.books {
		if b.ReadStatus {
			stats.Read++
		}
	}
	stats.Unread = stats.Total - stats.Read

	if stats.Total > 0 {
		stats.PercentRead = float64(stats.Read) / float64(stats.Total) * 100
	}
	return stats
}

// Load replaces the collection with the books held by store.
func (l *Library) Load(ctx context.Context, store Store) error {
	op := "Library.Load"

	books, err := store.Load(ctx)
	if err != nil {
		slog.Error("failed to load library", slog.String("op", op), slog.String("err", err.Error()))
		return fmt.Errorf("load library: %w", err)
	}

	l.books = books
	slog.Debug("library loaded", slog.String("op", op), slog.Int("books", len(books)))
	return nil
}

// Save writes the collection to store.
func (l *Library) Save(ctx context.Context, store Store) error {
	op := "Library.Save"

	if err := store.Save(ctx, l.Books()); err != nil {
		slog.Error("failed to save library", slog.String("op", op), slog.String("err", err.Error()))
		return fmt.Errorf("save library: %w", err)
	}

	slog.Debug("library saved", slog.String("op", op), slog.Int("books", len(l.books)))
	return nil
}
