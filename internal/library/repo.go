package library

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect registration
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"booklib/pkg/models"
)

const (
	dialectSQLite      = "sqlite3"
	tableBooks         = "books"
	colID              = "id"
	colPosition        = "position"
	colTitle           = "title"
	colAuthor          = "author"
	colPublicationYear = "publication_year"
	colGenre           = "genre"
	colReadStatus      = "read_status"
	insertBatchSize    = 100
)

// SQLiteStore keeps the collection in the books table. Row order is held in
// the position column.
type SQLiteStore struct {
	db *sqlx.DB
}

func NewSQLiteStore(db *sqlx.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) ([]models.Book, error) {
	query, args, err := goqu.Dialect(dialectSQLite).
		From(tableBooks).
		Select(colTitle, colAuthor, colPublicationYear, colGenre, colReadStatus).
		Order(goqu.I(colPosition).Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	books := make([]models.Book, 0)
	if err := s.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, fmt.Errorf("select books: %w", err)
	}
	return books, nil
}

// Save replaces the contents of the books table in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, books []models.Book) (err error) {
	op := "SQLiteStore.Save"
	builder := goqu.Dialect(dialectSQLite)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Error("rollback failed", slog.String("op", op), slog.String("err", rbErr.Error()))
			}
		}
	}()

	deleteSQL, _, err := builder.Delete(tableBooks).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err = tx.ExecContext(ctx, deleteSQL); err != nil {
		return fmt.Errorf("clear books: %w", err)
	}

	for start := 0; start < len(books); start += insertBatchSize {
		end := min(start+insertBatchSize, len(books))

		rows := make([]any, 0, end-start)
		for i := start; i < end; i++ {
			rows = append(rows, toRecord(i, books[i]))
		}

		insertSQL, args, buildErr := builder.Insert(tableBooks).Prepared(true).Rows(rows...).ToSQL()
		if buildErr != nil {
			return fmt.Errorf("build insert: %w", buildErr)
		}
		if _, err = tx.ExecContext(ctx, insertSQL, args...); err != nil {
			return fmt.Errorf("insert books: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func toRecord(position int, b models.Book) goqu.Record {
	read := 0
	if b.ReadStatus {
		read = 1
	}

	return goqu.Record{
		colID:              uuid.NewString(),
		colPosition:        position,
		colTitle:           b.Title,
		colAuthor:          b.Author,
		colPublicationYear: b.PublicationYear,
		colGenre:           b.Genre,
		colReadStatus:      read,
	}
}
