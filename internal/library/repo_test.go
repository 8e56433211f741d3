package library

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booklib/pkg/database"
	"booklib/pkg/models"
	"booklib/pkg/utils"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "library.db")})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	store := NewSQLiteStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func Test_SQLiteStore_Load_EmptyTable(t *testing.T) {
	store := newTestSQLiteStore(t)

	books, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func Test_SQLiteStore_SaveThenLoad_ReproducesSequence(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)
	books := []models.Book{warlock, dune, nineteen84, dune, warAndPeace}

	require.NoError(t, store.Save(ctx, books))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, books, loaded)
}

func Test_SQLiteStore_Save_ReplacesPreviousContents(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)
	require.NoError(t, store.Save(ctx, []models.Book{dune, nineteen84}))

	require.NoError(t, store.Save(ctx, []models.Book{warlock}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Book{warlock}, loaded)

	require.NoError(t, store.Save(ctx, []models.Book{}))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func Test_SQLiteStore_Save_MoreThanOneBatch(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	books := make([]models.Book, 0, insertBatchSize*2+7)
	for i := 0; i < cap(books); i++ {
		books = append(books, models.Book{
			Title:           "Book",
			Author:          "It's quoted",
			PublicationYear: 1900 + i,
			ReadStatus:      i%3 == 0,
		})
	}

	require.NoError(t, store.Save(ctx, books))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, books, loaded)
}

func Test_OpenStore_SelectsBackend(t *testing.T) {
	dir := t.TempDir()

	fileStore, err := OpenStore(utils.Config{Backend: utils.BackendFile, LibraryFile: filepath.Join(dir, "library.txt")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, fileStore)

	sqliteStore, err := OpenStore(utils.Config{Backend: utils.BackendSQLite, DBPath: filepath.Join(dir, "library.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, sqliteStore)
	require.NoError(t, sqliteStore.Close())

	_, err = OpenStore(utils.Config{Backend: "redis"})
	assert.Error(t, err)
}
