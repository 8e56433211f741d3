package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booklib/internal/record"
	"booklib/pkg/models"
)

func Test_FileStore_Load_MissingFileIsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.txt"))

	books, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func Test_FileStore_SaveThenLoad_ReproducesSequence(t *testing.T) {
	tests := []struct {
		name  string
		books []models.Book
	}{
		{name: "empty", books: []models.Book{}},
		{name: "single", books: []models.Book{dune}},
		{name: "several with duplicates", books: []models.Book{dune, nineteen84, warAndPeace, dune, warlock}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewFileStore(filepath.Join(t.TempDir(), "library.txt"))

			require.NoError(t, store.Save(ctx, tt.books))

			loaded, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.books, loaded)
		})
	}
}

func Test_FileStore_SaveThenLoad_LongLines(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "library.txt"))

	long := models.Book{
		Title:           strings.Repeat("t", 2<<20),
		Author:          strings.Repeat("a", 70*1024),
		PublicationYear: 2001,
		Genre:           "Epic",
		ReadStatus:      true,
	}
	books := []models.Book{dune, long, nineteen84}

	require.NoError(t, store.Save(ctx, books))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, books, loaded)
}

func Test_FileStore_Load_LastLineWithoutNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")
	require.NoError(t, os.WriteFile(path, []byte("Dune,Frank Herbert,1965,Sci-Fi,True\n1984,George Orwell,1949,Dystopian,False"), 0o644))

	books, err := NewFileStore(path).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.Book{dune, nineteen84}, books)
}

func Test_FileStore_Save_WritesTextFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")

	require.NoError(t, NewFileStore(path).Save(context.Background(), []models.Book{dune, nineteen84}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Dune,Frank Herbert,1965,Sci-Fi,True\n1984,George Orwell,1949,Dystopian,False\n", string(data))
}

func Test_FileStore_Save_CreatesParentDirAndLeavesNoTempFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	path := filepath.Join(dir, "library.txt")

	require.NoError(t, NewFileStore(path).Save(context.Background(), []models.Book{dune}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "library.txt", entries[0].Name())
}

func Test_FileStore_Save_InvalidBookKeepsPreviousFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.txt")
	store := NewFileStore(path)
	require.NoError(t, store.Save(ctx, []models.Book{dune}))

	err := store.Save(ctx, []models.Book{nineteen84, {Title: "Me, Myself and I"}})

	assert.ErrorIs(t, err, record.ErrDelimiterInField)
	loaded, loadErr := store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Equal(t, []models.Book{dune}, loaded)
}

func Test_FileStore_Load_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")
	content := "Dune,Frank Herbert,1965,Sci-Fi,True\n\n   \n1984,George Orwell,1949,Dystopian,false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	books, err := NewFileStore(path).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.Book{dune, nineteen84}, books)
}

func Test_FileStore_Load_HandlesCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")
	require.NoError(t, os.WriteFile(path, []byte("Dune,Frank Herbert,1965,Sci-Fi,True\r\n"), 0o644))

	books, err := NewFileStore(path).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.Book{dune}, books)
}

func Test_FileStore_Load_MalformedLineIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")
	content := "Dune,Frank Herbert,1965,Sci-Fi,True\n1984,George Orwell,nineteen,Dystopian,False\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	books, err := NewFileStore(path).Load(context.Background())

	assert.Nil(t, books)
	assert.ErrorIs(t, err, record.ErrFormat)

	var formatErr *record.FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, 2, formatErr.Line)
}

func Test_FileStore_Load_CanceledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")
	require.NoError(t, os.WriteFile(path, []byte("Dune,Frank Herbert,1965,Sci-Fi,True\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileStore(path).Load(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
