package library

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"booklib/internal/record"
	"booklib/pkg/models"
)

// FileStore keeps the collection in a plain text file, one record per line.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads every record from the backing file. A missing file is an empty
// library. Blank lines are skipped; any other line that does not parse stops
// the load with a *record.FormatError carrying its line number.
func (s *FileStore) Load(ctx context.Context) ([]models.Book, error) {
	op := "FileStore.Load"

	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("backing file not found, starting empty", slog.String("op", op), slog.String("path", s.Path))
			return []models.Book{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	books := make([]models.Book, 0)
	r := bufio.NewReader(f)

	lineNo := 0
	for {
		line, readErr := r.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("read %s: %w", s.Path, readErr)
		}
		if line == "" && readErr != nil {
			break
		}

		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if strings.TrimSpace(line) != "" {
			book, err := record.Parse(line)
			if err != nil {
				var formatErr *record.FormatError
				if errors.As(err, &formatErr) {
					formatErr.Line = lineNo
				}
				slog.Error("malformed record", slog.String("op", op), slog.String("path", s.Path), slog.Int("line", lineNo))
				return nil, err
			}
			books = append(books, book)
		}

		if readErr != nil {
			break
		}
	}

	return books, nil
}

// Save replaces the backing file with one line per book. The records are
// written to a temporary file in the same directory which is then renamed
// over Path, so a failed save leaves the previous file intact.
func (s *FileStore) Save(ctx context.Context, books []models.Book) error {
	op := "FileStore.Save"

	lines := make([]string, 0, len(books))
	for i, b := range books {
		line, err := record.Format(b)
		if err != nil {
			return fmt.Errorf("book %d (%q): %w", i+1, b.Title, err)
		}
		lines = append(lines, line)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := writeLines(tmp, lines); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", s.Path, err)
	}

	slog.Debug("backing file written", slog.String("op", op), slog.String("path", s.Path), slog.Int("books", len(books)))
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func writeLines(f *os.File, lines []string) error {
	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}
