package library

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"booklib/internal/record"
	"booklib/pkg/models"
)

var csvHeader = []string{"title", "author", "publication_year", "genre", "read_status"}

var ErrMissingColumn = errors.New("missing required column")

// ExportCSV writes books as CSV with a header row. Unlike the backing file
// format, CSV quoting keeps commas inside fields intact.
func ExportCSV(w io.Writer, books []models.Book) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, b := range books {
		if err := cw.Write([]string{
			b.Title,
			b.Author,
			strconv.Itoa(b.PublicationYear),
			b.Genre,
			strconv.FormatBool(b.ReadStatus),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportJSON writes books as an indented JSON array.
func ExportJSON(w io.Writer, books []models.Book) error {
	if books == nil {
		books = []models.Book{}
	}

	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(books)
}

// ImportCSV reads books from CSV with a header row. Columns are matched by
// name; only title is required. Rows with an empty title are skipped.
func ImportCSV(r io.Reader) ([]models.Book, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []models.Book{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if _, ok := header["title"]; !ok {
		return nil, fmt.Errorf("%w: title", ErrMissingColumn)
	}

	books := make([]models.Book, 0)
	rowNo := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		rowNo++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNo, err)
		}

		title := valueAt(header, row, "title")
		if title == "" {
			continue
		}

		year := 0
		if raw := valueAt(header, row, "publication_year"); raw != "" {
			year, err = strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: parse publication_year %q: %w", rowNo, raw, err)
			}
		}

		book := models.Book{
			Title:           title,
			Author:          valueAt(header, row, "author"),
			PublicationYear: year,
			Genre:           valueAt(header, row, "genre"),
			ReadStatus:      parseReadStatus(valueAt(header, row, "read_status")),
		}
		if err := record.Validate(book); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNo, err)
		}
		books = append(books, book)
	}

	return books, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseReadStatus(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "yes", "y", "1", "read":
		return true
	default:
		return false
	}
}
