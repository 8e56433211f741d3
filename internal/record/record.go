package record

import (
	"fmt"
	"strconv"
	"strings"

	"booklib/pkg/models"
)

const (
	fieldSeparator = ","
	fieldCount     = 5
	trueLiteral    = "True"
	falseLiteral   = "False"
)

// Validate checks that b can be written as a single record line.
func Validate(b models.Book) error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrEmptyTitle
	}

	for _, f := range []struct{ name, value string }{
		{"title", b.Title},
		{"author", b.Author},
		{"genre", b.Genre},
	} {
		if strings.ContainsAny(f.value, ",\r\n") {
			return fmt.Errorf("%s %q: %w", f.name, f.value, ErrDelimiterInField)
		}
	}
	return nil
}

// Format renders b as "title,author,year,genre,True|False" without a trailing newline.
func Format(b models.Book) (string, error) {
	if err := Validate(b); err != nil {
		return "", err
	}

	status := falseLiteral
	if b.ReadStatus {
		status = trueLiteral
	}

	return strings.Join([]string{
		b.Title,
		b.Author,
		strconv.Itoa(b.PublicationYear),
		b.Genre,
		status,
	}, fieldSeparator), nil
}

// Parse reads one record line. A trailing line break is ignored.
// The returned error is always a *FormatError.
func Parse(line string) (models.Book, error) {
	text := strings.TrimRight(line, "\r\n")

	parts := strings.Split(text, fieldSeparator)
	if len(parts) != fieldCount {
		return models.Book{}, &FormatError{
			Text:   text,
			Reason: fmt.Sprintf("expected %d fields, got %d", fieldCount, len(parts)),
		}
	}

	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return models.Book{}, &FormatError{
			Text:   text,
			Reason: fmt.Sprintf("publication year %q is not an integer", parts[2]),
			Err:    err,
		}
	}

	return models.Book{
		Title:           parts[0],
		Author:          parts[1],
		PublicationYear: year,
		Genre:           parts[3],
		ReadStatus:      strings.EqualFold(strings.TrimSpace(parts[4]), "true"),
	}, nil
}
