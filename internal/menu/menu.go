// Package menu runs the interactive text menu of the library manager.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"booklib/internal/library"
	"booklib/internal/record"
	"booklib/pkg/models"
)

const title = "Welcome to your Personal Library Manager!"

// errInputClosed ends the session when the input runs out mid-prompt.
var errInputClosed = errors.New("input closed")

type handlerFunc func(ctx context.Context) (exit bool, err error)

// Menu reads commands from in, applies them to a Library and writes the
// results to out. The Library is written to the Store on exit.
type Menu struct {
	lib      *library.Library
	store    library.Store
	in       *bufio.Reader
	out      io.Writer
	handlers map[Command]handlerFunc
}

func New(lib *library.Library, store library.Store, in io.Reader, out io.Writer) *Menu {
	m := &Menu{
		lib:   lib,
		store: store,
		in:    bufio.NewReader(in),
		out:   out,
	}
	m.handlers = map[Command]handlerFunc{
		CommandAdd:    m.add,
		CommandRemove: m.remove,
		CommandSearch: m.search,
		CommandList:   m.list,
		CommandStats:  m.stats,
		CommandExit:   m.exit,
	}
	return m
}

// Run loops until the user exits or the input ends. Both paths save the
// library; Run returns the save error, if any.
func (m *Menu) Run(ctx context.Context) error {
	op := "Menu.Run"

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu()

		choice, err := m.prompt("Select an option (1-6): ")
		if err != nil {
			slog.Debug("input closed, exiting", slog.String("op", op))
			_, err := m.exit(ctx)
			return err
		}

		cmd, err := ParseCommand(choice)
		if err != nil {
			m.printBlock("Invalid choice. Please select a valid option.")
			continue
		}

		slog.Debug("command selected", slog.String("op", op), slog.String("command", cmd.String()))

		exit, err := m.handlers[cmd](ctx)
		if errors.Is(err, errInputClosed) {
			_, err := m.exit(ctx)
			return err
		}
		if err != nil || exit {
			return err
		}
	}
}

func (m *Menu) printMenu() {
	lines := []string{title}
	for _, c := range Commands {
		lines = append(lines, fmt.Sprintf("%d. %s", int(c), c))
	}
	m.printBlock(strings.Join(lines, "\n"))
}

func (m *Menu) add(_ context.Context) (bool, error) {
	bookTitle, err := m.promptField("Enter book title: ", func(s string) error {
		return record.Validate(models.Book{Title: s})
	})
	if err != nil {
		return false, err
	}

	author, err := m.promptField("Enter author name: ", noDelimiter)
	if err != nil {
		return false, err
	}

	var year int
	if _, err := m.promptField("Enter publication year: ", func(s string) error {
		var parseErr error
		year, parseErr = ParseYear(s)
		return parseErr
	}); err != nil {
		return false, err
	}

	genre, err := m.promptField("Enter genre: ", noDelimiter)
	if err != nil {
		return false, err
	}

	read, err := m.prompt("Have you read this book? (y/n): ")
	if err != nil {
		return false, err
	}

	m.lib.Add(models.Book{
		Title:           bookTitle,
		Author:          author,
		PublicationYear: year,
		Genre:           genre,
		ReadStatus:      strings.EqualFold(strings.TrimSpace(read), "y"),
	})
	m.printBlock(fmt.Sprintf("Book '%s' added.", bookTitle))
	return false, nil
}

func (m *Menu) remove(_ context.Context) (bool, error) {
	bookTitle, err := m.prompt("Enter the title of the book to remove: ")
	if err != nil {
		return false, err
	}

	if m.lib.Remove(bookTitle) == 0 {
		m.printBlock(fmt.Sprintf("No book titled '%s' found.", bookTitle))
		return false, nil
	}
	m.printBlock(fmt.Sprintf("Book '%s' removed.", bookTitle))
	return false, nil
}

func (m *Menu) search(_ context.Context) (bool, error) {
	query, err := m.prompt("Enter the title to search for: ")
	if err != nil {
		return false, err
	}

	found := m.lib.Search(query)
	if len(found) == 0 {
		m.printBlock(fmt.Sprintf("No books found for '%s'.", query))
		return false, nil
	}
	m.printBooks(found)
	return false, nil
}

func (m *Menu) list(_ context.Context) (bool, error) {
	m.printf("Your Library:\n")

	books := m.lib.Books()
	if len(books) == 0 {
		m.printBlock("No books available.")
		return false, nil
	}
	m.printBooks(books)
	return false, nil
}

func (m *Menu) stats(_ context.Context) (bool, error) {
	s := m.lib.Statistics()

	m.printf("Current statistics:\n")
	m.printBlock(fmt.Sprintf(
		"Total Books: %d\nBooks Read: %d\nBooks Unread: %d\nPercentage Read: %.2f%%",
		s.Total, s.Read, s.Unread, s.PercentRead,
	))
	return false, nil
}

func (m *Menu) exit(ctx context.Context) (bool, error) {
	if err := m.lib.Save(ctx, m.store); err != nil {
		m.printBlock(fmt.Sprintf("Failed to save library: %v", err))
		return true, err
	}
	m.printBlock("Library saved to file. Goodbye!")
	return true, nil
}

// prompt writes label and returns the next input line without its line break.
// A last line without a line break is still returned.
func (m *Menu) prompt(label string) (string, error) {
	m.printf("%s", label)

	line, err := m.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %v", errInputClosed, err)
		}
		if line == "" {
			return "", errInputClosed
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptField re-asks until validate accepts the answer.
func (m *Menu) promptField(label string, validate func(string) error) (string, error) {
	for {
		answer, err := m.prompt(label)
		if err != nil {
			return "", err
		}
		if err := validate(answer); err != nil {
			m.printf("%s\n", describe(err))
			continue
		}
		return answer, nil
	}
}

func (m *Menu) printBooks(books []models.Book) {
	for i, b := range books {
		m.printf("%d. %s\n", i+1, b)
	}
	m.printf("\n")
}

func (m *Menu) printBlock(msg string) {
	m.printf("%s\n\n", msg)
}

func (m *Menu) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(m.out, format, args...)
}

func noDelimiter(s string) error {
	if strings.ContainsAny(s, ",\r\n") {
		return record.ErrDelimiterInField
	}
	return nil
}

func describe(err error) string {
	switch {
	case errors.Is(err, ErrInvalidYear):
		return "Invalid year. Please enter a whole number, e.g. 1965."
	case errors.Is(err, record.ErrEmptyTitle):
		return "The title cannot be empty."
	case errors.Is(err, record.ErrDelimiterInField):
		return "Commas are not allowed. Please try again."
	default:
		return err.Error()
	}
}
