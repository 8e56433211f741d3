package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidYear    = errors.New("publication year must be a whole number")
)

// Command is one entry of the main menu.
type Command int

const (
	CommandAdd Command = iota + 1
	CommandRemove
	CommandSearch
	CommandList
	CommandStats
	CommandExit
)

// Commands lists the menu entries in display order.
var Commands = []Command{CommandAdd, CommandRemove, CommandSearch, CommandList, CommandStats, CommandExit}

var commandPhrases = map[Command]string{
	CommandAdd:    "Add a book",
	CommandRemove: "Remove a book",
	CommandSearch: "Search for a book",
	CommandList:   "Display all books",
	CommandStats:  "Display statistics",
	CommandExit:   "Exit",
}

func (c Command) String() string {
	if phrase, ok := commandPhrases[c]; ok {
		return phrase
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand accepts a menu number ("1".."6") or the entry's phrase in any case.
func ParseCommand(input string) (Command, error) {
	input = strings.TrimSpace(input)

	if n, err := strconv.Atoi(input); err == nil {
		c := Command(n)
		if _, ok := commandPhrases[c]; ok {
			return c, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, input)
	}

	for _, c := range Commands {
		if strings.EqualFold(input, commandPhrases[c]) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, input)
}

// InputError is a value typed by the user that cannot be used.
type InputError struct {
	Field string
	Value string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ParseYear converts user input to a publication year.
func ParseYear(input string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, &InputError{Field: "publication year", Value: input, Err: ErrInvalidYear}
	}
	return year, nil
}
