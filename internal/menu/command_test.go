package menu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseCommand_NumbersAndPhrases(t *testing.T) {
	tests := []struct {
		input    string
		expected Command
	}{
		{"1", CommandAdd},
		{" 2 ", CommandRemove},
		{"3", CommandSearch},
		{"4", CommandList},
		{"5", CommandStats},
		{"6", CommandExit},
		{"add a book", CommandAdd},
		{"Remove A Book", CommandRemove},
		{"SEARCH FOR A BOOK", CommandSearch},
		{"display all books", CommandList},
		{"Display statistics", CommandStats},
		{"exit", CommandExit},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := ParseCommand(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, cmd)
		})
	}
}

func Test_ParseCommand_Unknown(t *testing.T) {
	for _, input := range []string{"", "0", "7", "quit", "add"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseCommand(input)

			assert.ErrorIs(t, err, ErrUnknownCommand)
		})
	}
}

func Test_Command_String(t *testing.T) {
	assert.Equal(t, "Add a book", CommandAdd.String())
	assert.Equal(t, "Exit", CommandExit.String())
	assert.Equal(t, "Command(42)", Command(42).String())
}

func Test_ParseYear(t *testing.T) {
	year, err := ParseYear(" 1965 ")
	require.NoError(t, err)
	assert.Equal(t, 1965, year)

	_, err = ParseYear("nineteen sixty-five")
	assert.ErrorIs(t, err, ErrInvalidYear)

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "publication year", inputErr.Field)
	assert.Equal(t, "nineteen sixty-five", inputErr.Value)
}
