package utils

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booklib/internal/password"
)

func Test_Load_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"LIBRARY_FILE", "LIBRARY_BACKEND", "LIBRARY_DB_PATH", "PASSWORD_LENGTH"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "library.txt", cfg.LibraryFile)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, password.DefaultLength, cfg.PasswordLength)
}

func Test_Load_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LIBRARY_FILE", "/tmp/books.txt")
	t.Setenv("LIBRARY_BACKEND", "SQLite")
	t.Setenv("LIBRARY_DB_PATH", "/tmp/books.db")
	t.Setenv("PASSWORD_LENGTH", "20")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/books.txt", cfg.LibraryFile)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/tmp/books.db", cfg.DBPath)
	assert.Equal(t, 20, cfg.PasswordLength)
}

func Test_Load_NonPositivePasswordLengthFallsBack(t *testing.T) {
	chdir(t, t.TempDir())

	for _, value := range []string{"0", "-4"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("PASSWORD_LENGTH", value)

			cfg, err := Load()

			require.NoError(t, err)
			assert.Equal(t, password.DefaultLength, cfg.PasswordLength)
		})
	}
}

func Test_Load_RejectsUnknownBackend(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LIBRARY_BACKEND", "postgres")

	_, err := Load()

	assert.ErrorContains(t, err, "unknown LIBRARY_BACKEND")
}

func Test_SetupLogger_RespectsLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := SetupLogger(Config{LogLevel: "warning", LogFormat: "json"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", slog.String("op", "test"))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"op":"test"`)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
