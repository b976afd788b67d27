package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", ExpandPath(""))
	})

	t.Run("tilde prefix", func(t *testing.T) {
		assert.Equal(t, filepath.Join(home, "quotes.db"), ExpandPath("~/quotes.db"))
	})

	t.Run("bare tilde", func(t *testing.T) {
		assert.Equal(t, home, ExpandPath("~"))
	})

	t.Run("environment variable", func(t *testing.T) {
		t.Setenv("QUOTELENS_TEST_DIR", "/data/quotes")
		assert.Equal(t, "/data/quotes/quotes.db", ExpandPath("$QUOTELENS_TEST_DIR/quotes.db"))
	})

	t.Run("absolute path unchanged", func(t *testing.T) {
		assert.Equal(t, "/var/lib/quotelens.db", ExpandPath("/var/lib/quotelens.db"))
	})
}

func TestDefaultDatabasePath(t *testing.T) {
	path := DefaultDatabasePath()
	assert.True(t, strings.HasSuffix(path, filepath.Join(".local", "share", "quotelens", "quotelens.db")))
}
