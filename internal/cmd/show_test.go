package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShowCommand(t *testing.T) {
	path := writeDefaultDocument(t)

	t.Run("yaml output", func(t *testing.T) {
		assert.NoError(t, executeCommand(t, "show", path))
	})

	t.Run("json output", func(t *testing.T) {
		assert.NoError(t, executeCommand(t, "show", path, "-o", "json"))
	})

	t.Run("table output", func(t *testing.T) {
		assert.NoError(t, executeCommand(t, "show", path, "-o", "table"))
	})

	t.Run("missing file exits not found", func(t *testing.T) {
		err := executeCommand(t, "show", filepath.Join(t.TempDir(), "nope.json"))
		assert.Equal(t, ExitNotFound, exitCode(t, err))
	})
}
