package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structml/tabrec/internal/pipeline"
)

func TestInitCommand(t *testing.T) {
	t.Run("writes a document that vets clean", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pipeline.json")

		require.NoError(t, executeCommand(t, "init", path))

		doc, err := pipeline.Load(path)
		require.NoError(t, err)
		require.NoError(t, doc.Validate())
		assert.Equal(t, "ResNetVd", doc.Architecture.ImageModule.Name)

		assert.NoError(t, executeCommand(t, "vet", path))
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pipeline.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

		err := executeCommand(t, "init", path)
		assert.Equal(t, ExitSchemaError, exitCode(t, err))
	})

	t.Run("force overwrites", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pipeline.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

		require.NoError(t, executeCommand(t, "init", path, "--force"))

		_, err := pipeline.Load(path)
		assert.NoError(t, err)
	})
}
