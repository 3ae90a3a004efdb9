package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structml/tabrec/internal/pipeline"
)

// executeCommand runs the CLI with the given args against a clean settings
// environment.
func executeCommand(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("TABREC_CONFIG", filepath.Join(t.TempDir(), "no-settings.yaml"))

	root := NewRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

// writeDefaultDocument writes the default document to a temp file.
func writeDefaultDocument(t *testing.T) string {
	t.Helper()
	data, err := pipeline.DefaultDocument().MarshalCanonical()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pipeline.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %T", err)
	return exitErr.Code
}

func TestVetCommand(t *testing.T) {
	t.Run("valid document passes", func(t *testing.T) {
		path := writeDefaultDocument(t)
		assert.NoError(t, executeCommand(t, "vet", path))
	})

	t.Run("missing file exits not found", func(t *testing.T) {
		err := executeCommand(t, "vet", filepath.Join(t.TempDir(), "nope.json"))
		assert.Equal(t, ExitNotFound, exitCode(t, err))
	})

	t.Run("schema violation exits schema error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"metric": []}`), 0o644))

		err := executeCommand(t, "vet", path)
		assert.Equal(t, ExitSchemaError, exitCode(t, err))
	})

	t.Run("unknown backbone exits registry error", func(t *testing.T) {
		doc := pipeline.DefaultDocument()
		doc.Architecture.ImageModule.Name = "VGG16"
		data, err := doc.MarshalCanonical()
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, data, 0o644))

		execErr := executeCommand(t, "vet", path)
		assert.Equal(t, ExitRegistryError, exitCode(t, execErr))
	})

	t.Run("check-paths exits path error on missing data", func(t *testing.T) {
		path := writeDefaultDocument(t)

		err := executeCommand(t, "vet", path, "--check-paths")
		assert.Equal(t, ExitPathError, exitCode(t, err))
	})

	t.Run("check-paths passes when data exists", func(t *testing.T) {
		dir := t.TempDir()
		labels := filepath.Join(dir, "val.jsonl")
		images := filepath.Join(dir, "val")
		require.NoError(t, os.WriteFile(labels, []byte("{}\n"), 0o644))
		require.NoError(t, os.Mkdir(images, 0o755))

		doc := pipeline.DefaultDocument()
		doc.Eval.Dataset.DataPath = labels
		doc.Eval.Dataset.ImagePath = images
		data, err := doc.MarshalCanonical()
		require.NoError(t, err)

		path := filepath.Join(dir, "pipeline.json")
		require.NoError(t, os.WriteFile(path, data, 0o644))

		assert.NoError(t, executeCommand(t, "vet", path, "--check-paths"))
	})
}
