package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structml/tabrec/internal/pipeline"
)

func TestDatasetCheckCommand(t *testing.T) {
	setup := func(t *testing.T, labelLines string) string {
		t.Helper()
		dir := t.TempDir()

		labels := filepath.Join(dir, "val.jsonl")
		images := filepath.Join(dir, "val")
		require.NoError(t, os.WriteFile(labels, []byte(labelLines), 0o644))
		require.NoError(t, os.Mkdir(images, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(images, "a.png"), []byte("png"), 0o644))

		doc := pipeline.DefaultDocument()
		doc.Eval.Dataset.DataPath = labels
		doc.Eval.Dataset.ImagePath = images
		data, err := doc.MarshalCanonical()
		require.NoError(t, err)

		path := filepath.Join(dir, "pipeline.json")
		require.NoError(t, os.WriteFile(path, data, 0o644))
		return path
	}

	t.Run("all images present", func(t *testing.T) {
		path := setup(t, "{\"filename\": \"a.png\"}\n")
		assert.NoError(t, executeCommand(t, "dataset", "check", path))
	})

	t.Run("missing images are skipped by default", func(t *testing.T) {
		path := setup(t, "{\"filename\": \"a.png\"}\n{\"filename\": \"b.png\"}\n")
		assert.NoError(t, executeCommand(t, "dataset", "check", path))
	})

	t.Run("strict fails on missing images", func(t *testing.T) {
		path := setup(t, "{\"filename\": \"a.png\"}\n{\"filename\": \"b.png\"}\n")

		err := executeCommand(t, "dataset", "check", path, "--strict")
		assert.Equal(t, ExitPathError, exitCode(t, err))
	})

	t.Run("missing document exits not found", func(t *testing.T) {
		err := executeCommand(t, "dataset", "check", filepath.Join(t.TempDir(), "nope.json"))
		assert.Equal(t, ExitNotFound, exitCode(t, err))
	})
}
