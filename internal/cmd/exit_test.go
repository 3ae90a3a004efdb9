package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	oerrors "github.com/structml/tabrec/internal/errors"
)

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Success", ExitCodeName(ExitSuccess))
	assert.Equal(t, "General Error", ExitCodeName(ExitGeneralError))
	assert.Equal(t, "Schema Error", ExitCodeName(ExitSchemaError))
	assert.Equal(t, "Path Error", ExitCodeName(ExitPathError))
	assert.Equal(t, "Registry Error", ExitCodeName(ExitRegistryError))
	assert.Equal(t, "Not Found", ExitCodeName(ExitNotFound))
	assert.Equal(t, "Unknown", ExitCodeName(42))
}

func TestExitCodeFromError(t *testing.T) {
	t.Run("nil is success", func(t *testing.T) {
		assert.Equal(t, ExitSuccess, ExitCodeFromError(nil))
	})

	t.Run("explicit exit error wins", func(t *testing.T) {
		err := NewExitError(errors.New("boom"), ExitPathError)
		assert.Equal(t, ExitPathError, ExitCodeFromError(err))
	})

	t.Run("wrapped exit error wins", func(t *testing.T) {
		err := fmt.Errorf("context: %w", NewExitError(errors.New("boom"), ExitRegistryError))
		assert.Equal(t, ExitRegistryError, ExitCodeFromError(err))
	})

	t.Run("sentinel mapping", func(t *testing.T) {
		assert.Equal(t, ExitSchemaError, ExitCodeFromError(oerrors.NewSchemaError("f", "bad")))
		assert.Equal(t, ExitPathError, ExitCodeFromError(oerrors.NewPathError("f", "/x", "missing")))
		assert.Equal(t, ExitRegistryError, ExitCodeFromError(oerrors.NewRegistryError("f", "X", []string{"A"})))
		assert.Equal(t, ExitNotFound, ExitCodeFromError(oerrors.Wrap(oerrors.ErrNotFound, "gone")))
	})

	t.Run("unknown error is general", func(t *testing.T) {
		assert.Equal(t, ExitGeneralError, ExitCodeFromError(errors.New("boom")))
	})
}
