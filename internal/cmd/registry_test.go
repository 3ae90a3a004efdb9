package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryCommand(t *testing.T) {
	t.Run("lists all registries", func(t *testing.T) {
		assert.NoError(t, executeCommand(t, "registry"))
	})

	t.Run("lists a single registry", func(t *testing.T) {
		for _, which := range []string{"backbones", "metrics", "transforms"} {
			assert.NoError(t, executeCommand(t, "registry", which), which)
		}
	})

	t.Run("rejects unknown registry", func(t *testing.T) {
		assert.Error(t, executeCommand(t, "registry", "optimizers"))
	})
}

func TestVersionCommand(t *testing.T) {
	assert.NoError(t, executeCommand(t, "version"))
}
