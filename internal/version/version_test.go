package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, SchemaVersion, info.SchemaVersion)
	assert.NotEmpty(t, info.GoVersion)
}

func TestInfoString(t *testing.T) {
	info := GetInfo()
	s := info.String()

	assert.Contains(t, s, info.Version)
	assert.Contains(t, s, info.SchemaVersion)
}
