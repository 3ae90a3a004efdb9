package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/structml/tabrec/internal/errors"
)

func TestGetBackbone(t *testing.T) {
	t.Run("resolves known backbone", func(t *testing.T) {
		b, err := GetBackbone("ResNetVd")
		require.NoError(t, err)
		assert.Equal(t, "ResNetVd", b.Name)
		assert.True(t, b.SupportsDepth(18))
		assert.False(t, b.SupportsDepth(19))
	})

	t.Run("unknown backbone is a registry error", func(t *testing.T) {
		_, err := GetBackbone("ViT")
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrRegistry)
		assert.Contains(t, err.Error(), "ResNetVd")
	})
}

func TestGetMetric(t *testing.T) {
	m, err := GetMetric("TableMetric")
	require.NoError(t, err)
	assert.Equal(t, DirectionHigher, m.Direction)

	_, err = GetMetric("BleuMetric")
	assert.ErrorIs(t, err, oerrors.ErrRegistry)
}

func TestGetTransform(t *testing.T) {
	tr, err := GetTransform("NormalizeImage")
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Stage)

	_, err = GetTransform("RandomErasing")
	assert.ErrorIs(t, err, oerrors.ErrRegistry)
}

func TestTransformsAreStageOrdered(t *testing.T) {
	all := Transforms()
	require.Len(t, all, 4)

	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].Stage, all[i-1].Stage)
	}
	assert.Equal(t, "DecodeImage", all[0].Tag)
	assert.Equal(t, "ToCHWImage", all[3].Tag)
}

func TestNamesAreSorted(t *testing.T) {
	assert.Equal(t, []string{"ResNetVd", "SwinTransformer", "TableResNetExtra"}, BackboneNames())
	assert.Equal(t, []string{"AccuracyMetric", "TEDSMetric", "TableMetric"}, MetricTypes())
}
