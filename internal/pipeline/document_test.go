package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleUnmarshal(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		var s Scale
		require.NoError(t, json.Unmarshal([]byte(`0.00392156862745098`), &s))
		assert.InDelta(t, 1.0/255.0, s.Value(), 1e-12)

		out, err := json.Marshal(s)
		require.NoError(t, err)
		assert.NotContains(t, string(out), `"`)
	})

	t.Run("fraction literal", func(t *testing.T) {
		var s Scale
		require.NoError(t, json.Unmarshal([]byte(`"1./255."`), &s))
		assert.InDelta(t, 1.0/255.0, s.Value(), 1e-12)

		out, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Equal(t, `"1./255."`, string(out))
	})

	t.Run("plain numeric string", func(t *testing.T) {
		var s Scale
		require.NoError(t, json.Unmarshal([]byte(`"0.5"`), &s))
		assert.InDelta(t, 0.5, s.Value(), 1e-12)
	})

	t.Run("zero denominator is rejected", func(t *testing.T) {
		var s Scale
		assert.Error(t, json.Unmarshal([]byte(`"1./0."`), &s))
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		var s Scale
		assert.Error(t, json.Unmarshal([]byte(`"one over 255"`), &s))
	})
}

func TestTransformStepUnmarshal(t *testing.T) {
	t.Run("two tags in one step", func(t *testing.T) {
		var step TransformStep
		err := json.Unmarshal([]byte(`{"DecodeImage": null, "ToCHWImage": null}`), &step)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one tag")
	})

	t.Run("unknown parameter is rejected", func(t *testing.T) {
		var step TransformStep
		err := json.Unmarshal([]byte(`{"ResizeTableImage": {"max_len": 488, "min_len": 10}}`), &step)
		require.Error(t, err)
	})

	t.Run("ToCHWImage rejects parameters", func(t *testing.T) {
		var step TransformStep
		err := json.Unmarshal([]byte(`{"ToCHWImage": {"order": "chw"}}`), &step)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no parameters")
	})

	t.Run("ToCHWImage accepts null and empty object", func(t *testing.T) {
		for _, raw := range []string{`{"ToCHWImage": null}`, `{"ToCHWImage": {}}`} {
			var step TransformStep
			require.NoError(t, json.Unmarshal([]byte(raw), &step))
			assert.Equal(t, TagToCHWImage, step.Tag)
		}
	})
}

func TestTransformStepMarshal(t *testing.T) {
	step := TransformStep{
		Tag:    TagResizeTableImage,
		Resize: &ResizeTableImageParams{MaxLen: 488},
	}

	out, err := json.Marshal(step)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ResizeTableImage": {"max_len": 488}}`, string(out))

	chw := TransformStep{Tag: TagToCHWImage}
	out, err = json.Marshal(chw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ToCHWImage": null}`, string(out))
}
