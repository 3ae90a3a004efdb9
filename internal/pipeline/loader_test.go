package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/structml/tabrec/internal/errors"
)

// exampleDoc is the reference evaluation document used across the tests.
const exampleDoc = `{
  "architecture": {
    "image_module": {
      "name": "ResNetVd",
      "layer": 18,
      "hidden_layers": 2,
      "out_channels": 128,
      "proj_size": 128,
      "has_gate": true
    },
    "task_module": {
      "in_channels": 128,
      "hidden_size": 256
    }
  },
  "metric": [
    {"name": "teds", "type": "TableMetric"}
  ],
  "eval": {
    "feed_names": ["image", "structure", "bboxes"],
    "loader": {
      "collect_batch": true,
      "num_workers": 0,
      "shuffle": false,
      "drop_last": false,
      "use_shared_memory": false
    },
    "dataset": {
      "data_path": "./data/pubtabnet/val.jsonl",
      "image_path": "./data/pubtabnet/val",
      "batch_size": 1,
      "shuffle": false,
      "transform": [
        {"DecodeImage": {"img_mode": "BGR", "channel_first": false}},
        {"ResizeTableImage": {"max_len": 488}},
        {"NormalizeImage": {"scale": "1./255.", "mean": [0.485, 0.456, 0.406], "std": [0.229, 0.224, 0.225], "order": "hwc"}},
        {"ToCHWImage": null}
      ]
    }
  }
}`

func parseString(t *testing.T, doc string) (*Document, error) {
	t.Helper()
	return Parse(strings.NewReader(doc))
}

func TestParseExampleDocument(t *testing.T) {
	doc, err := parseString(t, exampleDoc)
	require.NoError(t, err)

	assert.Equal(t, 18, doc.Architecture.ImageModule.Layer)
	assert.Equal(t, 256, doc.Architecture.TaskModule.HiddenSize)
	assert.Equal(t, 1, doc.Eval.Dataset.BatchSize)

	steps := doc.Eval.Dataset.Transform
	require.Len(t, steps, 4)
	assert.Equal(t, TagDecodeImage, steps[0].Tag)
	assert.Equal(t, TagResizeTableImage, steps[1].Tag)
	assert.Equal(t, TagNormalizeImage, steps[2].Tag)
	assert.Equal(t, TagToCHWImage, steps[3].Tag)

	assert.InDelta(t, 1.0/255.0, steps[2].Normalize.Scale.Value(), 1e-12)
	assert.Nil(t, doc.Train)
}

func TestParseZeroWorkersIsLegal(t *testing.T) {
	doc, err := parseString(t, exampleDoc)
	require.NoError(t, err)

	assert.Equal(t, 0, doc.Eval.Loader.NumWorkers)
	assert.False(t, doc.Eval.Loader.UseSharedMemory)
}

func TestParseMissingRequiredField(t *testing.T) {
	missingLayer := strings.Replace(exampleDoc, `"layer": 18,`, "", 1)

	_, err := parseString(t, missingLayer)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrSchema)
	assert.Contains(t, err.Error(), "architecture.image_module.layer")
}

func TestParseMeanStdLength(t *testing.T) {
	t.Run("short mean is rejected", func(t *testing.T) {
		bad := strings.Replace(exampleDoc, `"mean": [0.485, 0.456, 0.406]`, `"mean": [0.485, 0.456]`, 1)

		_, err := parseString(t, bad)
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrSchema)
		assert.Contains(t, err.Error(), "mean")
		assert.Contains(t, err.Error(), "exactly 3")
	})

	t.Run("long std is rejected", func(t *testing.T) {
		bad := strings.Replace(exampleDoc, `"std": [0.229, 0.224, 0.225]`, `"std": [0.229, 0.224, 0.225, 0.2]`, 1)

		_, err := parseString(t, bad)
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrSchema)
		assert.Contains(t, err.Error(), "std")
	})
}

func TestParseOrderEnum(t *testing.T) {
	for _, order := range []string{"hwc", "chw"} {
		good := strings.Replace(exampleDoc, `"order": "hwc"`, `"order": "`+order+`"`, 1)
		_, err := parseString(t, good)
		assert.NoError(t, err, "order %q should be accepted", order)
	}

	bad := strings.Replace(exampleDoc, `"order": "hwc"`, `"order": "whc"`, 1)
	_, err := parseString(t, bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrSchema)
	assert.Contains(t, err.Error(), "order")
}

func TestParseTransformOrdering(t *testing.T) {
	t.Run("resize before decode is rejected", func(t *testing.T) {
		bad := strings.Replace(exampleDoc,
			`{"DecodeImage": {"img_mode": "BGR", "channel_first": false}},
        {"ResizeTableImage": {"max_len": 488}},`,
			`{"ResizeTableImage": {"max_len": 488}},
        {"DecodeImage": {"img_mode": "BGR", "channel_first": false}},`, 1)

		_, err := parseString(t, bad)
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrSchema)
		assert.Contains(t, err.Error(), "out of order")
	})

	t.Run("duplicate step is rejected", func(t *testing.T) {
		bad := strings.Replace(exampleDoc,
			`{"ResizeTableImage": {"max_len": 488}},`,
			`{"ResizeTableImage": {"max_len": 488}},
        {"ResizeTableImage": {"max_len": 488}},`, 1)

		_, err := parseString(t, bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("empty transform sequence is rejected", func(t *testing.T) {
		_, err := parseString(t, strings.Replace(exampleDoc,
			`"transform": [
        {"DecodeImage": {"img_mode": "BGR", "channel_first": false}},
        {"ResizeTableImage": {"max_len": 488}},
        {"NormalizeImage": {"scale": "1./255.", "mean": [0.485, 0.456, 0.406], "std": [0.229, 0.224, 0.225], "order": "hwc"}},
        {"ToCHWImage": null}
      ]`, `"transform": []`, 1))
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrSchema)
	})
}

func TestParseUnknownTransformTag(t *testing.T) {
	bad := strings.Replace(exampleDoc, `{"ToCHWImage": null}`, `{"RandomErasing": {}}`, 1)

	_, err := parseString(t, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RandomErasing")
}

func TestParseRejectsUnknownFields(t *testing.T) {
	bad := strings.Replace(exampleDoc, `"batch_size": 1,`, `"batch_size": 1, "batchsize": 2,`, 1)

	_, err := parseString(t, bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrSchema)
}

func TestParseTypeMismatch(t *testing.T) {
	bad := strings.Replace(exampleDoc, `"layer": 18`, `"layer": "18"`, 1)

	_, err := parseString(t, bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrSchema)
}

func TestParseNegativeNumWorkers(t *testing.T) {
	bad := strings.Replace(exampleDoc, `"num_workers": 0`, `"num_workers": -1`, 1)

	_, err := parseString(t, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "num_workers")
}

func TestParseTrainSection(t *testing.T) {
	withTrain := strings.TrimSuffix(exampleDoc, "}") + `,
  "train": {
    "feed_names": ["image", "structure"],
    "loader": {
      "collect_batch": true,
      "num_workers": 4,
      "shuffle": true,
      "drop_last": true,
      "use_shared_memory": true
    },
    "dataset": {
      "data_path": "./data/pubtabnet/train.jsonl",
      "image_path": "./data/pubtabnet/train",
      "batch_size": 48,
      "shuffle": true,
      "transform": [
        {"DecodeImage": {"img_mode": "BGR", "channel_first": false}},
        {"ResizeTableImage": {"max_len": 488}},
        {"NormalizeImage": {"scale": "1./255.", "mean": [0.485, 0.456, 0.406], "std": [0.229, 0.224, 0.225], "order": "hwc"}},
        {"ToCHWImage": null}
      ]
    },
    "optimizer": {
      "name": "AdamW",
      "learning_rate": 0.0002,
      "beta1": 0.9,
      "beta2": 0.999,
      "weight_decay": 0.05,
      "layerwise_decay": 0.65,
      "n_layers": 12
    },
    "lr_schedule": {
      "type": "cosine",
      "final_value": 0.000001,
      "warmup_steps": 1000,
      "total_steps": 100000
    }
  }
}`

	doc, err := parseString(t, withTrain)
	require.NoError(t, err)
	require.NotNil(t, doc.Train)
	assert.Equal(t, 48, doc.Train.Dataset.BatchSize)
	assert.Equal(t, 4, doc.Train.Loader.NumWorkers)
	require.NotNil(t, doc.Train.Optimizer)
	assert.Equal(t, "AdamW", doc.Train.Optimizer.Name)
	require.NotNil(t, doc.Train.LRSchedule)
	assert.Equal(t, ScheduleCosine, doc.Train.LRSchedule.Type)

	t.Run("bad optimizer beta is rejected", func(t *testing.T) {
		bad := strings.Replace(withTrain, `"beta1": 0.9`, `"beta1": 1.5`, 1)
		_, err := parseString(t, bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "train.optimizer.beta1")
	})

	t.Run("warmup beyond total is rejected", func(t *testing.T) {
		bad := strings.Replace(withTrain, `"warmup_steps": 1000`, `"warmup_steps": 200000`, 1)
		_, err := parseString(t, bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "warmup_steps")
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads document from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "eval.json")
		require.NoError(t, os.WriteFile(path, []byte(exampleDoc), 0o644))

		doc, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "ResNetVd", doc.Architecture.ImageModule.Name)
	})

	t.Run("missing file is not found", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrNotFound)
	})

	t.Run("trailing garbage is rejected", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "eval.json")
		require.NoError(t, os.WriteFile(path, []byte(exampleDoc+"{}"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrSchema)
	})
}
