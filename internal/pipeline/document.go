// Package pipeline defines the typed schema for table-recognition pipeline
// configuration documents and the loader that parses and validates them.
//
// A document is parsed once at process start and treated as immutable for
// the rest of the run. Field names and nesting mirror the JSON wire format
// exactly; consumers depend on them bit-for-bit.
package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Document is the root of a pipeline configuration.
type Document struct {
	Architecture Architecture `json:"architecture"`
	Metric       []MetricSpec `json:"metric"`
	Eval         Section      `json:"eval"`

	// Train is the optional sibling section for the training side.
	Train *Section `json:"train,omitempty"`
}

// Architecture selects the model modules.
type Architecture struct {
	ImageModule ImageModule `json:"image_module"`
	TaskModule  TaskModule  `json:"task_module"`
}

// ImageModule configures the visual backbone.
type ImageModule struct {
	// Name must resolve in the backbone registry.
	Name string `json:"name"`

	// Layer is the backbone depth; it must be a depth the backbone supports.
	Layer int `json:"layer"`

	HiddenLayers int `json:"hidden_layers"`
	OutChannels  int `json:"out_channels"`
	ProjSize     int `json:"proj_size"`

	// HasGate toggles the backbone's internal gating mechanism.
	HasGate bool `json:"has_gate"`
}

// TaskModule configures the structure-prediction head.
type TaskModule struct {
	// InChannels must equal the image module's out_channels.
	InChannels int `json:"in_channels"`
	HiddenSize int `json:"hidden_size"`
}

// MetricSpec selects an evaluation metric by registry lookup.
type MetricSpec struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Section describes one side of the pipeline (eval or train).
type Section struct {
	FeedNames []string `json:"feed_names"`
	Loader    Loader   `json:"loader"`
	Dataset   Dataset  `json:"dataset"`

	// Optimizer and LRSchedule only appear in the train section.
	Optimizer  *Optimizer  `json:"optimizer,omitempty"`
	LRSchedule *LRSchedule `json:"lr_schedule,omitempty"`
}

// Loader controls batch collation and parallelism in the consuming data
// loader. num_workers of 0 is a legal synchronous-loading mode.
type Loader struct {
	CollectBatch    bool `json:"collect_batch"`
	NumWorkers      int  `json:"num_workers"`
	Shuffle         bool `json:"shuffle"`
	DropLast        bool `json:"drop_last"`
	UseSharedMemory bool `json:"use_shared_memory"`
}

// Dataset locates the label and image data and defines the preprocessing
// sequence applied to every sample.
type Dataset struct {
	DataPath  string          `json:"data_path"`
	ImagePath string          `json:"image_path"`
	BatchSize int             `json:"batch_size"`
	Shuffle   bool            `json:"shuffle"`
	Transform []TransformStep `json:"transform"`
}

// Optimizer carries AdamW hyperparameters for the train section. Values
// only; the optimizer itself lives in the training framework.
type Optimizer struct {
	Name           string  `json:"name"`
	LearningRate   float64 `json:"learning_rate"`
	Beta1          float64 `json:"beta1"`
	Beta2          float64 `json:"beta2"`
	WeightDecay    float64 `json:"weight_decay"`
	LayerwiseDecay float64 `json:"layerwise_decay,omitempty"`
	NLayers        int     `json:"n_layers,omitempty"`
}

// LR schedule type tags.
const (
	ScheduleCosine     = "cosine"
	SchedulePolynomial = "polynomial"
)

// LRSchedule selects a learning-rate schedule for the train section.
type LRSchedule struct {
	Type        string  `json:"type"`
	FinalValue  float64 `json:"final_value"`
	WarmupSteps int     `json:"warmup_steps"`
	TotalSteps  int     `json:"total_steps"`
}

// Transform step tags.
const (
	TagDecodeImage      = "DecodeImage"
	TagResizeTableImage = "ResizeTableImage"
	TagNormalizeImage   = "NormalizeImage"
	TagToCHWImage       = "ToCHWImage"
)

// Image mode constants for DecodeImage.
const (
	ImgModeBGR  = "BGR"
	ImgModeRGB  = "RGB"
	ImgModeGray = "GRAY"
)

// Tensor layout constants for NormalizeImage.
const (
	OrderHWC = "hwc"
	OrderCHW = "chw"
)

// TransformStep is a tagged variant over the four preprocessing operators.
// On the wire each step is a single-key object mapping the tag to its
// parameter record; ToCHWImage carries null.
type TransformStep struct {
	// Tag identifies the operator.
	Tag string

	// Exactly one of the following is set, matching Tag. ToCHWImage has no
	// parameter record.
	Decode    *DecodeImageParams
	Resize    *ResizeTableImageParams
	Normalize *NormalizeImageParams
}

// DecodeImageParams configures image decoding.
type DecodeImageParams struct {
	ImgMode      string `json:"img_mode"`
	ChannelFirst bool   `json:"channel_first"`
}

// ResizeTableImageParams configures the table-aware resize.
type ResizeTableImageParams struct {
	MaxLen int `json:"max_len"`
}

// NormalizeImageParams configures per-channel normalization.
type NormalizeImageParams struct {
	Scale Scale     `json:"scale"`
	Mean  []float64 `json:"mean"`
	Std   []float64 `json:"std"`
	Order string    `json:"order"`
}

// UnmarshalJSON decodes a single-key tagged object into a TransformStep.
func (s *TransformStep) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("transform step must be an object: %w", err)
	}
	if len(raw) != 1 {
		return fmt.Errorf("transform step must have exactly one tag, got %d", len(raw))
	}

	var tag string
	var params json.RawMessage
	for k, v := range raw {
		tag, params = k, v
	}
	s.Tag = tag

	switch tag {
	case TagDecodeImage:
		s.Decode = &DecodeImageParams{}
		return decodeStrict(params, s.Decode, tag)
	case TagResizeTableImage:
		s.Resize = &ResizeTableImageParams{}
		return decodeStrict(params, s.Resize, tag)
	case TagNormalizeImage:
		s.Normalize = &NormalizeImageParams{}
		return decodeStrict(params, s.Normalize, tag)
	case TagToCHWImage:
		if !isJSONNullOrEmpty(params) {
			return fmt.Errorf("%s takes no parameters", tag)
		}
		return nil
	default:
		return fmt.Errorf("unknown transform tag %q", tag)
	}
}

// MarshalJSON re-emits the single-key tagged object form.
func (s TransformStep) MarshalJSON() ([]byte, error) {
	var params interface{}
	switch s.Tag {
	case TagDecodeImage:
		params = s.Decode
	case TagResizeTableImage:
		params = s.Resize
	case TagNormalizeImage:
		params = s.Normalize
	case TagToCHWImage:
		params = nil
	default:
		return nil, fmt.Errorf("unknown transform tag %q", s.Tag)
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	key, err := json.Marshal(s.Tag)
	if err != nil {
		return nil, err
	}
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(body)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeStrict unmarshals params rejecting unknown fields. Null is treated
// as an empty parameter record.
func decodeStrict(data json.RawMessage, dst interface{}, tag string) error {
	if isJSONNullOrEmpty(data) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	return nil
}

func isJSONNullOrEmpty(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}"))
}

// Scale is a normalization scale factor. The wire form is either a JSON
// number or a fraction literal string such as "1./255." as emitted by the
// original training configs; the literal form is preserved on re-serialize.
type Scale struct {
	value float64
	raw   string
}

// NewScale returns a numeric Scale.
func NewScale(v float64) Scale {
	return Scale{value: v}
}

// NewScaleLiteral parses a fraction literal like "1./255." into a Scale that
// keeps the literal for round-tripping.
func NewScaleLiteral(raw string) (Scale, error) {
	v, err := parseFractionLiteral(raw)
	if err != nil {
		return Scale{}, err
	}
	return Scale{value: v, raw: raw}, nil
}

// Value returns the numeric scale factor.
func (s Scale) Value() float64 {
	return s.value
}

// UnmarshalJSON accepts a number or a fraction literal string.
func (s *Scale) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("scale must not be empty")
	}

	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		v, err := parseFractionLiteral(raw)
		if err != nil {
			return err
		}
		s.value = v
		s.raw = raw
		return nil
	}

	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return fmt.Errorf("scale must be a number or fraction string: %w", err)
	}
	s.value = v
	s.raw = ""
	return nil
}

// MarshalJSON preserves the fraction literal when one was parsed.
func (s Scale) MarshalJSON() ([]byte, error) {
	if s.raw != "" {
		return json.Marshal(s.raw)
	}
	return json.Marshal(s.value)
}

// parseFractionLiteral parses "a./b.", "a/b", or a plain numeric string.
// Trailing dots on either operand are tolerated ("1." reads as 1.0).
func parseFractionLiteral(raw string) (float64, error) {
	parse := func(s string) (float64, error) {
		s = strings.TrimSpace(s)
		if strings.HasSuffix(s, ".") {
			s += "0"
		}
		return strconv.ParseFloat(s, 64)
	}

	if num, den, ok := strings.Cut(raw, "/"); ok {
		n, err := parse(num)
		if err != nil {
			return 0, fmt.Errorf("invalid scale literal %q: %w", raw, err)
		}
		d, err := parse(den)
		if err != nil {
			return 0, fmt.Errorf("invalid scale literal %q: %w", raw, err)
		}
		if d == 0 {
			return 0, fmt.Errorf("invalid scale literal %q: zero denominator", raw)
		}
		return n / d, nil
	}

	v, err := parse(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid scale literal %q: %w", raw, err)
	}
	return v, nil
}
