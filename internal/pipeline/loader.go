package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	oerrors "github.com/structml/tabrec/internal/errors"
	"github.com/structml/tabrec/internal/registry"
)

// FieldError is a single schema violation at a dotted field path.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SchemaErrors is a collection of schema violations.
type SchemaErrors []FieldError

// Error implements the error interface.
func (e SchemaErrors) Error() string {
	if len(e) == 0 {
		return "no schema errors"
	}

	var sb strings.Builder
	sb.WriteString("document validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap ties the collection to the schema error sentinel.
func (e SchemaErrors) Unwrap() error {
	return oerrors.ErrSchema
}

// Load reads and parses a pipeline configuration document from disk.
// The referenced dataset paths are NOT checked here; that is deferred to
// Document.CheckPaths so a document can be inspected on a machine that does
// not hold the data.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &oerrors.DetailError{
				Type:     "not found",
				Message:  "configuration document not found",
				Location: path,
				Hint:     "Run 'tabrec init' to create a default document",
				Cause:    oerrors.ErrNotFound,
			}
		}
		return nil, oerrors.Wrap(oerrors.ErrNotFound, fmt.Sprintf("reading %s", path))
	}

	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Parse decodes a UTF-8 JSON document and performs structural validation:
// required-field presence, type conformance, enum membership, positivity,
// and transform ordering. Unknown top-level or nested fields are rejected.
func Parse(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, schemaErrorFromDecode(err)
	}

	// A document is a single JSON value; trailing garbage is malformed.
	if dec.More() {
		return nil, oerrors.NewSchemaError("", "trailing data after document")
	}

	if errs := checkSchema(&doc); len(errs) > 0 {
		return nil, errs
	}

	return &doc, nil
}

// schemaErrorFromDecode converts an encoding/json error into a SchemaError
// with the best field path the decoder can give us.
func schemaErrorFromDecode(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return oerrors.NewSchemaError(typeErr.Field,
			fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return oerrors.NewSchemaError("",
			fmt.Sprintf("malformed JSON at offset %d: %v", syntaxErr.Offset, syntaxErr))
	}

	return oerrors.NewSchemaError("", err.Error())
}

// checkSchema performs structural validation of a decoded document.
func checkSchema(doc *Document) SchemaErrors {
	var errs SchemaErrors

	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message})
	}

	requirePositive := func(field string, v int) {
		if v <= 0 {
			add(field, "required and must be a positive integer")
		}
	}

	// architecture.image_module
	im := doc.Architecture.ImageModule
	if im.Name == "" {
		add("architecture.image_module.name", "required")
	}
	requirePositive("architecture.image_module.layer", im.Layer)
	requirePositive("architecture.image_module.hidden_layers", im.HiddenLayers)
	requirePositive("architecture.image_module.out_channels", im.OutChannels)
	requirePositive("architecture.image_module.proj_size", im.ProjSize)

	// architecture.task_module
	tm := doc.Architecture.TaskModule
	requirePositive("architecture.task_module.in_channels", tm.InChannels)
	requirePositive("architecture.task_module.hidden_size", tm.HiddenSize)

	// metric
	if len(doc.Metric) == 0 {
		add("metric", "at least one metric is required")
	}
	for i, m := range doc.Metric {
		if m.Name == "" {
			add(fmt.Sprintf("metric[%d].name", i), "required")
		}
		if m.Type == "" {
			add(fmt.Sprintf("metric[%d].type", i), "required")
		}
	}

	// eval is mandatory; train is an optional sibling
	errs = append(errs, checkSection("eval", &doc.Eval)...)
	if doc.Train != nil {
		errs = append(errs, checkSection("train", doc.Train)...)
	}

	return errs
}

// checkSection validates one pipeline section under the given path prefix.
func checkSection(prefix string, s *Section) SchemaErrors {
	var errs SchemaErrors

	add := func(field, message string) {
		errs = append(errs, FieldError{Field: prefix + "." + field, Message: message})
	}

	if len(s.FeedNames) == 0 {
		add("feed_names", "required and must not be empty")
	}
	for i, name := range s.FeedNames {
		if name == "" {
			add(fmt.Sprintf("feed_names[%d]", i), "must not be empty")
		}
	}

	if s.Loader.NumWorkers < 0 {
		add("loader.num_workers", "must be >= 0 (0 is synchronous loading)")
	}

	if s.Dataset.DataPath == "" {
		add("dataset.data_path", "required")
	}
	if s.Dataset.ImagePath == "" {
		add("dataset.image_path", "required")
	}
	if s.Dataset.BatchSize <= 0 {
		add("dataset.batch_size", "required and must be a positive integer")
	}

	errs = append(errs, checkTransforms(prefix+".dataset.transform", s.Dataset.Transform)...)

	if s.Optimizer != nil {
		errs = append(errs, checkOptimizer(prefix+".optimizer", s.Optimizer)...)
	}
	if s.LRSchedule != nil {
		errs = append(errs, checkLRSchedule(prefix+".lr_schedule", s.LRSchedule)...)
	}

	return errs
}

// checkTransforms validates parameters and ordering of a transform sequence.
// Sequence order is semantically significant: decode precedes resize
// precedes normalize precedes channel reordering.
func checkTransforms(prefix string, steps []TransformStep) SchemaErrors {
	var errs SchemaErrors

	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message})
	}

	if len(steps) == 0 {
		add(prefix, "required and must not be empty")
		return errs
	}

	lastStage := -1
	for i, step := range steps {
		path := fmt.Sprintf("%s[%d].%s", prefix, i, step.Tag)

		// Tags were vetted during unmarshal, so resolution cannot fail; the
		// descriptor is only needed for its stage ordinal.
		desc, err := registry.GetTransform(step.Tag)
		if err != nil {
			add(path, "unknown transform tag")
			continue
		}

		if desc.Stage == lastStage {
			add(path, "duplicate transform step")
		} else if desc.Stage < lastStage {
			add(path, "out of order: decode, resize, normalize, then channel reordering")
		}
		lastStage = desc.Stage

		switch step.Tag {
		case TagDecodeImage:
			if step.Decode.ImgMode != ImgModeBGR && step.Decode.ImgMode != ImgModeRGB && step.Decode.ImgMode != ImgModeGray {
				add(path+".img_mode", `must be one of "BGR", "RGB", "GRAY"`)
			}
		case TagResizeTableImage:
			if step.Resize.MaxLen <= 0 {
				add(path+".max_len", "required and must be a positive integer")
			}
		case TagNormalizeImage:
			n := step.Normalize
			if n.Scale.Value() <= 0 {
				add(path+".scale", "must be positive")
			}
			if len(n.Mean) != 3 {
				add(path+".mean", fmt.Sprintf("must have exactly 3 elements, got %d", len(n.Mean)))
			}
			if len(n.Std) != 3 {
				add(path+".std", fmt.Sprintf("must have exactly 3 elements, got %d", len(n.Std)))
			}
			for j, v := range n.Std {
				if v <= 0 {
					add(fmt.Sprintf("%s.std[%d]", path, j), "must be positive")
				}
			}
			if n.Order != OrderHWC && n.Order != OrderCHW {
				add(path+".order", `must be "hwc" or "chw"`)
			}
		}
	}

	return errs
}

// Optimizer name tags accepted in the train section.
var optimizerNames = []string{"AdamW", "Momentum", "SGD"}

func checkOptimizer(prefix string, o *Optimizer) SchemaErrors {
	var errs SchemaErrors

	add := func(field, message string) {
		errs = append(errs, FieldError{Field: prefix + "." + field, Message: message})
	}

	known := false
	for _, name := range optimizerNames {
		if o.Name == name {
			known = true
			break
		}
	}
	if !known {
		add("name", fmt.Sprintf("must be one of %s", strings.Join(optimizerNames, ", ")))
	}

	if o.LearningRate <= 0 {
		add("learning_rate", "must be positive")
	}
	if o.Beta1 <= 0 || o.Beta1 >= 1 {
		add("beta1", "must be in (0, 1)")
	}
	if o.Beta2 <= 0 || o.Beta2 >= 1 {
		add("beta2", "must be in (0, 1)")
	}
	if o.WeightDecay < 0 {
		add("weight_decay", "must be >= 0")
	}
	if o.LayerwiseDecay < 0 || o.LayerwiseDecay > 1 {
		add("layerwise_decay", "must be in [0, 1]")
	}
	if o.LayerwiseDecay > 0 && o.NLayers <= 0 {
		add("n_layers", "required when layerwise_decay is set")
	}

	return errs
}

func checkLRSchedule(prefix string, s *LRSchedule) SchemaErrors {
	var errs SchemaErrors

	add := func(field, message string) {
		errs = append(errs, FieldError{Field: prefix + "." + field, Message: message})
	}

	if s.Type != ScheduleCosine && s.Type != SchedulePolynomial {
		add("type", `must be "cosine" or "polynomial"`)
	}
	if s.TotalSteps <= 0 {
		add("total_steps", "must be positive")
	}
	if s.WarmupSteps < 0 {
		add("warmup_steps", "must be >= 0")
	}
	if s.TotalSteps > 0 && s.WarmupSteps >= s.TotalSteps {
		add("warmup_steps", "must be less than total_steps")
	}
	if s.FinalValue < 0 {
		add("final_value", "must be >= 0")
	}

	return errs
}
