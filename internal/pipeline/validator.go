package pipeline

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"

	oerrors "github.com/structml/tabrec/internal/errors"
	"github.com/structml/tabrec/internal/registry"
)

//go:embed schema/document.cue
var schemaFS embed.FS

// Validator checks raw documents against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new document validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schemaData, err := schemaFS.ReadFile("schema/document.cue")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}

	compiled := ctx.CompileBytes(schemaData)
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", compiled.Err())
	}

	schema := compiled.LookupPath(cue.ParsePath("#Document"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("looking up #Document: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// ValidateBytes unifies a raw JSON document with the schema and reports the
// first violation as a SchemaError with its field path.
func (v *Validator) ValidateBytes(location string, data []byte) error {
	expr, err := cuejson.Extract(location, data)
	if err != nil {
		return oerrors.NewSchemaError("", fmt.Sprintf("malformed JSON: %v", err))
	}

	value := v.ctx.BuildExpr(expr)
	if value.Err() != nil {
		return oerrors.NewSchemaError("", value.Err().Error())
	}

	unified := v.schema.Unify(value)
	if err := unified.Validate(cue.Final()); err != nil {
		return schemaErrorFromCUE(err)
	}

	return nil
}

// schemaErrorFromCUE converts a CUE validation error into a SchemaError
// carrying the offending field path.
func schemaErrorFromCUE(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return oerrors.NewSchemaError("", err.Error())
	}

	first := errs[0]
	path := strings.Join(first.Path(), ".")
	msg := first.Error()

	// The raw message repeats the path; keep just the explanation when the
	// path is known.
	if path != "" {
		msg = strings.TrimPrefix(msg, path+": ")
	}

	return oerrors.NewSchemaError(path, msg)
}

// Validate resolves the document's named collaborators against the
// registries and enforces cross-field invariants. It assumes the document
// already passed Parse.
func (d *Document) Validate() error {
	im := d.Architecture.ImageModule

	backbone, err := registry.GetBackbone(im.Name)
	if err != nil {
		return err
	}

	if !backbone.SupportsDepth(im.Layer) {
		return &oerrors.DetailError{
			Type:    "schema violation",
			Message: fmt.Sprintf("backbone %q does not support depth %d", im.Name, im.Layer),
			Field:   "architecture.image_module.layer",
			Hint:    fmt.Sprintf("Supported depths: %v", backbone.SupportedDepths),
			Cause:   oerrors.ErrSchema,
		}
	}

	if im.HasGate && !backbone.Gated {
		return oerrors.NewSchemaError("architecture.image_module.has_gate",
			fmt.Sprintf("backbone %q has no gating mechanism", im.Name))
	}

	if d.Architecture.TaskModule.InChannels != im.OutChannels {
		return oerrors.NewSchemaError("architecture.task_module.in_channels",
			fmt.Sprintf("must equal image_module.out_channels (%d != %d)",
				d.Architecture.TaskModule.InChannels, im.OutChannels))
	}

	for i, m := range d.Metric {
		if _, err := registry.GetMetric(m.Type); err != nil {
			var detail *oerrors.DetailError
			if errors.As(err, &detail) {
				detail.Field = fmt.Sprintf("metric[%d].type", i)
				return detail
			}
			return err
		}
	}

	for _, section := range d.sections() {
		for _, step := range section.s.Dataset.Transform {
			if _, err := registry.GetTransform(step.Tag); err != nil {
				return err
			}
		}
	}

	return nil
}

// sections returns the present sections with their path prefixes.
func (d *Document) sections() []namedSection {
	out := []namedSection{{name: "eval", s: &d.Eval}}
	if d.Train != nil {
		out = append(out, namedSection{name: "train", s: d.Train})
	}
	return out
}

type namedSection struct {
	name string
	s    *Section
}
