package registry

import (
	"sort"

	oerrors "github.com/structml/tabrec/internal/errors"
)

// Transform describes a preprocessing operator known to the transform
// registry. Stage ordinals define the only legal ordering: a step may never
// precede one with a lower stage.
type Transform struct {
	// Tag is the registry identifier used as the step's JSON key.
	Tag string

	// Stage is the pipeline position ordinal (decode=0 .. layout=3).
	Stage int

	// Params lists the parameter names the step accepts.
	Params []string
}

// transforms is the internal registry of known transform steps.
var transforms = map[string]Transform{
	"DecodeImage": {
		Tag:    "DecodeImage",
		Stage:  0,
		Params: []string{"img_mode", "channel_first"},
	},
	"ResizeTableImage": {
		Tag:    "ResizeTableImage",
		Stage:  1,
		Params: []string{"max_len"},
	},
	"NormalizeImage": {
		Tag:    "NormalizeImage",
		Stage:  2,
		Params: []string{"scale", "mean", "std", "order"},
	},
	"ToCHWImage": {
		Tag:    "ToCHWImage",
		Stage:  3,
		Params: nil,
	},
}

// GetTransform returns a transform descriptor by tag.
func GetTransform(tag string) (Transform, error) {
	tr, ok := transforms[tag]
	if !ok {
		return Transform{}, oerrors.NewRegistryError("transform", tag, TransformTags())
	}
	return tr, nil
}

// Transforms returns all registered transforms in stage order.
func Transforms() []Transform {
	out := make([]Transform, 0, len(transforms))
	for _, tr := range transforms {
		out = append(out, tr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stage < out[j].Stage })
	return out
}

// TransformTags returns all transform tags sorted alphabetically.
func TransformTags() []string {
	tags := make([]string, 0, len(transforms))
	for tag := range transforms {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
