// Package registry enumerates the backbones, metrics, and transform
// operators a pipeline configuration may reference. Entries describe and
// resolve names; the implementations live in the consuming framework.
package registry

import (
	"sort"

	oerrors "github.com/structml/tabrec/internal/errors"
)

// Backbone describes an image-module backbone known to the model registry.
type Backbone struct {
	// Name is the registry identifier.
	Name string

	// Description is a one-line summary.
	Description string

	// SupportedDepths lists the valid values for the layer field.
	SupportedDepths []int

	// Gated reports whether the backbone supports the has_gate option.
	Gated bool
}

// backbones is the internal registry of known backbones.
var backbones = map[string]Backbone{
	"ResNetVd": {
		Name:            "ResNetVd",
		Description:     "ResNet-vd convolutional backbone",
		SupportedDepths: []int{18, 34, 50, 101},
		Gated:           true,
	},
	"TableResNetExtra": {
		Name:            "TableResNetExtra",
		Description:     "ResNet variant with extra feature taps for table cells",
		SupportedDepths: []int{18, 34, 50},
		Gated:           true,
	},
	"SwinTransformer": {
		Name:            "SwinTransformer",
		Description:     "Hierarchical windowed attention backbone",
		SupportedDepths: []int{12, 24},
		Gated:           false,
	},
}

// GetBackbone returns a backbone by name.
func GetBackbone(name string) (Backbone, error) {
	b, ok := backbones[name]
	if !ok {
		return Backbone{}, oerrors.NewRegistryError("architecture.image_module.name", name, BackboneNames())
	}
	return b, nil
}

// SupportsDepth reports whether the backbone accepts the given layer count.
func (b Backbone) SupportsDepth(layer int) bool {
	for _, d := range b.SupportedDepths {
		if d == layer {
			return true
		}
	}
	return false
}

// Backbones returns all registered backbones sorted by name.
func Backbones() []Backbone {
	out := make([]Backbone, 0, len(backbones))
	for _, b := range backbones {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// BackboneNames returns all backbone names sorted alphabetically.
func BackboneNames() []string {
	names := make([]string, 0, len(backbones))
	for name := range backbones {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
