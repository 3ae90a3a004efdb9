package registry

import (
	"sort"

	oerrors "github.com/structml/tabrec/internal/errors"
)

// Metric direction constants.
const (
	// DirectionHigher means larger scores are better.
	DirectionHigher = "higher-better"

	// DirectionLower means smaller scores are better.
	DirectionLower = "lower-better"
)

// Metric describes an evaluation metric known to the metric registry.
// The callable itself lives in the evaluation harness; this record only
// resolves and documents the type tag.
type Metric struct {
	// Type is the registry identifier referenced by metric[].type.
	Type string

	// Description is a one-line summary.
	Description string

	// Direction indicates whether higher or lower scores are better.
	Direction string
}

// metrics is the internal registry of known metric types.
var metrics = map[string]Metric{
	"TableMetric": {
		Type:        "TableMetric",
		Description: "Table structure similarity via tree edit distance (TEDS)",
		Direction:   DirectionHigher,
	},
	"TEDSMetric": {
		Type:        "TEDSMetric",
		Description: "Raw tree-edit-distance-based similarity on HTML trees",
		Direction:   DirectionHigher,
	},
	"AccuracyMetric": {
		Type:        "AccuracyMetric",
		Description: "Exact-match accuracy over predicted structures",
		Direction:   DirectionHigher,
	},
}

// GetMetric returns a metric descriptor by type tag.
func GetMetric(typeTag string) (Metric, error) {
	m, ok := metrics[typeTag]
	if !ok {
		return Metric{}, oerrors.NewRegistryError("metric.type", typeTag, MetricTypes())
	}
	return m, nil
}

// Metrics returns all registered metrics sorted by type.
func Metrics() []Metric {
	out := make([]Metric, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// MetricTypes returns all metric type tags sorted alphabetically.
func MetricTypes() []string {
	types := make([]string, 0, len(metrics))
	for t := range metrics {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
