// Package schedule computes per-iteration learning-rate values for the
// optional training section. It produces value tables only; running a
// training loop is out of scope.
package schedule

import (
	"fmt"
	"math"

	oerrors "github.com/structml/tabrec/internal/errors"
)

// Params describes a learning-rate schedule over a fixed iteration budget.
// The first WarmupIters values ramp linearly from StartValue to BaseValue,
// then the decay curve runs from BaseValue down to FinalValue.
type Params struct {
	BaseValue   float64
	FinalValue  float64
	TotalIters  int
	WarmupIters int
	StartValue  float64
}

func (p Params) check() error {
	if p.TotalIters <= 0 {
		return oerrors.NewSchemaError("lr_schedule.total_steps", "must be a positive integer")
	}
	if p.WarmupIters < 0 || p.WarmupIters >= p.TotalIters {
		return oerrors.NewSchemaError("lr_schedule.warmup_steps",
			fmt.Sprintf("must be in [0, total_steps): got %d of %d", p.WarmupIters, p.TotalIters))
	}
	if p.BaseValue <= 0 {
		return oerrors.NewSchemaError("lr_schedule.base_value", "must be positive")
	}
	if p.FinalValue < 0 {
		return oerrors.NewSchemaError("lr_schedule.final_value", "must be non-negative")
	}
	return nil
}

// warmup fills the first WarmupIters entries with a linear ramp ending at
// BaseValue, endpoints included.
func (p Params) warmup(out []float64) {
	n := p.WarmupIters
	if n == 0 {
		return
	}
	if n == 1 {
		out[0] = p.StartValue
		return
	}
	step := (p.BaseValue - p.StartValue) / float64(n-1)
	for i := 0; i < n; i++ {
		out[i] = p.StartValue + float64(i)*step
	}
}

// Cosine returns the per-iteration values of a half-cosine decay from
// BaseValue to FinalValue with linear warmup. len(result) == TotalIters.
func Cosine(p Params) ([]float64, error) {
	if err := p.check(); err != nil {
		return nil, err
	}

	out := make([]float64, p.TotalIters)
	p.warmup(out)

	n := p.TotalIters - p.WarmupIters
	for i := 0; i < n; i++ {
		out[p.WarmupIters+i] = p.FinalValue +
			0.5*(p.BaseValue-p.FinalValue)*(1+math.Cos(math.Pi*float64(i)/float64(n)))
	}
	return out, nil
}

// Polynomial returns the per-iteration values of a power-1 polynomial decay
// from BaseValue to FinalValue with linear warmup. len(result) == TotalIters.
func Polynomial(p Params) ([]float64, error) {
	if err := p.check(); err != nil {
		return nil, err
	}

	out := make([]float64, p.TotalIters)
	p.warmup(out)

	n := p.TotalIters - p.WarmupIters
	for i := 0; i < n; i++ {
		frac := 1 - float64(i)/float64(n)
		out[p.WarmupIters+i] = (p.BaseValue-p.FinalValue)*frac + p.FinalValue
	}
	return out, nil
}

// LayerDecayRates returns the per-layer learning-rate multipliers for
// layer-wise decay: index i holds decay^(nLayers+1-i) for the embedding
// layer (i == 0) through the head (i == nLayers+1, multiplier 1).
func LayerDecayRates(decay float64, nLayers int) []float64 {
	rates := make([]float64, nLayers+2)
	for i := range rates {
		rates[i] = math.Pow(decay, float64(len(rates)-1-i))
	}
	return rates
}
