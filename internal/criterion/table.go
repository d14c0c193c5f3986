// Package criterion holds the sample-size-dependent SD multipliers that set
// the width of a trimming window.
//
// The built-in tables follow Van Selst & Jolicoeur (1994): multipliers are
// published for a handful of sample sizes and linearly interpolated between
// them. Sizes below the first anchor reuse its multiplier; sizes above 100
// reuse the multiplier for 100.
package criterion

import (
	"fmt"
	"math"
	"sort"

	"rttrim/domain/core"

	"gonum.org/v1/gonum/interp"
)

// MaxSampleSize is the largest sample size with its own multiplier
const MaxSampleSize = 100

// Anchor is one published (sample size, multiplier) pair
type Anchor struct {
	SampleSize int
	Multiplier float64
}

// Table is an immutable sample size -> multiplier mapping for sizes 1..100
type Table struct {
	name        string
	multipliers [MaxSampleSize]float64
}

var nonRecursiveAnchors = []Anchor{
	{4, 1.458}, {5, 1.68}, {6, 1.841}, {7, 1.961}, {8, 2.05}, {9, 2.12},
	{10, 2.173}, {11, 2.22}, {12, 2.246}, {13, 2.274}, {14, 2.31}, {15, 2.326},
	{20, 2.391}, {25, 2.41}, {30, 2.43}, {35, 2.45}, {50, 2.48}, {100, 2.5},
}

var modifiedRecursiveAnchors = []Anchor{
	{4, 8.0}, {5, 6.2}, {6, 5.3}, {7, 4.8}, {8, 4.475}, {9, 4.25},
	{10, 4.11}, {11, 4.0}, {12, 3.92}, {13, 3.85}, {14, 3.8}, {15, 3.75},
	{20, 3.64}, {25, 3.6}, {30, 3.55}, {35, 3.54}, {50, 3.51}, {100, 3.5},
}

// NonRecursive returns the moving-criterion table for one-pass trimming
func NonRecursive() *Table {
	return mustFromAnchors("nonRecursive", nonRecursiveAnchors)
}

// ModifiedRecursive returns the table for the modified-recursive procedure
func ModifiedRecursive() *Table {
	return mustFromAnchors("modifiedRecursive", modifiedRecursiveAnchors)
}

func mustFromAnchors(name string, anchors []Anchor) *Table {
	t, err := FromAnchors(name, anchors)
	if err != nil {
		panic(fmt.Sprintf("criterion: built-in %s table: %v", name, err))
	}
	return t
}

// FromAnchors builds a table by piecewise-linear interpolation between anchors.
// Anchors may be given in any order but sample sizes must be distinct and in 1..100.
func FromAnchors(name string, anchors []Anchor) (*Table, error) {
	if len(anchors) == 0 {
		return nil, fmt.Errorf("%w: %s has no anchors", core.ErrInvalidCriterionTable, name)
	}

	sorted := make([]Anchor, len(anchors))
	copy(sorted, anchors)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SampleSize < sorted[j].SampleSize })

	xs := make([]float64, len(sorted))
	ys := make([]float64, len(sorted))
	for i, a := range sorted {
		if a.SampleSize < 1 || a.SampleSize > MaxSampleSize {
			return nil, fmt.Errorf("%w: %s sample size %d outside 1..%d", core.ErrInvalidCriterionTable, name, a.SampleSize, MaxSampleSize)
		}
		if !(a.Multiplier > 0) || math.IsInf(a.Multiplier, 0) {
			return nil, fmt.Errorf("%w: %s multiplier %v for n=%d must be positive", core.ErrInvalidCriterionTable, name, a.Multiplier, a.SampleSize)
		}
		if i > 0 && a.SampleSize == sorted[i-1].SampleSize {
			return nil, fmt.Errorf("%w: %s sample size %d listed twice", core.ErrInvalidCriterionTable, name, a.SampleSize)
		}
		xs[i] = float64(a.SampleSize)
		ys[i] = a.Multiplier
	}

	t := &Table{name: name}

	if len(sorted) == 1 {
		for i := range t.multipliers {
			t.multipliers[i] = ys[0]
		}
		return t, nil
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrInvalidCriterionTable, name, err)
	}
	first, last := xs[0], xs[len(xs)-1]
	for n := 1; n <= MaxSampleSize; n++ {
		x := math.Min(math.Max(float64(n), first), last)
		t.multipliers[n-1] = pl.Predict(x)
	}
	return t, nil
}

// FromMultipliers builds a table from exactly 100 multipliers for n = 1..100
func FromMultipliers(name string, multipliers []float64) (*Table, error) {
	if len(multipliers) != MaxSampleSize {
		return nil, fmt.Errorf("%w: %s needs %d multipliers, got %d", core.ErrInvalidCriterionTable, name, MaxSampleSize, len(multipliers))
	}
	anchors := make([]Anchor, len(multipliers))
	for i, m := range multipliers {
		anchors[i] = Anchor{SampleSize: i + 1, Multiplier: m}
	}
	return FromAnchors(name, anchors)
}

// Name identifies the table in logs
func (t *Table) Name() string {
	return t.name
}

// Multiplier returns the SD multiplier for a sample of size n.
// Sizes above 100 clamp to 100; sizes below 1 are an error.
func (t *Table) Multiplier(n int) (float64, error) {
	if n < 1 {
		return 0, core.NewSampleSizeError(n)
	}
	if n > MaxSampleSize {
		n = MaxSampleSize
	}
	return t.multipliers[n-1], nil
}

// Multipliers returns a copy of the multipliers for n = 1..100
func (t *Table) Multipliers() []float64 {
	out := make([]float64, MaxSampleSize)
	copy(out, t.multipliers[:])
	return out
}

// Set bundles the tables the trimming procedures consume
type Set struct {
	NonRecursive      *Table
	ModifiedRecursive *Table
}

// DefaultSet returns the built-in Van Selst & Jolicoeur tables
func DefaultSet() Set {
	return Set{
		NonRecursive:      NonRecursive(),
		ModifiedRecursive: ModifiedRecursive(),
	}
}
