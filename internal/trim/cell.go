// Package trim implements the reaction-time trimming procedures: per-cell
// trimmers, and a driver that applies one of them across every
// participant × condition cell of a dataset.
package trim

import (
	"sort"

	"rttrim/domain/trial"

	"github.com/montanaflynn/stats"
)

// CellTrimmer reduces the RTs of one cell to a trimmed mean.
// It must not retain or modify rts, and must be safe to call concurrently.
type CellTrimmer func(rts []float64) trial.CellValue

// sortedCopy makes trimming a function of the multiset alone:
// summation order, and therefore the result bits, no longer depend on input order.
func sortedCopy(rts []float64) []float64 {
	out := make([]float64, len(rts))
	copy(out, rts)
	sort.Float64s(out)
	return out
}

// meanSD returns the mean and the sample (n-1) standard deviation.
// ok is false when fewer than two values make the SD undefined.
func meanSD(xs []float64) (mean, sd float64, ok bool) {
	if len(xs) < 2 {
		return 0, 0, false
	}
	mean, err := stats.Mean(xs)
	if err != nil {
		return 0, 0, false
	}
	sd, err = stats.StandardDeviationSample(xs)
	if err != nil {
		return 0, 0, false
	}
	return mean, sd, true
}

// identical reports whether a sorted, non-empty slice holds a single distinct value
func identical(sorted []float64) bool {
	return sorted[0] == sorted[len(sorted)-1]
}

// insideWindow keeps values strictly between lo and hi
func insideWindow(xs []float64, lo, hi float64) []float64 {
	kept := make([]float64, 0, len(xs))
	for _, x := range xs {
		if x > lo && x < hi {
			kept = append(kept, x)
		}
	}
	return kept
}

func meanOf(xs []float64) trial.CellValue {
	m, err := stats.Mean(xs)
	if err != nil {
		return trial.Undefined()
	}
	return trial.Defined(m)
}
