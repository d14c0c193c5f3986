package trim

import (
	"rttrim/domain/trial"
	"rttrim/internal/criterion"
)

// minRecursiveSample is the smallest sample the recursive procedure still trims
const minRecursiveSample = 3

// ModifiedRecursiveCell trims iteratively. On each pass the largest RT is set
// aside, the window mean ± k·SD is computed from the remaining RTs with k taken
// from table for the current sample size, and every RT outside the window is
// removed. Passes repeat until nothing is removed or fewer than three RTs remain.
//
// When the remaining RTs are all identical (zero variance) only RTs equal to
// that value survive the pass.
func ModifiedRecursiveCell(table *criterion.Table) CellTrimmer {
	return func(rts []float64) trial.CellValue {
		if len(rts) == 0 {
			return trial.Undefined()
		}

		data := sortedCopy(rts)
		for len(data) >= minRecursiveSample {
			k, err := table.Multiplier(len(data))
			if err != nil {
				return trial.Undefined()
			}

			rest := data[:len(data)-1]
			var kept []float64
			if identical(rest) {
				kept = equalTo(data, rest[0])
			} else {
				mean, sd, ok := meanSD(rest)
				if !ok {
					break
				}
				kept = insideWindow(data, mean-k*sd, mean+k*sd)
			}

			if len(kept) == len(data) {
				break
			}
			data = kept
		}

		return meanOf(data)
	}
}

func equalTo(xs []float64, v float64) []float64 {
	kept := make([]float64, 0, len(xs))
	for _, x := range xs {
		if x == v {
			kept = append(kept, x)
		}
	}
	return kept
}
