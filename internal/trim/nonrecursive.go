package trim

import (
	"rttrim/domain/trial"
	"rttrim/internal/criterion"
)

// NonRecursiveCell trims in one pass: RTs outside mean ± k·SD are dropped,
// where k comes from table for the cell's sample size. Both bounds are strict.
//
// The result is undefined for an empty cell, a single trial (no sample SD),
// and identical RTs (zero variance: the window collapses to a point that
// excludes everything). Identity is tested on the values, not on the computed SD.
func NonRecursiveCell(table *criterion.Table) CellTrimmer {
	return func(rts []float64) trial.CellValue {
		if len(rts) == 0 {
			return trial.Undefined()
		}
		k, err := table.Multiplier(len(rts))
		if err != nil {
			return trial.Undefined()
		}

		data := sortedCopy(rts)
		if identical(data) {
			return trial.Undefined()
		}
		mean, sd, ok := meanSD(data)
		if !ok {
			return trial.Undefined()
		}

		return meanOf(insideWindow(data, mean-k*sd, mean+k*sd))
	}
}
