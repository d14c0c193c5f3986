package trim

import "rttrim/domain/trial"

// HybridCell averages two trimmers, normally the non-recursive and the
// modified-recursive ones. If either side is undefined the hybrid is undefined;
// one side is never substituted for the average.
func HybridCell(nonRecursive, modifiedRecursive CellTrimmer) CellTrimmer {
	return func(rts []float64) trial.CellValue {
		a := nonRecursive(rts)
		if !a.Defined {
			return trial.Undefined()
		}
		b := modifiedRecursive(rts)
		if !b.Defined {
			return trial.Undefined()
		}
		return trial.Defined((a.Value + b.Value) / 2)
	}
}
