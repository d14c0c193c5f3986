package trial

import (
	"encoding/json"
	"strconv"

	"rttrim/domain/core"
)

// Default field names for trial-level data
const (
	DefaultParticipantField = "participant"
	DefaultConditionField   = "condition"
	DefaultRTField          = "rt"
	DefaultAccuracyField    = "accuracy"
)

// UndefinedLabel is how an undefined cell is rendered in text and file output
const UndefinedLabel = "NA"

// Record is one raw row addressable by field name
type Record map[string]string

// Dataset is the ordered trial-level input table
type Dataset struct {
	Headers []string `json:"headers"`
	Records []Record `json:"records"`
}

// HasHeader reports whether name is one of the dataset columns
func (d *Dataset) HasHeader(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Trial is the typed view of a record after field extraction
type Trial struct {
	Participant string
	Condition   string
	RT          float64
	Correct     bool
}

// NewDataset builds a dataset with the default field names from typed trials.
// Accuracy is written as 1 or 0.
func NewDataset(trials []Trial) *Dataset {
	ds := &Dataset{
		Headers: []string{DefaultParticipantField, DefaultConditionField, DefaultRTField, DefaultAccuracyField},
		Records: make([]Record, 0, len(trials)),
	}
	for _, t := range trials {
		acc := "0"
		if t.Correct {
			acc = "1"
		}
		ds.Records = append(ds.Records, Record{
			DefaultParticipantField: t.Participant,
			DefaultConditionField:   t.Condition,
			DefaultRTField:          strconv.FormatFloat(t.RT, 'f', -1, 64),
			DefaultAccuracyField:    acc,
		})
	}
	return ds
}

// CellValue is a trimmed mean that may be undefined.
// The zero value is undefined, so an unfilled grid slot never reads as 0 ms.
type CellValue struct {
	Value   float64
	Defined bool
}

// Defined wraps a computed mean
func Defined(v float64) CellValue {
	return CellValue{Value: v, Defined: true}
}

// Undefined marks a cell with no surviving trials
func Undefined() CellValue {
	return CellValue{}
}

// Get returns the value and whether it is defined
func (c CellValue) Get() (float64, bool) {
	return c.Value, c.Defined
}

// String formats the value, or NA when undefined
func (c CellValue) String() string {
	if !c.Defined {
		return UndefinedLabel
	}
	return strconv.FormatFloat(c.Value, 'f', -1, 64)
}

// Format renders the value with a fixed number of decimals
func (c CellValue) Format(digits int) string {
	if !c.Defined {
		return UndefinedLabel
	}
	return strconv.FormatFloat(c.Value, 'f', digits, 64)
}

// MarshalJSON encodes undefined cells as null
func (c CellValue) MarshalJSON() ([]byte, error) {
	if !c.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// UnmarshalJSON accepts a number or null
func (c *CellValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Undefined()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Defined(v)
	return nil
}

// Method names a trimming procedure
type Method string

const (
	MethodNonRecursive      Method = "nonRecursive"
	MethodModifiedRecursive Method = "modifiedRecursive"
	MethodHybridRecursive   Method = "hybridRecursive"
)

// ParseMethod maps CLI and config spellings onto a Method
func ParseMethod(s string) (Method, error) {
	switch s {
	case "nonRecursive", "nonrecursive", "non-recursive":
		return MethodNonRecursive, nil
	case "modifiedRecursive", "modified", "modified-recursive":
		return MethodModifiedRecursive, nil
	case "hybridRecursive", "hybrid", "hybrid-recursive":
		return MethodHybridRecursive, nil
	}
	return "", core.ErrUnknownTrimmingMethod
}

// FilterSummary counts what happened to trials before trimming.
// ErrorTrials is only counted when errors are omitted; BelowMinRT counts
// trials at or below the floor that survived error filtering.
type FilterSummary struct {
	TotalTrials    int `json:"total_trials"`
	ErrorTrials    int `json:"error_trials"`
	BelowMinRT     int `json:"below_min_rt"`
	EligibleTrials int `json:"eligible_trials"`
	UndefinedCells int `json:"undefined_cells"`
}

// ResultTable is the wide participant × condition table of trimmed means
type ResultTable struct {
	RunID        core.RunID    `json:"run_id"`
	Method       Method        `json:"method"`
	Digits       int           `json:"digits"`
	Participants []string      `json:"participants"`
	Conditions   []string      `json:"conditions"`
	Cells        [][]CellValue `json:"cells"` // [participant][condition]
	Summary      FilterSummary `json:"summary"`
}

// NewResultTable allocates an all-undefined grid
func NewResultTable(method Method, participants, conditions []string, digits int) *ResultTable {
	cells := make([][]CellValue, len(participants))
	for i := range cells {
		cells[i] = make([]CellValue, len(conditions))
	}
	return &ResultTable{
		RunID:        core.NewRunID(),
		Method:       method,
		Digits:       digits,
		Participants: participants,
		Conditions:   conditions,
		Cells:        cells,
	}
}

// Get looks up a cell by identifiers. ok is false when either identifier is unknown.
func (t *ResultTable) Get(participant, condition string) (CellValue, bool) {
	p := indexOf(t.Participants, participant)
	c := indexOf(t.Conditions, condition)
	if p < 0 || c < 0 {
		return CellValue{}, false
	}
	return t.Cells[p][c], true
}

// Row returns the cells of one participant in condition order
func (t *ResultTable) Row(participant string) ([]CellValue, bool) {
	p := indexOf(t.Participants, participant)
	if p < 0 {
		return nil, false
	}
	return t.Cells[p], true
}

// Shape returns the number of rows and columns
func (t *ResultTable) Shape() (rows, cols int) {
	return len(t.Participants), len(t.Conditions)
}

func indexOf(xs []string, x string) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}
