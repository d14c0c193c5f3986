package criterion

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"rttrim/domain/core"
)

// LoadCSV reads anchors from two columns: sample size, multiplier.
// A non-numeric first row is treated as a header. Missing sizes are interpolated.
func LoadCSV(r io.Reader, name string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrInvalidCriterionTable, name, err)
	}

	anchors := make([]Anchor, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: %s line %d needs two columns", core.ErrInvalidCriterionTable, name, i+1)
		}
		sizeStr, multStr := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
		size, sizeErr := strconv.Atoi(sizeStr)
		mult, multErr := strconv.ParseFloat(multStr, 64)
		if sizeErr != nil || multErr != nil {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("%w: %s line %d: %q,%q", core.ErrInvalidCriterionTable, name, i+1, sizeStr, multStr)
		}
		anchors = append(anchors, Anchor{SampleSize: size, Multiplier: mult})
	}

	return FromAnchors(name, anchors)
}

// LoadFile opens path and reads it with LoadCSV
func LoadFile(path, name string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrInvalidCriterionTable, name, err)
	}
	defer f.Close()
	return LoadCSV(f, name)
}

// LoadSet returns the default tables with any non-empty path overriding its table
func LoadSet(nonRecursivePath, modifiedRecursivePath string) (Set, error) {
	set := DefaultSet()
	if nonRecursivePath != "" {
		t, err := LoadFile(nonRecursivePath, "nonRecursive")
		if err != nil {
			return Set{}, err
		}
		set.NonRecursive = t
	}
	if modifiedRecursivePath != "" {
		t, err := LoadFile(modifiedRecursivePath, "modifiedRecursive")
		if err != nil {
			return Set{}, err
		}
		set.ModifiedRecursive = t
	}
	return set, nil
}
