package trim

import (
	"math"
	"strconv"
	"strings"

	"rttrim/domain/core"
	"rttrim/domain/trial"
)

// extractTrials converts every record into a typed trial. Any unparsable value
// fails the whole call so nothing is partially computed.
func extractTrials(data *trial.Dataset, opts Options) ([]trial.Trial, error) {
	trials := make([]trial.Trial, 0, len(data.Records))
	for i, rec := range data.Records {
		row := i + 1

		participant, err := requireValue(rec, row, opts.ParticipantField)
		if err != nil {
			return nil, err
		}
		condition, err := requireValue(rec, row, opts.ConditionField)
		if err != nil {
			return nil, err
		}
		rtStr, err := requireValue(rec, row, opts.RTField)
		if err != nil {
			return nil, err
		}
		rt, err := strconv.ParseFloat(rtStr, 64)
		if err != nil {
			return nil, core.NewMalformedTrialError(row, opts.RTField, rtStr, err)
		}
		if math.IsNaN(rt) || math.IsInf(rt, 0) {
			return nil, core.NewMalformedTrialError(row, opts.RTField, rtStr, nil)
		}

		correct := true
		if opts.OmitErrors {
			accStr, err := requireValue(rec, row, opts.AccuracyField)
			if err != nil {
				return nil, err
			}
			correct, err = parseAccuracy(accStr)
			if err != nil {
				return nil, core.NewMalformedTrialError(row, opts.AccuracyField, accStr, err)
			}
		}

		trials = append(trials, trial.Trial{
			Participant: participant,
			Condition:   condition,
			RT:          rt,
			Correct:     correct,
		})
	}
	return trials, nil
}

func requireValue(rec trial.Record, row int, field string) (string, error) {
	v, ok := rec[field]
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", core.NewMalformedTrialError(row, field, v, nil)
	}
	return v, nil
}

// parseAccuracy accepts numeric codes (correct only when exactly 1) and boolean words
func parseAccuracy(s string) (bool, error) {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) {
			return false, strconv.ErrSyntax
		}
		return f == 1, nil
	}
	return strconv.ParseBool(s)
}

// enumerate returns distinct participants and conditions in first-appearance order
func enumerate(trials []trial.Trial) (participants, conditions []string, pIndex, cIndex map[string]int) {
	pIndex = make(map[string]int)
	cIndex = make(map[string]int)
	for _, t := range trials {
		if _, ok := pIndex[t.Participant]; !ok {
			pIndex[t.Participant] = len(participants)
			participants = append(participants, t.Participant)
		}
		if _, ok := cIndex[t.Condition]; !ok {
			cIndex[t.Condition] = len(conditions)
			conditions = append(conditions, t.Condition)
		}
	}
	return participants, conditions, pIndex, cIndex
}
