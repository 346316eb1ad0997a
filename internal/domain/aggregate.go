package domain

import "time"

// Trend classifies the weight delta between the first and latest entry of a
// progress series.
type Trend string

const (
	TrendImproving  Trend = "improving"
	TrendRegressing Trend = "regressing"
	TrendUnchanged  Trend = "unchanged"
)

// ProgressPoint is one entry of an exercise's chronological progress series.
type ProgressPoint struct {
	Date   time.Time
	Sets   int
	Reps   int
	Weight float64
	Volume float64
}

// ExerciseProgress is the series for one exercise plus its trend delta.
type ExerciseProgress struct {
	Entries []ProgressPoint
	Delta   float64
	Trend   Trend
}

// Summary bundles the read-side aggregates derived from one ledger snapshot.
type Summary struct {
	PersonalRecords map[string]float64
	Progress        map[string]ExerciseProgress
}

// PersonalRecords returns the maximum weight per exercise across all records.
// Exercise names are open vocabulary and matched exactly, case-sensitive.
func PersonalRecords(records []WorkoutRecord) map[string]float64 {
	out := make(map[string]float64, len(records))
	for _, r := range records {
		if best, ok := out[r.Exercise]; !ok || r.Weight > best {
			out[r.Exercise] = r.Weight
		}
	}
	return out
}

// ProgressSeries groups records by exercise, preserving the chronological
// order of the input. Records must be ordered ascending by (recorded_at, seq).
func ProgressSeries(records []WorkoutRecord) map[string][]ProgressPoint {
	out := make(map[string][]ProgressPoint)
	for _, r := range records {
		out[r.Exercise] = append(out[r.Exercise], ProgressPoint{
			Date:   r.RecordedAt,
			Sets:   r.Sets,
			Reps:   r.Reps,
			Weight: r.Weight,
			Volume: r.Volume(),
		})
	}
	return out
}

// ProgressDelta computes latest.weight - first.weight for a series and
// classifies it. A single-entry series yields delta 0, unchanged.
func ProgressDelta(series []ProgressPoint) (float64, Trend) {
	if len(series) == 0 {
		return 0, TrendUnchanged
	}
	delta := series[len(series)-1].Weight - series[0].Weight
	switch {
	case delta > 0:
		return delta, TrendImproving
	case delta < 0:
		return delta, TrendRegressing
	default:
		return 0, TrendUnchanged
	}
}

// Summarize derives all aggregates from one ascending ledger snapshot. It is
// a pure function: the same snapshot always yields identical output.
func Summarize(records []WorkoutRecord) Summary {
	series := ProgressSeries(records)
	progress := make(map[string]ExerciseProgress, len(series))
	for exercise, entries := range series {
		delta, trend := ProgressDelta(entries)
		progress[exercise] = ExerciseProgress{Entries: entries, Delta: delta, Trend: trend}
	}
	return Summary{
		PersonalRecords: PersonalRecords(records),
		Progress:        progress,
	}
}
