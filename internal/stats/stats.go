// Package stats computes aggregate workout statistics. Calculators
// are pure functions over workout slices; the service layer fetches
// data and delegates.
package stats

import (
	"math"
	"time"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/workout"
)

// Summary is the overall aggregate across all workouts.
type Summary struct {
	TotalWorkouts        int     `json:"total_workouts"`
	TotalReps            int     `json:"total_reps"`
	TotalDurationSeconds int     `json:"total_duration_seconds"`
	TotalCalories        float64 `json:"total_calories"`
	AverageReps          float64 `json:"average_reps_per_workout"`
	AverageDuration      float64 `json:"average_duration_per_workout"`
}

// Summarize computes the overall summary. An empty slice yields the
// zero summary.
func Summarize(ws []workout.Workout) Summary {
	if len(ws) == 0 {
		return Summary{}
	}
	s := Summary{TotalWorkouts: len(ws)}
	for _, w := range ws {
		s.TotalReps += w.Reps
		s.TotalDurationSeconds += w.DurationSeconds
		if w.CaloriesBurned != nil {
			s.TotalCalories += *w.CaloriesBurned
		}
	}
	n := float64(s.TotalWorkouts)
	s.AverageReps = round2(float64(s.TotalReps) / n)
	s.AverageDuration = round2(float64(s.TotalDurationSeconds) / n)
	return s
}

// ExerciseSummary is the aggregate for a single exercise type,
// including personal records.
type ExerciseSummary struct {
	ExerciseType         workout.Type `json:"exercise_type"`
	TotalWorkouts        int          `json:"total_workouts"`
	TotalReps            int          `json:"total_reps"`
	TotalDurationSeconds int          `json:"total_duration_seconds"`
	TotalCalories        float64      `json:"total_calories"`
	AverageReps          float64      `json:"average_reps"`
	RecordReps           *int         `json:"personal_record_reps"`
	RecordDuration       *int         `json:"personal_record_duration"`
}

// SummarizeExercise computes per-type aggregates over an
// already-filtered slice.
func SummarizeExercise(ws []workout.Workout, t workout.Type) ExerciseSummary {
	s := ExerciseSummary{ExerciseType: t}
	if len(ws) == 0 {
		return s
	}
	maxReps, maxDuration := 0, 0
	for _, w := range ws {
		s.TotalWorkouts++
		s.TotalReps += w.Reps
		s.TotalDurationSeconds += w.DurationSeconds
		if w.CaloriesBurned != nil {
			s.TotalCalories += *w.CaloriesBurned
		}
		if w.Reps > maxReps {
			maxReps = w.Reps
		}
		if w.DurationSeconds > maxDuration {
			maxDuration = w.DurationSeconds
		}
	}
	s.AverageReps = round2(float64(s.TotalReps) / float64(s.TotalWorkouts))
	s.RecordReps = &maxReps
	s.RecordDuration = &maxDuration
	return s
}

// BreakdownEntry is one exercise type's share of all workouts.
type BreakdownEntry struct {
	ExerciseType workout.Type `json:"exercise_type"`
	Count        int          `json:"count"`
	Percentage   float64      `json:"percentage"`
}

// Breakdown groups workouts by exercise type with percentages.
// Entries follow the declaration order of the known types.
func Breakdown(ws []workout.Workout) []BreakdownEntry {
	if len(ws) == 0 {
		return []BreakdownEntry{}
	}
	counts := map[workout.Type]int{}
	for _, w := range ws {
		counts[w.Type]++
	}
	total := float64(len(ws))
	var out []BreakdownEntry
	for _, t := range []workout.Type{workout.TypePushUp, workout.TypeJumpRope} {
		if c, ok := counts[t]; ok {
			out = append(out, BreakdownEntry{
				ExerciseType: t,
				Count:        c,
				Percentage:   round2(float64(c) / total * 100),
			})
		}
	}
	return out
}

// DayStats is one day of the weekly report.
type DayStats struct {
	Date                 string  `json:"date"` // YYYY-MM-DD
	TotalWorkouts        int     `json:"total_workouts"`
	TotalReps            int     `json:"total_reps"`
	TotalDurationSeconds int     `json:"total_duration_seconds"`
	TotalCalories        float64 `json:"total_calories"`
}

// WeeklyReport covers the 7 days ending at EndDate, one bucket per
// day, empty days included.
type WeeklyReport struct {
	StartDate            string     `json:"start_date"`
	EndDate              string     `json:"end_date"`
	TotalWorkouts        int        `json:"total_workouts"`
	TotalReps            int        `json:"total_reps"`
	TotalDurationSeconds int        `json:"total_duration_seconds"`
	TotalCalories        float64    `json:"total_calories"`
	DailyBreakdown       []DayStats `json:"daily_breakdown"`
}

const dateLayout = "2006-01-02"

// Weekly buckets workouts into the 7 calendar days ending at end
// (inclusive). Workouts outside the window are ignored.
func Weekly(ws []workout.Workout, end time.Time) WeeklyReport {
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	start := end.AddDate(0, 0, -6)

	report := WeeklyReport{
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
	}

	byDay := map[string][]workout.Workout{}
	for _, w := range ws {
		day := w.CreatedAt.Format(dateLayout)
		if day < report.StartDate || day > report.EndDate {
			continue
		}
		byDay[day] = append(byDay[day], w)
		report.TotalWorkouts++
		report.TotalReps += w.Reps
		report.TotalDurationSeconds += w.DurationSeconds
		if w.CaloriesBurned != nil {
			report.TotalCalories += *w.CaloriesBurned
		}
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		day := DayStats{Date: key}
		for _, w := range byDay[key] {
			day.TotalWorkouts++
			day.TotalReps += w.Reps
			day.TotalDurationSeconds += w.DurationSeconds
			if w.CaloriesBurned != nil {
				day.TotalCalories += *w.CaloriesBurned
			}
		}
		report.DailyBreakdown = append(report.DailyBreakdown, day)
	}
	return report
}

// Record is a personal best with the date it was set.
type Record struct {
	ExerciseType    workout.Type `json:"exercise_type"`
	MaxReps         int          `json:"max_reps"`
	MaxRepsDate     string       `json:"max_reps_date"`
	MaxDuration     int          `json:"max_duration_seconds"`
	MaxDurationDate string       `json:"max_duration_date"`
}

// PersonalRecords finds the best reps and duration per exercise
// type, with the dates they were achieved.
func PersonalRecords(ws []workout.Workout) []Record {
	byType := map[workout.Type]*Record{}
	for _, w := range ws {
		r, ok := byType[w.Type]
		if !ok {
			r = &Record{ExerciseType: w.Type}
			byType[w.Type] = r
		}
		if w.Reps > r.MaxReps {
			r.MaxReps = w.Reps
			r.MaxRepsDate = w.CreatedAt.Format(dateLayout)
		}
		if w.DurationSeconds > r.MaxDuration {
			r.MaxDuration = w.DurationSeconds
			r.MaxDurationDate = w.CreatedAt.Format(dateLayout)
		}
	}
	out := []Record{}
	for _, t := range []workout.Type{workout.TypePushUp, workout.TypeJumpRope} {
		if r, ok := byType[t]; ok {
			out = append(out, *r)
		}
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
