package logbook

import (
	"math"

	"github.com/andyapp/andy/internal/model"
)

// Score is the derived summary of a record's criterion scores.
type Score struct {
	// Sum is the arithmetic sum of the scored criteria.
	Sum int

	// Grade is Sum normalized to a 0-10 scale, rounded half-up to one
	// decimal place.
	Grade float64
}

// ComputeScore derives the summary score of a record.
//
// Only criteria with a non-nil score participate. When nothing is
// scored the second return value is false and no Score exists; zero
// is a valid score, so an all-zeros record still yields ok=true with
// Sum 0 and Grade 0.
//
// Pure function: deterministic, no side effects.
func ComputeScore(r model.Record) (Score, bool) {
	scored := 0
	sum := 0
	for _, v := range r.Scores {
		if v == nil {
			continue
		}
		scored++
		sum += *v
	}
	if scored == 0 {
		return Score{}, false
	}

	max := model.MaxScore()
	grade := math.Round(float64(sum)/float64(max)*100) / 10

	return Score{Sum: sum, Grade: grade}, true
}
