// Package rating computes the derived {count, average} pair summarizing a
// course's evaluations. All functions are pure; the average is kept at full
// float64 precision so repeated incremental updates do not compound rounding
// error. Rounding to one decimal is a display concern.
package rating

import (
	"math"

	"github.com/courseval/courseval-backend/internal/model"
)

// Aggregate summarizes a set of evaluations. Rated distinguishes "no
// evaluations yet" from a real average; an unrated course reports no
// rating rather than zero, since the rating domain starts at 1.
type Aggregate struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Rated   bool    `json:"rated"`
}

// Compute derives an aggregate from the full evaluation set. O(n), does not
// mutate its input. An empty set yields {0, 0, unrated} without dividing.
func Compute(evals []model.Evaluation) Aggregate {
	if len(evals) == 0 {
		return Aggregate{}
	}
	sum := 0
	for _, e := range evals {
		sum += e.Rating
	}
	return Aggregate{
		Count:   len(evals),
		Average: float64(sum) / float64(len(evals)),
		Rated:   true,
	}
}

// ApplyInsert returns the aggregate after one more evaluation with the given
// rating, without revisiting the full set.
func ApplyInsert(agg Aggregate, newRating int) Aggregate {
	if agg.Count == 0 {
		return Aggregate{Count: 1, Average: float64(newRating), Rated: true}
	}
	count := agg.Count + 1
	return Aggregate{
		Count:   count,
		Average: (agg.Average*float64(agg.Count) + float64(newRating)) / float64(count),
		Rated:   true,
	}
}

// ApplyRemove returns the aggregate after removing one evaluation with the
// given rating. Removing the last evaluation returns the unrated sentinel.
func ApplyRemove(agg Aggregate, removedRating int) Aggregate {
	count := agg.Count - 1
	if count <= 0 {
		return Aggregate{}
	}
	return Aggregate{
		Count:   count,
		Average: (agg.Average*float64(agg.Count) - float64(removedRating)) / float64(count),
		Rated:   true,
	}
}

// Rounded returns the average rounded to one decimal place for display.
// Returns 0 for an unrated aggregate.
func (a Aggregate) Rounded() float64 {
	if !a.Rated {
		return 0
	}
	return math.Round(a.Average*10) / 10
}
