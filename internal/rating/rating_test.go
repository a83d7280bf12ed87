package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/courseval/courseval-backend/internal/model"
)

func evals(ratings ...int) []model.Evaluation {
	out := make([]model.Evaluation, len(ratings))
	for i, r := range ratings {
		out[i] = model.Evaluation{Rating: r}
	}
	return out
}

func TestCompute_Empty(t *testing.T) {
	agg := Compute(nil)
	assert.Equal(t, 0, agg.Count)
	assert.False(t, agg.Rated)
	assert.Zero(t, agg.Average)

	agg = Compute([]model.Evaluation{})
	assert.False(t, agg.Rated)
}

func TestCompute_MatchesSumOverLen(t *testing.T) {
	cases := [][]int{
		{5},
		{5, 4},
		{1, 2, 3, 4, 5},
		{3, 3, 3},
		{1, 5, 1, 5},
	}
	for _, ratings := range cases {
		agg := Compute(evals(ratings...))
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		assert.Equal(t, len(ratings), agg.Count)
		assert.True(t, agg.Rated)
		assert.InDelta(t, float64(sum)/float64(len(ratings)), agg.Average, 1e-9)
	}
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	in := evals(5, 4, 3)
	_ = Compute(in)
	assert.Equal(t, evals(5, 4, 3), in)
}

func TestApplyInsert_FromEmpty(t *testing.T) {
	agg := ApplyInsert(Aggregate{}, 4)
	assert.Equal(t, 1, agg.Count)
	assert.True(t, agg.Rated)
	assert.InDelta(t, 4.0, agg.Average, 1e-9)
}

func TestApplyInsert_MatchesFullRecompute(t *testing.T) {
	agg := Compute(evals(5, 4))
	agg = ApplyInsert(agg, 3)
	want := Compute(evals(5, 4, 3))
	assert.Equal(t, want.Count, agg.Count)
	assert.InDelta(t, want.Average, agg.Average, 1e-9)
}

func TestApplyRemove_ToEmpty(t *testing.T) {
	agg := ApplyRemove(Aggregate{Count: 1, Average: 5, Rated: true}, 5)
	assert.Equal(t, 0, agg.Count)
	assert.False(t, agg.Rated)
}

func TestInsertThenRemove_RestoresPriorAggregate(t *testing.T) {
	prior := Compute(evals(5, 4, 2, 3))
	for r := 1; r <= 5; r++ {
		agg := ApplyInsert(prior, r)
		agg = ApplyRemove(agg, r)
		assert.Equal(t, prior.Count, agg.Count)
		assert.InDelta(t, prior.Average, agg.Average, 1e-9)
	}
}

func TestRepeatedIncrementalUpdates_StayNearFullRecompute(t *testing.T) {
	agg := Aggregate{}
	ratings := []int{5, 4, 3, 2, 1, 5, 5, 4, 2, 3, 1, 4}
	for _, r := range ratings {
		agg = ApplyInsert(agg, r)
	}
	want := Compute(evals(ratings...))
	assert.Equal(t, want.Count, agg.Count)
	assert.InDelta(t, want.Average, agg.Average, 1e-9)
}

func TestRounded(t *testing.T) {
	assert.Equal(t, 4.5, Compute(evals(5, 4)).Rounded())
	assert.Equal(t, 4.0, Compute(evals(5, 4, 3)).Rounded())
	assert.Equal(t, 3.7, Compute(evals(5, 4, 2)).Rounded())
	assert.Zero(t, Aggregate{}.Rounded())
}
