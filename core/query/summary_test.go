package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{10, 20, 30})

	assert.Equal(t, 60.0, s.Sum)
	assert.Equal(t, int64(3), s.Count)
	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 30.0, s.Max)
	assert.Equal(t, 20.0, s.Average)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, Summary{}, s, "empty input yields the zero sentinel, not an error")
}

func TestSummarizeSingle(t *testing.T) {
	s := Summarize([]float64{42})
	assert.Equal(t, Summary{Sum: 42, Count: 1, Min: 42, Max: 42, Average: 42}, s)
}

func TestSummarizeConsistency(t *testing.T) {
	values := []float64{3.5, 1.25, 9, 4, 2.75}
	s := Summarize(values)

	assert.InDelta(t, s.Sum, float64(s.Count)*s.Average, 1e-9)
	assert.LessOrEqual(t, s.Min, s.Average)
	assert.LessOrEqual(t, s.Average, s.Max)
}

func TestMean(t *testing.T) {
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Equal(t, 0.0, Mean(nil), "empty mean falls back to zero")
}
