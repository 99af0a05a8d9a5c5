package query

// Summary holds the figures of a one-pass numeric aggregation. For empty
// input every field is zero: Min, Max, and Average fall back to the 0.0
// sentinel rather than signalling an error.
type Summary struct {
	Sum     float64 `json:"sum"`
	Count   int64   `json:"count"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// Summarize computes sum, count, min, max, and average over the values in
// a single pass.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := Summary{Min: values[0], Max: values[0]}
	for _, v := range values {
		s.Sum += v
		s.Count++
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Average = s.Sum / float64(s.Count)
	return s
}

// Mean returns the arithmetic mean of the values, 0.0 for empty input.
func Mean(values []float64) float64 {
	return Summarize(values).Average
}
