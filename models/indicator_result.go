package models

// IndicatorResult is the output of one indicator for one evaluation
// point. Produced fresh on every evaluation, never mutated afterwards.
type IndicatorResult struct {
	Indicator  string
	Signal     SignalLevel
	Confidence float64
	Value      float64
	Values     map[string]float64
	Metadata   map[string]string
}
