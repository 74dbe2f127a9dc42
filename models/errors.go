package models

import "fmt"

// InsufficientDataError means fewer bars were supplied than the enabled
// indicators need. The caller can recover by waiting for more data.
type InsufficientDataError struct {
	Required int
	Got      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: need %d bars, got %d", e.Required, e.Got)
}

// InvalidInputError means the bar data itself is malformed (non-finite
// values, out-of-order timestamps). Not retryable.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// IndicatorEvaluationError wraps a failure inside a single indicator.
// The aggregation engine logs it and continues with the remaining ones.
type IndicatorEvaluationError struct {
	Indicator string
	Err       error
}

func (e *IndicatorEvaluationError) Error() string {
	return fmt.Sprintf("indicator %s evaluation failed: %v", e.Indicator, e.Err)
}

func (e *IndicatorEvaluationError) Unwrap() error {
	return e.Err
}
