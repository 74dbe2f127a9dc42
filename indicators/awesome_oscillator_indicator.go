package indicators

import (
	"math"

	"github.com/sdcoffey/techan"
	"gitlab.com/aoterocom/AOSignals/helpers"
	"gitlab.com/aoterocom/AOSignals/models"
)

// AwesomeOscillatorIndicator is the momentum family: the difference of
// a short and a long simple average of the median price. Zero-line
// crosses are the strong signals; a dip-then-recovery saucer below zero
// (or its mirror above) is the weak one.
type AwesomeOscillatorIndicator struct {
	ShortPeriod int
	LongPeriod  int
}

func NewAwesomeOscillatorIndicator() *AwesomeOscillatorIndicator {
	return &AwesomeOscillatorIndicator{ShortPeriod: 5, LongPeriod: 34}
}

func (a *AwesomeOscillatorIndicator) Name() string {
	return "awesome_oscillator"
}

func (a *AwesomeOscillatorIndicator) RequiredLookback() int {
	// three oscillator values are inspected, each needing a full long window
	return a.LongPeriod + 3
}

func (a *AwesomeOscillatorIndicator) oscillator(series *techan.TimeSeries) func(index int) float64 {
	median := NewMedianPriceIndicator(series)
	short := techan.NewSimpleMovingAverage(median, a.ShortPeriod)
	long := techan.NewSimpleMovingAverage(median, a.LongPeriod)
	return func(index int) float64 {
		return short.Calculate(index).Float() - long.Calculate(index).Float()
	}
}

func (a *AwesomeOscillatorIndicator) Evaluate(series *techan.TimeSeries, symbol string) (*models.IndicatorResult, error) {
	if !windowIsClean(series, a.RequiredLookback()) {
		return nil, nil
	}

	lastIndex := series.LastIndex()
	oscillator := a.oscillator(series)
	current := oscillator(lastIndex)
	previous := oscillator(lastIndex - 1)
	beforePrevious := oscillator(lastIndex - 2)

	signal := models.SignalNeutral
	switch {
	case previous <= 0 && current > 0:
		signal = models.SignalStrongBuy
	case previous >= 0 && current < 0:
		signal = models.SignalStrongSell
	case current < 0 && previous < beforePrevious && current > previous:
		signal = models.SignalBuy
	case current > 0 && previous > beforePrevious && current < previous:
		signal = models.SignalSell
	}

	// Magnitude against the oscillator's own recent average magnitude.
	// The window starts no earlier than the first fully-formed long SMA.
	start := lastIndex - 9
	if start < a.LongPeriod-1 {
		start = a.LongPeriod - 1
	}
	magnitudes := make([]float64, 0, 10)
	for i := start; i <= lastIndex; i++ {
		magnitudes = append(magnitudes, math.Abs(oscillator(i)))
	}
	confidence := 0.0
	if avgMagnitude := helpers.Mean(magnitudes); avgMagnitude > 0 {
		confidence = helpers.Clip(math.Abs(current)/(2*avgMagnitude), 0, 1)
	}

	return &models.IndicatorResult{
		Indicator:  a.Name(),
		Signal:     signal,
		Confidence: confidence,
		Value:      current,
		Values: map[string]float64{
			"ao":      current,
			"ao_prev": previous,
		},
		Metadata: map[string]string{"symbol": symbol},
	}, nil
}
