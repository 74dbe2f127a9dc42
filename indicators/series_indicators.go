package indicators

import (
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

type medianPriceIndicator struct {
	series *techan.TimeSeries
}

// NewMedianPriceIndicator returns (high+low)/2 per candle, the base
// series for the trend and momentum families.
func NewMedianPriceIndicator(series *techan.TimeSeries) techan.Indicator {
	return medianPriceIndicator{series: series}
}

func (m medianPriceIndicator) Calculate(index int) big.Decimal {
	candle := m.series.Candles[index]
	return big.NewDecimal((candle.MaxPrice.Float() + candle.MinPrice.Float()) / 2.0)
}

type smoothedMovingAverageIndicator struct {
	indicator techan.Indicator
	window    int
}

// NewSmoothedMovingAverage is the Wilder-style smoothed average: seeded
// with the plain average of the first window values, then
// value = (prev*(window-1) + current) / window.
func NewSmoothedMovingAverage(indicator techan.Indicator, window int) techan.Indicator {
	return smoothedMovingAverageIndicator{indicator: indicator, window: window}
}

func (s smoothedMovingAverageIndicator) Calculate(index int) big.Decimal {
	if index < s.window-1 {
		return big.ZERO
	}

	seed := 0.0
	for i := 0; i < s.window; i++ {
		seed += s.indicator.Calculate(i).Float()
	}
	value := seed / float64(s.window)
	for i := s.window; i <= index; i++ {
		value = (value*float64(s.window-1) + s.indicator.Calculate(i).Float()) / float64(s.window)
	}
	return big.NewDecimal(value)
}

type displacedIndicator struct {
	indicator techan.Indicator
	shift     int
}

// NewDisplacedIndicator shifts another indicator forward in time: the
// value at index is the wrapped value at index-shift.
func NewDisplacedIndicator(indicator techan.Indicator, shift int) techan.Indicator {
	return displacedIndicator{indicator: indicator, shift: shift}
}

func (d displacedIndicator) Calculate(index int) big.Decimal {
	if index-d.shift < 0 {
		return big.ZERO
	}
	return d.indicator.Calculate(index - d.shift)
}
