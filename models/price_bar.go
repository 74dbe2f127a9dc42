package models

import (
	"fmt"
	"math"
	"time"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

// PriceBar is one OHLCV sample for a fixed time interval. Immutable once
// produced by the data source.
type PriceBar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Validate checks a single bar for non-finite fields and a broken
// high/low relationship.
func (b PriceBar) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"open", b.Open},
		{"high", b.High},
		{"low", b.Low},
		{"close", b.Close},
		{"volume", b.Volume},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &InvalidInputError{Reason: fmt.Sprintf("bar at %s has non-finite %s", b.Timestamp, f.name)}
		}
	}
	if b.High < b.Low {
		return &InvalidInputError{Reason: fmt.Sprintf("bar at %s has high below low", b.Timestamp)}
	}
	return nil
}

// ValidateBars checks a full series: at least one bar, every bar valid,
// timestamps strictly increasing.
func ValidateBars(bars []PriceBar) error {
	if len(bars) == 0 {
		return &InvalidInputError{Reason: "empty bar series"}
	}
	for i, bar := range bars {
		if err := bar.Validate(); err != nil {
			return err
		}
		if i > 0 && !bars[i-1].Timestamp.Before(bar.Timestamp) {
			return &InvalidInputError{Reason: fmt.Sprintf("timestamps not strictly increasing at index %d", i)}
		}
	}
	return nil
}

// ToTimeSeries converts a bar slice into a techan series. period is the
// bar interval and only affects the candle time bounds.
func ToTimeSeries(bars []PriceBar, period time.Duration) *techan.TimeSeries {
	series := techan.NewTimeSeries()
	for _, bar := range bars {
		candle := techan.NewCandle(techan.TimePeriod{
			Start: bar.Timestamp,
			End:   bar.Timestamp.Add(period),
		})
		candle.OpenPrice = big.NewDecimal(bar.Open)
		candle.MaxPrice = big.NewDecimal(bar.High)
		candle.MinPrice = big.NewDecimal(bar.Low)
		candle.ClosePrice = big.NewDecimal(bar.Close)
		candle.Volume = big.NewDecimal(bar.Volume)
		series.AddCandle(candle)
	}
	return series
}
