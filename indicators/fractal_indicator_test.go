package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/aoterocom/AOSignals/models"
)

// channelBars builds a flat series with one swing high at peakIndex and
// one swing low at troughIndex, then a final bar at lastClose.
func channelBars(n int, peakIndex int, troughIndex int, lastClose float64) []models.PriceBar {
	bars := make([]models.PriceBar, 0, n)
	for i := 0; i < n; i++ {
		b := testBar(i, 1.00, 0.001, 100)
		if i == peakIndex {
			b.High = 1.010
		}
		if i == troughIndex {
			b.Low = 0.990
		}
		bars = append(bars, b)
	}
	last := testBar(n-1, lastClose, 0.0005, 100)
	bars[n-1] = last
	return bars
}

func TestFractalBreakoutAboveSwingHigh(t *testing.T) {
	indicator := NewFractalIndicator()
	bars := channelBars(20, 8, 11, 1.02)

	result, err := indicator.Evaluate(toSeries(bars), "EURUSD")
	assert.Nil(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, models.SignalStrongBuy, result.Signal)
	assert.Equal(t, 1.010, result.Values["up_fractal"])
}

func TestFractalBreakdownBelowSwingLow(t *testing.T) {
	indicator := NewFractalIndicator()
	bars := channelBars(20, 8, 11, 0.985)

	result, err := indicator.Evaluate(toSeries(bars), "EURUSD")
	assert.Nil(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, models.SignalStrongSell, result.Signal)
	assert.Equal(t, 0.990, result.Values["down_fractal"])
}

func TestFractalMidChannelIsNeutral(t *testing.T) {
	indicator := NewFractalIndicator()
	bars := channelBars(20, 8, 11, 1.00)

	result, err := indicator.Evaluate(toSeries(bars), "EURUSD")
	assert.Nil(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, models.SignalNeutral, result.Signal)
	// 1.00 sits exactly midway between 0.990 and 1.010
	assert.InDelta(t, 0.5, result.Value, 0.0001)
}

func TestFractalUpperChannelLeansBuy(t *testing.T) {
	indicator := NewFractalIndicator()
	bars := channelBars(20, 8, 11, 1.007)

	result, err := indicator.Evaluate(toSeries(bars), "EURUSD")
	assert.Nil(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, models.SignalBuy, result.Signal)
}
