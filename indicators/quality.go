package indicators

import (
	"math"

	"github.com/sdcoffey/techan"
)

// windowIsClean reports whether the trailing lookback candles exist and
// carry only finite values. Indicators answer "no opinion" when it
// fails instead of erroring.
func windowIsClean(series *techan.TimeSeries, lookback int) bool {
	if series == nil || len(series.Candles) < lookback {
		return false
	}
	for i := len(series.Candles) - lookback; i < len(series.Candles); i++ {
		candle := series.Candles[i]
		for _, v := range []float64{
			candle.OpenPrice.Float(),
			candle.MaxPrice.Float(),
			candle.MinPrice.Float(),
			candle.ClosePrice.Float(),
			candle.Volume.Float(),
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// averageBarRange is the mean high-low range of the trailing n candles,
// used to normalize threshold distances into confidences.
func averageBarRange(series *techan.TimeSeries, n int) float64 {
	last := len(series.Candles) - 1
	first := last - n + 1
	if first < 0 {
		first = 0
	}
	total := 0.0
	count := 0
	for i := first; i <= last; i++ {
		candle := series.Candles[i]
		total += candle.MaxPrice.Float() - candle.MinPrice.Float()
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}
