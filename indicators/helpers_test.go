package indicators

import (
	"math"
	"time"

	"github.com/sdcoffey/techan"
	"gitlab.com/aoterocom/AOSignals/models"
)

var testStart = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

func testBar(i int, closePrice float64, spread float64, volume float64) models.PriceBar {
	return models.PriceBar{
		Timestamp: testStart.Add(time.Duration(i) * time.Hour),
		Open:      closePrice,
		High:      closePrice + spread,
		Low:       closePrice - spread,
		Close:     closePrice,
		Volume:    volume,
	}
}

// uptrendBars is the five-bar-uptrend shape extended to n bars: closes
// stepping up, highs/lows a fixed spread around the close, flat volume.
func uptrendBars(n int, start float64, step float64) []models.PriceBar {
	bars := make([]models.PriceBar, 0, n)
	for i := 0; i < n; i++ {
		bars = append(bars, testBar(i, start+step*float64(i), 0.0002, 100))
	}
	return bars
}

// wavyBars is a deterministic, non-trivial series exercising every
// indicator family: oscillating price, uneven ranges, varying volume.
func wavyBars(n int) []models.PriceBar {
	bars := make([]models.PriceBar, 0, n)
	for i := 0; i < n; i++ {
		closePrice := 100 + 3*math.Sin(float64(i)/3.0) + 0.2*float64(i%5)
		spread := 0.5 + 0.1*float64(i%3)
		volume := 100 + float64((i*13)%37)
		bars = append(bars, testBar(i, closePrice, spread, volume))
	}
	return bars
}

func toSeries(bars []models.PriceBar) *techan.TimeSeries {
	return models.ToTimeSeries(bars, time.Hour)
}
