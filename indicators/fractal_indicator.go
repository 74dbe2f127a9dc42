package indicators

import (
	"math"

	"github.com/sdcoffey/techan"
	"gitlab.com/aoterocom/AOSignals/helpers"
	"gitlab.com/aoterocom/AOSignals/models"
)

// FractalIndicator is the swing-point family. A bar is an up fractal
// when its high is the strict maximum of a centered odd-length window,
// symmetric for down fractals. Price breaking the latest confirmed
// fractal is the strong signal; otherwise the position between the two
// nearest fractals is interpolated.
type FractalIndicator struct {
	// Window is the full centered window length; must be odd.
	Window int
}

func NewFractalIndicator() *FractalIndicator {
	return &FractalIndicator{Window: 5}
}

func (f *FractalIndicator) Name() string {
	return "fractal"
}

func (f *FractalIndicator) RequiredLookback() int {
	return f.Window * 2
}

func (f *FractalIndicator) wing() int {
	return f.Window / 2
}

// latestFractals returns the most recent confirmed up and down fractal
// levels. A fractal needs wing bars on both sides, so the last wing
// candles can never hold one.
func (f *FractalIndicator) latestFractals(series *techan.TimeSeries) (up float64, upFound bool, down float64, downFound bool) {
	wing := f.wing()
	lastIndex := series.LastIndex()
	for i := lastIndex - wing; i >= wing; i-- {
		candle := series.Candles[i]
		if !upFound {
			isUp := true
			for j := i - wing; j <= i+wing && isUp; j++ {
				if j != i && series.Candles[j].MaxPrice.Float() >= candle.MaxPrice.Float() {
					isUp = false
				}
			}
			if isUp {
				up = candle.MaxPrice.Float()
				upFound = true
			}
		}
		if !downFound {
			isDown := true
			for j := i - wing; j <= i+wing && isDown; j++ {
				if j != i && series.Candles[j].MinPrice.Float() <= candle.MinPrice.Float() {
					isDown = false
				}
			}
			if isDown {
				down = candle.MinPrice.Float()
				downFound = true
			}
		}
		if upFound && downFound {
			return
		}
	}
	return
}

func (f *FractalIndicator) Evaluate(series *techan.TimeSeries, symbol string) (*models.IndicatorResult, error) {
	if !windowIsClean(series, f.RequiredLookback()) {
		return nil, nil
	}

	closePrice := series.LastCandle().ClosePrice.Float()
	up, upFound, down, downFound := f.latestFractals(series)
	avgRange := averageBarRange(series, 10)

	signal := models.SignalNeutral
	confidence := 0.1
	value := 0.0
	switch {
	case upFound && closePrice > up:
		signal = models.SignalStrongBuy
		value = closePrice - up
		if avgRange > 0 {
			confidence = helpers.Clip(0.5+(closePrice-up)/(2*avgRange), 0, 1)
		}
	case downFound && closePrice < down:
		signal = models.SignalStrongSell
		value = closePrice - down
		if avgRange > 0 {
			confidence = helpers.Clip(0.5+(down-closePrice)/(2*avgRange), 0, 1)
		}
	case upFound && downFound && up > down:
		// inside the swing channel: interpolate
		position := (closePrice - down) / (up - down)
		value = position
		if position >= 0.8 {
			signal = models.SignalBuy
		} else if position <= 0.2 {
			signal = models.SignalSell
		}
		confidence = helpers.Clip(math.Abs(position-0.5)*1.2, 0, 1)
	}

	values := map[string]float64{}
	if upFound {
		values["up_fractal"] = up
	}
	if downFound {
		values["down_fractal"] = down
	}

	return &models.IndicatorResult{
		Indicator:  f.Name(),
		Signal:     signal,
		Confidence: confidence,
		Value:      value,
		Values:     values,
		Metadata:   map[string]string{"symbol": symbol},
	}, nil
}
