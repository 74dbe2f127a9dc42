package indicators

import (
	"math"

	"github.com/sdcoffey/techan"
	"gitlab.com/aoterocom/AOSignals/helpers"
	"gitlab.com/aoterocom/AOSignals/models"
)

// MarketFacilitationIndicator is the volume-efficiency family: the
// (high-low)/volume ratio classified by the pair of booleans
// {ratio increased, volume increased}, then crossed with the bar's
// price direction.
type MarketFacilitationIndicator struct{}

func NewMarketFacilitationIndicator() *MarketFacilitationIndicator {
	return &MarketFacilitationIndicator{}
}

func (m *MarketFacilitationIndicator) Name() string {
	return "market_facilitation"
}

func (m *MarketFacilitationIndicator) RequiredLookback() int {
	return 3
}

func (m *MarketFacilitationIndicator) Evaluate(series *techan.TimeSeries, symbol string) (*models.IndicatorResult, error) {
	if !windowIsClean(series, m.RequiredLookback()) {
		return nil, nil
	}

	lastIndex := series.LastIndex()
	current := series.Candles[lastIndex]
	previous := series.Candles[lastIndex-1]

	currentVolume := current.Volume.Float()
	previousVolume := previous.Volume.Float()
	if currentVolume <= 0 || previousVolume <= 0 {
		// ratio is undefined without volume
		return nil, nil
	}

	currentRatio := (current.MaxPrice.Float() - current.MinPrice.Float()) / currentVolume
	previousRatio := (previous.MaxPrice.Float() - previous.MinPrice.Float()) / previousVolume

	ratioUp := currentRatio > previousRatio
	volumeUp := currentVolume > previousVolume
	priceDelta := current.ClosePrice.Float() - previous.ClosePrice.Float()

	signal := models.SignalNeutral
	state := "fade"
	switch {
	case ratioUp && volumeUp:
		// efficient move backed by volume: follow the price
		state = "green"
		if priceDelta > 0 {
			signal = models.SignalStrongBuy
		} else if priceDelta < 0 {
			signal = models.SignalStrongSell
		}
	case ratioUp && !volumeUp:
		// range expands while volume leaves: contrarian
		state = "fake"
		if priceDelta > 0 {
			signal = models.SignalSell
		} else if priceDelta < 0 {
			signal = models.SignalBuy
		}
	case !ratioUp && volumeUp:
		// volume piles in without progress: stand aside
		state = "squat"
	}

	confidence := 0.0
	if previousRatio > 0 {
		confidence = helpers.Clip(math.Abs(currentRatio-previousRatio)/previousRatio, 0, 1)
	}
	if signal == models.SignalNeutral {
		confidence *= 0.3
	}

	return &models.IndicatorResult{
		Indicator:  m.Name(),
		Signal:     signal,
		Confidence: confidence,
		Value:      currentRatio,
		Values: map[string]float64{
			"mfi":      currentRatio,
			"mfi_prev": previousRatio,
		},
		Metadata: map[string]string{"symbol": symbol, "state": state},
	}, nil
}
