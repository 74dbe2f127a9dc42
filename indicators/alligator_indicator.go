package indicators

import (
	"math"

	"github.com/sdcoffey/techan"
	"gitlab.com/aoterocom/AOSignals/helpers"
	"gitlab.com/aoterocom/AOSignals/models"
)

// AlligatorIndicator is the trend family: three displaced smoothed
// averages of the median price (jaw, teeth, lips). Ascending alignment
// of the lines under the price is bullish, descending above it bearish.
type AlligatorIndicator struct {
	JawPeriod   int
	JawShift    int
	TeethPeriod int
	TeethShift  int
	LipsPeriod  int
	LipsShift   int
}

func NewAlligatorIndicator() *AlligatorIndicator {
	return &AlligatorIndicator{
		JawPeriod:   13,
		JawShift:    8,
		TeethPeriod: 8,
		TeethShift:  5,
		LipsPeriod:  5,
		LipsShift:   3,
	}
}

func (a *AlligatorIndicator) Name() string {
	return "alligator"
}

func (a *AlligatorIndicator) RequiredLookback() int {
	return a.JawPeriod + a.JawShift
}

func (a *AlligatorIndicator) Evaluate(series *techan.TimeSeries, symbol string) (*models.IndicatorResult, error) {
	if !windowIsClean(series, a.RequiredLookback()) {
		return nil, nil
	}

	lastIndex := series.LastIndex()
	median := NewMedianPriceIndicator(series)
	jaw := NewDisplacedIndicator(NewSmoothedMovingAverage(median, a.JawPeriod), a.JawShift).Calculate(lastIndex).Float()
	teeth := NewDisplacedIndicator(NewSmoothedMovingAverage(median, a.TeethPeriod), a.TeethShift).Calculate(lastIndex).Float()
	lips := NewDisplacedIndicator(NewSmoothedMovingAverage(median, a.LipsPeriod), a.LipsShift).Calculate(lastIndex).Float()
	closePrice := series.LastCandle().ClosePrice.Float()

	bullish := lips > teeth && teeth > jaw
	bearish := lips < teeth && teeth < jaw

	signal := models.SignalNeutral
	switch {
	case bullish && closePrice > lips:
		signal = models.SignalStrongBuy
	case bullish:
		signal = models.SignalBuy
	case bearish && closePrice < lips:
		signal = models.SignalStrongSell
	case bearish:
		signal = models.SignalSell
	}

	// How decisively the lines are fanned out, against recent bar range
	spread := math.Abs(lips - jaw)
	confidence := 0.0
	if avgRange := averageBarRange(series, 10); avgRange > 0 {
		confidence = helpers.Clip(spread/(2*avgRange), 0, 1)
	}

	return &models.IndicatorResult{
		Indicator:  a.Name(),
		Signal:     signal,
		Confidence: confidence,
		Value:      lips,
		Values: map[string]float64{
			"jaw":   jaw,
			"teeth": teeth,
			"lips":  lips,
		},
		Metadata: map[string]string{"symbol": symbol},
	}, nil
}
