package services

import (
	"math"
	"time"

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

func flatBars(n int, price float64) []models.PriceBar {
	bars := make([]models.PriceBar, 0, n)
	for i := 0; i < n; i++ {
		bars = append(bars, testBar(i, price, 0, 100))
	}
	return bars
}

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

// scriptedEvaluator returns canned signals keyed by the index of the
// last supplied bar; everything else is neutral. Lets the simulator
// tests drive entries and exits deterministically.
type scriptedEvaluator struct {
	lookback int
	script   map[int]*models.CombinedSignal
	errAt    map[int]error
}

func (s *scriptedEvaluator) RequiredLookback() int {
	return s.lookback
}

func (s *scriptedEvaluator) Evaluate(bars []models.PriceBar, symbol string) (*models.CombinedSignal, error) {
	index := len(bars) - 1
	if err, ok := s.errAt[index]; ok {
		return nil, err
	}
	if signal, ok := s.script[index]; ok {
		return signal, nil
	}
	return &models.CombinedSignal{
		Timestamp:       bars[index].Timestamp,
		Signal:          models.SignalNeutral,
		Confidence:      0.5,
		Probability:     50,
		Contributions:   map[string]models.IndicatorResult{},
		MarketCondition: models.MarketConditionRanging,
	}, nil
}

func directionalSignal(level models.SignalLevel, probability float64) *models.CombinedSignal {
	return &models.CombinedSignal{
		Signal:      level,
		Confidence:  0.7,
		Probability: probability,
		Contributions: map[string]models.IndicatorResult{
			"alligator": {Indicator: "alligator", Signal: level, Confidence: 0.7},
		},
		MarketCondition: models.MarketConditionTrending,
	}
}
