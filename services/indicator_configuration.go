package services

import (
	"gitlab.com/aoterocom/AOSignals/indicators"
	"gitlab.com/aoterocom/AOSignals/interfaces"
	"gitlab.com/aoterocom/AOSignals/models"
)

type IndicatorCategory string

const (
	CategoryPrimaryTrend        IndicatorCategory = "primary-trend"
	CategorySecondaryOscillator IndicatorCategory = "secondary-oscillator"
	CategoryPattern             IndicatorCategory = "pattern"
	CategoryVolume              IndicatorCategory = "volume"
)

// IndicatorConfiguration binds an indicator instance to its aggregation
// parameters. Owned by the aggregation service; mutate only between
// Evaluate calls.
type IndicatorConfiguration struct {
	Indicator     interfaces.Indicator
	Weight        float64
	Category      IndicatorCategory
	Enabled       bool
	MinConfidence float64
}

// DefaultConfigurations is the stock set covering all four families.
func DefaultConfigurations() []IndicatorConfiguration {
	return []IndicatorConfiguration{
		{Indicator: indicators.NewAlligatorIndicator(), Weight: 1.5, Category: CategoryPrimaryTrend, Enabled: true, MinConfidence: 0.1},
		{Indicator: indicators.NewAwesomeOscillatorIndicator(), Weight: 1.0, Category: CategorySecondaryOscillator, Enabled: true, MinConfidence: 0.1},
		{Indicator: indicators.NewFractalIndicator(), Weight: 1.0, Category: CategoryPattern, Enabled: true, MinConfidence: 0.1},
		{Indicator: indicators.NewMarketFacilitationIndicator(), Weight: 0.8, Category: CategoryVolume, Enabled: true, MinConfidence: 0.1},
	}
}

// conditionWeightFactors is the adaptive reweighting table: the same
// indicator outputs combine differently depending on the regime.
// Unlisted (condition, category) pairs keep factor 1.0.
var conditionWeightFactors = map[models.MarketCondition]map[IndicatorCategory]float64{
	models.MarketConditionTrending: {
		CategoryPrimaryTrend:        1.2,
		CategorySecondaryOscillator: 0.8,
	},
	models.MarketConditionRanging: {
		CategoryPrimaryTrend:        0.8,
		CategorySecondaryOscillator: 1.2,
	},
	models.MarketConditionVolatile: {
		CategoryVolume:  1.1,
		CategoryPattern: 0.9,
	},
}

func conditionWeightFactor(condition models.MarketCondition, category IndicatorCategory) float64 {
	if factors, ok := conditionWeightFactors[condition]; ok {
		if factor, ok := factors[category]; ok {
			return factor
		}
	}
	return 1.0
}
