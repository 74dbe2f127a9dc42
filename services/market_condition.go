package services

import (
	"gitlab.com/aoterocom/AOSignals/helpers"
	"gitlab.com/aoterocom/AOSignals/models"
)

const (
	volatilityWindow           = 10
	volatilityBaselineWindow   = 30
	volatileRatioThreshold     = 1.25
	trendingAgreementThreshold = 0.60
)

func percentChanges(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	changes := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			changes = append(changes, 0)
			continue
		}
		changes = append(changes, values[i]/values[i-1]-1)
	}
	return changes
}

func tail(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

// agreementScore is the inverse of the spread of the surviving signal
// values: 1 when every indicator says the same thing, approaching 0 as
// they scatter. With fewer than two survivors there is no measurable
// agreement and the score stays at its neutral 0.5.
func agreementScore(surviving []scoredResult) float64 {
	if len(surviving) < 2 {
		return 0.5
	}
	values := make([]float64, 0, len(surviving))
	for _, sr := range surviving {
		values = append(values, float64(sr.result.Signal))
	}
	sd := helpers.StdDev(values, helpers.Mean(values))
	return 1 / (1 + sd)
}

// classifyMarketCondition scores two competing reads of the market: how
// unusual the recent volatility is versus how much the indicators agree
// on a direction. The higher score names the condition; an exact tie
// reports ranging. A window with zero recent volatility is always calm.
func classifyMarketCondition(bars []models.PriceBar, surviving []scoredResult) (models.MarketCondition, float64) {
	agreement := agreementScore(surviving)

	closes := make([]float64, 0, len(bars))
	for _, bar := range bars {
		closes = append(closes, bar.Close)
	}
	returns := percentChanges(closes)

	recent := tail(returns, volatilityWindow)
	recentSD := helpers.StdDev(recent, helpers.Mean(recent))
	if recentSD == 0 {
		return models.MarketConditionCalm, agreement
	}

	baseline := tail(returns, volatilityBaselineWindow)
	baselineSD := helpers.StdDev(baseline, helpers.Mean(baseline))
	volatilityRatio := 0.0
	if baselineSD > 0 {
		volatilityRatio = recentSD / baselineSD
	}
	volatilityScore := helpers.Clip(volatilityRatio/2, 0, 1)

	volatilityLabel := models.MarketConditionCalm
	if volatilityRatio >= volatileRatioThreshold {
		volatilityLabel = models.MarketConditionVolatile
	}
	agreementLabel := models.MarketConditionRanging
	if agreement >= trendingAgreementThreshold {
		agreementLabel = models.MarketConditionTrending
	}

	switch {
	case volatilityScore > agreement:
		return volatilityLabel, agreement
	case agreement > volatilityScore:
		return agreementLabel, agreement
	default:
		return models.MarketConditionRanging, agreement
	}
}
