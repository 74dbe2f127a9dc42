package interfaces

import "gitlab.com/aoterocom/AOSignals/models"

type (
	// SignalEvaluator is what the backtest simulator drives forward in
	// time. The aggregation engine is the production implementation.
	SignalEvaluator interface {
		RequiredLookback() int
		Evaluate(bars []models.PriceBar, symbol string) (*models.CombinedSignal, error)
	}
)
