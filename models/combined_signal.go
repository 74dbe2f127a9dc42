package models

import "time"

// MarketCondition classifies recent price behavior.
type MarketCondition string

const (
	MarketConditionTrending MarketCondition = "trending"
	MarketConditionRanging  MarketCondition = "ranging"
	MarketConditionVolatile MarketCondition = "volatile"
	MarketConditionCalm     MarketCondition = "calm"
)

// RiskLevel grades how defensively a combined signal should be traded.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// CombinedSignal is one aggregation result. Probability and Confidence
// are independent scales: Probability is derived from confidence,
// indicator agreement, signal strength and regime, not Confidence*100.
type CombinedSignal struct {
	Timestamp         time.Time
	Symbol            string
	Signal            SignalLevel
	Confidence        float64
	Probability       float64
	IndicatorsUsed    int
	Contributions     map[string]IndicatorResult
	MarketCondition   MarketCondition
	RecommendedAction string
	RiskLevel         RiskLevel
}
