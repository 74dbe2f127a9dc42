package services

import (
	"fmt"
	"sync"
	"time"

	"gitlab.com/aoterocom/AOSignals/helpers"
	"gitlab.com/aoterocom/AOSignals/models"
)

// SignalAggregationService owns an ordered, weighted collection of
// indicators and reduces their judgments to one CombinedSignal per
// call. Configuration mutators take effect on the next Evaluate call;
// they must not run concurrently with an in-flight Evaluate on the same
// instance. Use one service per symbol for parallel evaluation.
type SignalAggregationService struct {
	barPeriod time.Duration
	configs   []IndicatorConfiguration
}

type scoredResult struct {
	result models.IndicatorResult
	config IndicatorConfiguration
}

func NewSignalAggregationService(barPeriod time.Duration) *SignalAggregationService {
	return NewSignalAggregationServiceWithConfigs(barPeriod, DefaultConfigurations())
}

func NewSignalAggregationServiceWithConfigs(barPeriod time.Duration, configs []IndicatorConfiguration) *SignalAggregationService {
	return &SignalAggregationService{
		barPeriod: barPeriod,
		configs:   configs,
	}
}

func (s *SignalAggregationService) findConfig(name string) (*IndicatorConfiguration, error) {
	for i := range s.configs {
		if s.configs[i].Indicator.Name() == name {
			return &s.configs[i], nil
		}
	}
	return nil, fmt.Errorf("unknown indicator %q", name)
}

func (s *SignalAggregationService) SetIndicatorEnabled(name string, enabled bool) error {
	config, err := s.findConfig(name)
	if err != nil {
		return err
	}
	config.Enabled = enabled
	return nil
}

func (s *SignalAggregationService) SetWeight(name string, weight float64) error {
	if weight <= 0 {
		return fmt.Errorf("weight must be positive, got %f", weight)
	}
	config, err := s.findConfig(name)
	if err != nil {
		return err
	}
	config.Weight = weight
	return nil
}

func (s *SignalAggregationService) AddIndicator(config IndicatorConfiguration) error {
	if config.Indicator == nil {
		return fmt.Errorf("indicator must not be nil")
	}
	if config.Weight <= 0 {
		return fmt.Errorf("weight must be positive, got %f", config.Weight)
	}
	if existing, _ := s.findConfig(config.Indicator.Name()); existing != nil {
		return fmt.Errorf("indicator %q already configured", config.Indicator.Name())
	}
	s.configs = append(s.configs, config)
	return nil
}

func (s *SignalAggregationService) RemoveIndicator(name string) error {
	for i := range s.configs {
		if s.configs[i].Indicator.Name() == name {
			s.configs = append(s.configs[:i], s.configs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unknown indicator %q", name)
}

// RequiredLookback is the largest lookback among enabled indicators.
func (s *SignalAggregationService) RequiredLookback() int {
	lookback := 1
	for _, config := range s.configs {
		if config.Enabled && config.Indicator.RequiredLookback() > lookback {
			lookback = config.Indicator.RequiredLookback()
		}
	}
	return lookback
}

// Evaluate runs every enabled indicator over the bar window and
// combines the surviving results into one CombinedSignal.
func (s *SignalAggregationService) Evaluate(bars []models.PriceBar, symbol string) (*models.CombinedSignal, error) {
	if err := models.ValidateBars(bars); err != nil {
		return nil, err
	}
	required := s.RequiredLookback()
	if len(bars) < required {
		return nil, &models.InsufficientDataError{Required: required, Got: len(bars)}
	}

	series := models.ToTimeSeries(bars, s.barPeriod)

	enabled := make([]IndicatorConfiguration, 0, len(s.configs))
	for _, config := range s.configs {
		if config.Enabled {
			enabled = append(enabled, config)
		}
	}

	// Indicators have no data dependency on each other, so they fan out
	// within the bar; the reduce below walks them in configuration order
	// to stay deterministic.
	type evaluation struct {
		result *models.IndicatorResult
		err    error
	}
	evaluations := make([]evaluation, len(enabled))
	var wg sync.WaitGroup
	for i := range enabled {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := enabled[i].Indicator.Evaluate(series, symbol)
			evaluations[i] = evaluation{result: result, err: err}
		}(i)
	}
	wg.Wait()

	surviving := make([]scoredResult, 0, len(enabled))
	for i, config := range enabled {
		ev := evaluations[i]
		if ev.err != nil {
			evalErr := &models.IndicatorEvaluationError{Indicator: config.Indicator.Name(), Err: ev.err}
			helpers.Logger.Warnln(fmt.Sprintf("%s: %s", symbol, evalErr.Error()))
			continue
		}
		if ev.result == nil {
			continue
		}
		if ev.result.Confidence < config.MinConfidence {
			continue
		}
		surviving = append(surviving, scoredResult{result: *ev.result, config: config})
	}

	condition, agreement := classifyMarketCondition(bars, surviving)
	timestamp := bars[len(bars)-1].Timestamp

	if len(surviving) == 0 {
		return &models.CombinedSignal{
			Timestamp:         timestamp,
			Symbol:            symbol,
			Signal:            models.SignalNeutral,
			Confidence:        0.5,
			Probability:       50,
			IndicatorsUsed:    0,
			Contributions:     map[string]models.IndicatorResult{},
			MarketCondition:   condition,
			RecommendedAction: recommendedAction(models.SignalNeutral, 50),
			RiskLevel:         deriveRiskLevel(0.5, 50),
		}, nil
	}

	rawValue, confidence := combineResults(surviving, condition)
	level := models.SignalLevelFromValue(rawValue)
	probability := deriveProbability(confidence, agreement, rawValue, condition)

	contributions := make(map[string]models.IndicatorResult, len(surviving))
	for _, sr := range surviving {
		contributions[sr.result.Indicator] = sr.result
	}

	return &models.CombinedSignal{
		Timestamp:         timestamp,
		Symbol:            symbol,
		Signal:            level,
		Confidence:        confidence,
		Probability:       probability,
		IndicatorsUsed:    len(surviving),
		Contributions:     contributions,
		MarketCondition:   condition,
		RecommendedAction: recommendedAction(level, probability),
		RiskLevel:         deriveRiskLevel(confidence, probability),
	}, nil
}

// combineResults reduces the surviving indicator results under the
// regime-adjusted weights. Both sums are normalized by the same total
// weight, so confidence stays within [0,1] and rawValue within the
// signal scale.
func combineResults(surviving []scoredResult, condition models.MarketCondition) (rawValue float64, confidence float64) {
	rawSum := 0.0
	confidenceSum := 0.0
	totalWeight := 0.0
	for _, sr := range surviving {
		weight := sr.config.Weight * conditionWeightFactor(condition, sr.config.Category)
		rawSum += float64(sr.result.Signal) * sr.result.Confidence * weight
		confidenceSum += sr.result.Confidence * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0, 0
	}
	return rawSum / totalWeight, confidenceSum / totalWeight
}

// deriveProbability is the success-probability heuristic: a 50 base
// moved by confidence (±20), indicator agreement (±15) and signed
// signal strength (±20), then scaled ±10% by regime. It deliberately
// remains a separate scale from confidence.
func deriveProbability(confidence float64, agreement float64, rawValue float64, condition models.MarketCondition) float64 {
	probability := 50.0
	probability += (confidence - 0.5) * 40
	probability += (agreement - 0.5) * 30
	probability += helpers.Clip(rawValue/2, -1, 1) * 20
	switch condition {
	case models.MarketConditionTrending:
		probability *= 1.1
	case models.MarketConditionVolatile:
		probability *= 0.9
	}
	return helpers.Clip(probability, 0, 100)
}

func deriveRiskLevel(confidence float64, probability float64) models.RiskLevel {
	score := (confidence + probability/100) / 2
	switch {
	case score >= 0.7:
		return models.RiskLevelLow
	case score >= 0.5:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelHigh
	}
}

func recommendedAction(level models.SignalLevel, probability float64) string {
	switch {
	case level == models.SignalStrongBuy && probability >= 70:
		return "enter long now"
	case level == models.SignalStrongBuy:
		return "enter long reduced size, await confirmation"
	case level == models.SignalBuy && probability >= 60:
		return "enter long"
	case level == models.SignalBuy:
		return "lean long, wait for confirmation"
	case level == models.SignalStrongSell && probability >= 70:
		return "enter short now"
	case level == models.SignalStrongSell:
		return "enter short reduced size, await confirmation"
	case level == models.SignalSell && probability >= 60:
		return "enter short"
	case level == models.SignalSell:
		return "lean short, wait for confirmation"
	default:
		return "stay flat"
	}
}
