package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gitlab.com/aoterocom/AOSignals/helpers"
	"gitlab.com/aoterocom/AOSignals/interfaces"
	"gitlab.com/aoterocom/AOSignals/models"
	"gitlab.com/aoterocom/AOSignals/models/analytics"
)

// BacktestSettings parametrizes one simulation run.
type BacktestSettings struct {
	InitialCapital float64
	// MinProbability gates entries: directional signals below it are ignored.
	MinProbability float64
	// RiskPerTrade is the capital fraction risked per position.
	RiskPerTrade float64
	// StopLossPct and TakeProfitPct are distances from the entry price.
	StopLossPct   float64
	TakeProfitPct float64
	// AnnualizationFactor scales the per-period Sharpe ratio.
	AnnualizationFactor float64
	AllowShort          bool
}

func DefaultBacktestSettings() BacktestSettings {
	return BacktestSettings{
		InitialCapital:      10000,
		MinProbability:      60,
		RiskPerTrade:        0.02,
		StopLossPct:         0.01,
		TakeProfitPct:       0.02,
		AnnualizationFactor: math.Sqrt(252),
		AllowShort:          true,
	}
}

// BacktestService replays a signal evaluator bar-by-bar over historical
// data. It is a two-state machine: flat, or exactly one open trade.
// The single-position rule is a hard invariant, not a setting.
type BacktestService struct {
	evaluator interfaces.SignalEvaluator
	settings  BacktestSettings
}

func NewBacktestService(evaluator interfaces.SignalEvaluator, settings BacktestSettings) (*BacktestService, error) {
	if settings.InitialCapital <= 0 {
		return nil, fmt.Errorf("initial capital must be positive, got %f", settings.InitialCapital)
	}
	if settings.StopLossPct <= 0 || settings.TakeProfitPct <= 0 {
		return nil, fmt.Errorf("stop loss and take profit distances must be positive")
	}
	return &BacktestService{evaluator: evaluator, settings: settings}, nil
}

// Run simulates over the full series and builds the report once at the
// end. Exits are checked before entries on every bar, and stop/target
// checks use the bar's high/low so intrabar touches are honored.
func (b *BacktestService) Run(bars []models.PriceBar, symbol string) (*analytics.BacktestReport, error) {
	if err := models.ValidateBars(bars); err != nil {
		return nil, err
	}
	lookback := b.evaluator.RequiredLookback()
	if len(bars) <= lookback {
		return nil, &models.InsufficientDataError{Required: lookback + 1, Got: len(bars)}
	}

	capital := b.settings.InitialCapital
	var open *analytics.SimulatedTrade
	var trades []analytics.SimulatedTrade
	equityCurve := make([]float64, 0, len(bars)-lookback)
	indicatorPnL := map[string]float64{}

	closeTrade := func(t *analytics.SimulatedTrade, exitTime time.Time, exitPrice float64, reason analytics.ExitTrigger) {
		direction := 1.0
		if t.Direction == analytics.DirectionShort {
			direction = -1.0
		}
		t.ExitTime = exitTime
		t.ExitPrice = exitPrice
		t.ProfitLoss = (exitPrice - t.EntryPrice) * t.Size * direction
		t.ExitReason = reason
		capital += t.ProfitLoss
		for _, name := range t.Contributors {
			indicatorPnL[name] += t.ProfitLoss
		}
		trades = append(trades, *t)
		open = nil
	}

	for i := lookback; i < len(bars); i++ {
		bar := bars[i]

		if open != nil {
			b.trackAdverseExcursion(open, bar)
			stop, target := b.exitLevels(open)
			if open.Direction == analytics.DirectionLong {
				if bar.Low <= stop {
					closeTrade(open, bar.Timestamp, stop, analytics.ExitTriggerStopLoss)
				} else if bar.High >= target {
					closeTrade(open, bar.Timestamp, target, analytics.ExitTriggerTakeProfit)
				}
			} else {
				if bar.High >= stop {
					closeTrade(open, bar.Timestamp, stop, analytics.ExitTriggerStopLoss)
				} else if bar.Low <= target {
					closeTrade(open, bar.Timestamp, target, analytics.ExitTriggerTakeProfit)
				}
			}
		}

		signal, err := b.evaluator.Evaluate(bars[:i+1], symbol)
		if err != nil {
			// the bar is skipped for decisions, the open position is
			// still tracked for stop/target above
			helpers.Logger.Warnln(fmt.Sprintf("backtest %s: skipping bar %s: %v", symbol, bar.Timestamp, err))
			signal = nil
		}

		if open != nil && signal != nil {
			opposing := (open.Direction == analytics.DirectionLong && signal.Signal.IsSellSide()) ||
				(open.Direction == analytics.DirectionShort && signal.Signal.IsBuySide())
			if opposing {
				closeTrade(open, bar.Timestamp, bar.Close, analytics.ExitTriggerOppositeSignal)
			}
		}

		if open == nil && signal != nil && signal.Probability >= b.settings.MinProbability {
			if signal.Signal.IsBuySide() {
				open = b.openTrade(symbol, analytics.DirectionLong, bar, capital, signal)
			} else if signal.Signal.IsSellSide() && b.settings.AllowShort {
				open = b.openTrade(symbol, analytics.DirectionShort, bar, capital, signal)
			}
		}

		equityCurve = append(equityCurve, capital+unrealizedPnL(open, bar.Close))
	}

	if open != nil {
		lastBar := bars[len(bars)-1]
		closeTrade(open, lastBar.Timestamp, lastBar.Close, analytics.ExitTriggerEndOfBacktest)
		equityCurve[len(equityCurve)-1] = capital
	}

	report := b.buildReport(symbol, trades, equityCurve, capital, indicatorPnL)
	return &report, nil
}

func (b *BacktestService) openTrade(symbol string, direction analytics.TradeDirection, bar models.PriceBar,
	capital float64, signal *models.CombinedSignal) *analytics.SimulatedTrade {

	entryPrice := bar.Close
	size := (capital * b.settings.RiskPerTrade) / (b.settings.StopLossPct * entryPrice)

	contributors := make([]string, 0, len(signal.Contributions))
	for name := range signal.Contributions {
		contributors = append(contributors, name)
	}
	sort.Strings(contributors)

	return &analytics.SimulatedTrade{
		Symbol:       symbol,
		Direction:    direction,
		EntryTime:    bar.Timestamp,
		EntryPrice:   entryPrice,
		Size:         size,
		EntryReason:  fmt.Sprintf("%s signal, probability %.1f", signal.Signal, signal.Probability),
		Contributors: contributors,
	}
}

func (b *BacktestService) exitLevels(t *analytics.SimulatedTrade) (stop float64, target float64) {
	if t.Direction == analytics.DirectionLong {
		return t.EntryPrice * (1 - b.settings.StopLossPct), t.EntryPrice * (1 + b.settings.TakeProfitPct)
	}
	return t.EntryPrice * (1 + b.settings.StopLossPct), t.EntryPrice * (1 - b.settings.TakeProfitPct)
}

func (b *BacktestService) trackAdverseExcursion(t *analytics.SimulatedTrade, bar models.PriceBar) {
	var adverse float64
	if t.Direction == analytics.DirectionLong {
		adverse = (t.EntryPrice - bar.Low) / t.EntryPrice
	} else {
		adverse = (bar.High - t.EntryPrice) / t.EntryPrice
	}
	if adverse > t.MaxAdverseExcursion {
		t.MaxAdverseExcursion = adverse
	}
}

func unrealizedPnL(t *analytics.SimulatedTrade, price float64) float64 {
	if t == nil {
		return 0
	}
	direction := 1.0
	if t.Direction == analytics.DirectionShort {
		direction = -1.0
	}
	return (price - t.EntryPrice) * t.Size * direction
}

func (b *BacktestService) buildReport(symbol string, trades []analytics.SimulatedTrade, equityCurve []float64,
	finalCapital float64, indicatorPnL map[string]float64) analytics.BacktestReport {

	report := analytics.NewBacktestReport()
	report.Symbol = symbol
	report.InitialCapital = b.settings.InitialCapital
	report.FinalCapital = finalCapital
	report.Trades = trades
	report.EquityCurve = equityCurve
	report.IndicatorPnL = indicatorPnL

	wins := 0
	grossProfit := 0.0
	grossLoss := 0.0
	for _, t := range trades {
		if t.ProfitLoss > 0 {
			wins++
			grossProfit += t.ProfitLoss
		} else {
			grossLoss += -t.ProfitLoss
		}
	}
	if len(trades) > 0 {
		report.WinRate = float64(wins) / float64(len(trades))
	}
	switch {
	case grossLoss > 0:
		report.ProfitFactor = grossProfit / grossLoss
	case grossProfit > 0:
		report.ProfitFactor = math.Inf(1)
	}

	returns := percentChanges(equityCurve)
	mean := helpers.Mean(returns)
	if sd := helpers.StdDev(returns, mean); sd > 0 {
		report.SharpeRatio = mean / sd * b.settings.AnnualizationFactor
	}
	report.MaxDrawdownPct = maxDrawdownPct(equityCurve)
	return report
}

// maxDrawdownPct is the largest peak-to-trough percentage decline of
// the equity curve.
func maxDrawdownPct(equityCurve []float64) float64 {
	peak := math.Inf(-1)
	maxDrawdown := 0.0
	for _, equity := range equityCurve {
		if equity > peak {
			peak = equity
		}
		if peak > 0 {
			if drawdown := (peak - equity) / peak * 100; drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}
	return maxDrawdown
}
