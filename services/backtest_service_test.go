package services

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gitlab.com/aoterocom/AOSignals/models"
	"gitlab.com/aoterocom/AOSignals/models/analytics"
)

func testSettings() BacktestSettings {
	settings := DefaultBacktestSettings()
	settings.InitialCapital = 10000
	settings.MinProbability = 60
	settings.RiskPerTrade = 0.02
	settings.StopLossPct = 0.01
	settings.TakeProfitPct = 0.02
	return settings
}

func assertNoOverlappingTrades(t *testing.T, trades []analytics.SimulatedTrade) {
	for i := 1; i < len(trades); i++ {
		assert.False(t, trades[i].EntryTime.Before(trades[i-1].ExitTime),
			"trade %d entered at %s before trade %d exited at %s",
			i, trades[i].EntryTime, i-1, trades[i-1].ExitTime)
	}
}

func TestNewBacktestServiceRejectsBadSettings(t *testing.T) {
	evaluator := &scriptedEvaluator{lookback: 3}

	settings := testSettings()
	settings.InitialCapital = 0
	_, err := NewBacktestService(evaluator, settings)
	assert.NotNil(t, err)

	settings = testSettings()
	settings.StopLossPct = -0.01
	_, err = NewBacktestService(evaluator, settings)
	assert.NotNil(t, err)
}

func TestBacktestInsufficientData(t *testing.T) {
	evaluator := &scriptedEvaluator{lookback: 10}
	backtester, err := NewBacktestService(evaluator, testSettings())
	assert.Nil(t, err)

	_, err = backtester.Run(flatBars(10, 100), "EURUSD")
	_, ok := err.(*models.InsufficientDataError)
	assert.True(t, ok, "got %v", err)
}

// Price rises well past the take-profit distance before reversing: the
// long must close at the target, not at end of data, and the single
// winning trade yields a 1.0 win rate.
func TestBacktestTakeProfitBeforeReversal(t *testing.T) {
	bars := make([]models.PriceBar, 0, 30)
	for i := 0; i < 30; i++ {
		price := 100.0
		switch {
		case i > 4 && i <= 11:
			price = 100 + 0.8*float64(i-4) // up ~5%
		case i > 11:
			price = 105.6 - 1.2*float64(i-11) // down past the start
			if price < 95 {
				price = 95
			}
		}
		bars = append(bars, testBar(i, price, 0.1, 100))
	}

	evaluator := &scriptedEvaluator{
		lookback: 3,
		script:   map[int]*models.CombinedSignal{4: directionalSignal(models.SignalBuy, 80)},
	}
	backtester, err := NewBacktestService(evaluator, testSettings())
	assert.Nil(t, err)

	report, err := backtester.Run(bars, "EURUSD")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(report.Trades))

	trade := report.Trades[0]
	assert.Equal(t, analytics.ExitTriggerTakeProfit, trade.ExitReason)
	assert.InDelta(t, 100.0, trade.EntryPrice, 1e-9)
	assert.InDelta(t, 102.0, trade.ExitPrice, 1e-9)
	assert.True(t, trade.ExitTime.Before(bars[12].Timestamp), "must exit before the reversal")

	assert.Equal(t, 1.0, report.WinRate)
	assert.True(t, math.IsInf(report.ProfitFactor, 1))
	// size = 10000*0.02/(0.01*100) = 200, pnl = 2*200
	assert.InDelta(t, 400.0, trade.ProfitLoss, 1e-9)
	assert.InDelta(t, 10400.0, report.FinalCapital, 1e-9)
	assert.InDelta(t, 400.0, report.IndicatorPnL["alligator"], 1e-9)
}

// An intrabar low touching the stop must close the trade at the stop
// price even though the close never breached it.
func TestBacktestStopLossUsesIntrabarLow(t *testing.T) {
	bars := flatBars(20, 100)
	bars[8].Low = 98.9
	bars[8].Close = 100.5
	bars[8].High = 100.6

	evaluator := &scriptedEvaluator{
		lookback: 3,
		script:   map[int]*models.CombinedSignal{4: directionalSignal(models.SignalBuy, 80)},
	}
	backtester, err := NewBacktestService(evaluator, testSettings())
	assert.Nil(t, err)

	report, err := backtester.Run(bars, "EURUSD")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(report.Trades))

	trade := report.Trades[0]
	assert.Equal(t, analytics.ExitTriggerStopLoss, trade.ExitReason)
	assert.InDelta(t, 99.0, trade.ExitPrice, 1e-9)
	assert.Equal(t, bars[8].Timestamp, trade.ExitTime)
	assert.Greater(t, bars[8].Close, 99.0, "close itself never breached the stop")
	assert.GreaterOrEqual(t, trade.MaxAdverseExcursion, (100.0-98.9)/100.0)
	assert.Equal(t, 0.0, report.WinRate)
}

// Buy signals keep firing while a position is open; none of them may
// open a second one.
func TestBacktestSinglePositionInvariant(t *testing.T) {
	bars := make([]models.PriceBar, 0, 40)
	for i := 0; i < 40; i++ {
		bars = append(bars, testBar(i, 100, 0.1, 100))
	}

	script := map[int]*models.CombinedSignal{}
	for i := 4; i < 40; i++ {
		script[i] = directionalSignal(models.SignalBuy, 80)
	}
	evaluator := &scriptedEvaluator{lookback: 3, script: script}
	backtester, err := NewBacktestService(evaluator, testSettings())
	assert.Nil(t, err)

	report, err := backtester.Run(bars, "EURUSD")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(report.Trades))
	assert.Equal(t, analytics.ExitTriggerEndOfBacktest, report.Trades[0].ExitReason)
	assertNoOverlappingTrades(t, report.Trades)
}

func TestBacktestOppositeSignalClosesLong(t *testing.T) {
	bars := flatBars(20, 100)
	settings := testSettings()
	settings.AllowShort = false

	evaluator := &scriptedEvaluator{
		lookback: 3,
		script: map[int]*models.CombinedSignal{
			4: directionalSignal(models.SignalBuy, 80),
			9: directionalSignal(models.SignalSell, 80),
		},
	}
	backtester, err := NewBacktestService(evaluator, settings)
	assert.Nil(t, err)

	report, err := backtester.Run(bars, "EURUSD")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(report.Trades))

	trade := report.Trades[0]
	assert.Equal(t, analytics.ExitTriggerOppositeSignal, trade.ExitReason)
	assert.Equal(t, bars[9].Timestamp, trade.ExitTime)
	assert.InDelta(t, 100.0, trade.ExitPrice, 1e-9)
}

func TestBacktestShortSide(t *testing.T) {
	bars := flatBars(20, 100)
	// price collapses after the short entry
	for i := 10; i < 20; i++ {
		bars[i] = testBar(i, 97, 0.1, 100)
	}

	evaluator := &scriptedEvaluator{
		lookback: 3,
		script:   map[int]*models.CombinedSignal{8: directionalSignal(models.SignalStrongSell, 80)},
	}
	backtester, err := NewBacktestService(evaluator, testSettings())
	assert.Nil(t, err)

	report, err := backtester.Run(bars, "EURUSD")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(report.Trades))

	trade := report.Trades[0]
	assert.Equal(t, analytics.DirectionShort, trade.Direction)
	assert.Equal(t, analytics.ExitTriggerTakeProfit, trade.ExitReason)
	assert.InDelta(t, 98.0, trade.ExitPrice, 1e-9)
	assert.Greater(t, trade.ProfitLoss, 0.0)
}

func TestBacktestEvaluationErrorSkipsBarOnly(t *testing.T) {
	bars := flatBars(20, 100)

	evaluator := &scriptedEvaluator{
		lookback: 3,
		script:   map[int]*models.CombinedSignal{6: directionalSignal(models.SignalBuy, 80)},
		errAt:    map[int]error{4: fmt.Errorf("feed hiccup"), 5: fmt.Errorf("feed hiccup")},
	}
	backtester, err := NewBacktestService(evaluator, testSettings())
	assert.Nil(t, err)

	report, err := backtester.Run(bars, "EURUSD")
	assert.Nil(t, err)
	// the run survives the failing bars and still takes the later entry
	assert.Equal(t, 1, len(report.Trades))
	assert.Equal(t, bars[6].Timestamp, report.Trades[0].EntryTime)
}

func TestBacktestLowProbabilitySignalIsIgnored(t *testing.T) {
	bars := flatBars(20, 100)

	evaluator := &scriptedEvaluator{
		lookback: 3,
		script:   map[int]*models.CombinedSignal{4: directionalSignal(models.SignalBuy, 55)},
	}
	backtester, err := NewBacktestService(evaluator, testSettings())
	assert.Nil(t, err)

	report, err := backtester.Run(bars, "EURUSD")
	assert.Nil(t, err)
	assert.Equal(t, 0, len(report.Trades))
}

func TestBacktestEquityCurveLength(t *testing.T) {
	bars := flatBars(25, 100)
	evaluator := &scriptedEvaluator{lookback: 5}
	backtester, err := NewBacktestService(evaluator, testSettings())
	assert.Nil(t, err)

	report, err := backtester.Run(bars, "EURUSD")
	assert.Nil(t, err)
	assert.Equal(t, 20, len(report.EquityCurve))
	assert.Equal(t, 10000.0, report.EquityCurve[0])
}

func TestBacktestWithAggregationEngine(t *testing.T) {
	aggregator := NewSignalAggregationService(time.Hour)
	settings := testSettings()
	settings.MinProbability = 40 // let the engine trade on a synthetic series
	backtester, err := NewBacktestService(aggregator, settings)
	assert.Nil(t, err)

	bars := wavyBars(150)
	report, err := backtester.Run(bars, "EURUSD")
	assert.Nil(t, err)

	assert.Equal(t, len(bars)-aggregator.RequiredLookback(), len(report.EquityCurve))
	assert.GreaterOrEqual(t, report.WinRate, 0.0)
	assert.LessOrEqual(t, report.WinRate, 1.0)
	assert.GreaterOrEqual(t, report.MaxDrawdownPct, 0.0)
	assertNoOverlappingTrades(t, report.Trades)
	for _, trade := range report.Trades {
		assert.False(t, trade.IsOpen(), "all trades are closed when the report is built")
	}
}

func TestMaxDrawdownPct(t *testing.T) {
	// peak 110, trough 88: 20% decline
	curve := []float64{100, 110, 99, 88, 104, 107}
	assert.InDelta(t, 20.0, maxDrawdownPct(curve), 1e-9)
	assert.Equal(t, 0.0, maxDrawdownPct([]float64{100, 101, 102}))
}
