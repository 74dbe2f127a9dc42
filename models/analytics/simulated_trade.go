package analytics

import "time"

type TradeDirection string

const (
	DirectionLong  TradeDirection = "long"
	DirectionShort TradeDirection = "short"
)

// ExitTrigger names the rule that closed a simulated trade.
type ExitTrigger string

const (
	ExitTriggerStopLoss       ExitTrigger = "stop loss"
	ExitTriggerTakeProfit     ExitTrigger = "take profit"
	ExitTriggerOppositeSignal ExitTrigger = "opposite signal"
	ExitTriggerEndOfBacktest  ExitTrigger = "end of backtest"
	ExitTriggerNone           ExitTrigger = ""
)

// SimulatedTrade is one backtest position. Exit fields stay zero while
// the position is open; ExitReason doubles as the open/closed marker.
type SimulatedTrade struct {
	Symbol              string
	Direction           TradeDirection
	EntryTime           time.Time
	EntryPrice          float64
	ExitTime            time.Time
	ExitPrice           float64
	Size                float64
	ProfitLoss          float64
	EntryReason         string
	ExitReason          ExitTrigger
	MaxAdverseExcursion float64
	Contributors        []string
}

func (t *SimulatedTrade) IsOpen() bool {
	return t.ExitReason == ExitTriggerNone
}

func (t *SimulatedTrade) IsWinner() bool {
	return !t.IsOpen() && t.ProfitLoss > 0
}
