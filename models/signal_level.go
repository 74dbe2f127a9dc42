package models

// SignalLevel is the five-point directional judgment scale. The integer
// values are used directly in aggregation arithmetic, so the ordering
// StrongSell < Sell < Neutral < Buy < StrongBuy must hold.
type SignalLevel int

const (
	SignalStrongSell SignalLevel = -2
	SignalSell       SignalLevel = -1
	SignalNeutral    SignalLevel = 0
	SignalBuy        SignalLevel = 1
	SignalStrongBuy  SignalLevel = 2
)

func (s SignalLevel) String() string {
	switch s {
	case SignalStrongSell:
		return "STRONG_SELL"
	case SignalSell:
		return "SELL"
	case SignalBuy:
		return "BUY"
	case SignalStrongBuy:
		return "STRONG_BUY"
	default:
		return "NEUTRAL"
	}
}

// IsBuySide returns true for BUY and STRONG_BUY
func (s SignalLevel) IsBuySide() bool {
	return s > SignalNeutral
}

// IsSellSide returns true for SELL and STRONG_SELL
func (s SignalLevel) IsSellSide() bool {
	return s < SignalNeutral
}

// SignalLevelFromValue maps a weighted raw value onto the scale using the
// fixed ±0.5 / ±1.5 thresholds
func SignalLevelFromValue(raw float64) SignalLevel {
	switch {
	case raw >= 1.5:
		return SignalStrongBuy
	case raw >= 0.5:
		return SignalBuy
	case raw <= -1.5:
		return SignalStrongSell
	case raw <= -0.5:
		return SignalSell
	default:
		return SignalNeutral
	}
}
