package analytics

// BacktestReport aggregates a completed simulation run. It is built
// once, from the full trade list and equity curve, after the run ends.
type BacktestReport struct {
	Symbol         string
	InitialCapital float64
	FinalCapital   float64
	Trades         []SimulatedTrade
	WinRate        float64
	ProfitFactor   float64
	SharpeRatio    float64
	MaxDrawdownPct float64
	EquityCurve    []float64
	IndicatorPnL   map[string]float64
}

func NewBacktestReport() BacktestReport {
	return BacktestReport{IndicatorPnL: map[string]float64{}}
}

// TotalReturnPct is the overall capital growth in percent.
func (r *BacktestReport) TotalReturnPct() float64 {
	if r.InitialCapital == 0 {
		return 0
	}
	return (r.FinalCapital/r.InitialCapital - 1) * 100
}
