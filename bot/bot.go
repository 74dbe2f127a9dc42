package bot

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	str2duration "github.com/xhit/go-str2duration/v2"
	"gitlab.com/aoterocom/AOSignals/database"
	"gitlab.com/aoterocom/AOSignals/helpers"
	csvprovider "gitlab.com/aoterocom/AOSignals/providers/csv"
	"gitlab.com/aoterocom/AOSignals/services"
)

type Bot struct {
}

// RunSignal evaluates the aggregation engine once over the latest bars
// of a CSV series and logs (and optionally persists) the result.
func (b *Bot) RunSignal(c *cli.Context) error {
	symbol := c.String("symbol")
	interval := c.String("interval")

	barPeriod, err := str2duration.ParseDuration(interval)
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", interval, err)
	}

	provider := csvprovider.NewProvider(c.String("data-dir"))
	bars, err := provider.GetBars(symbol, interval, c.Int("limit"))
	if err != nil {
		return err
	}

	aggregator := services.NewSignalAggregationService(barPeriod)
	signal, err := aggregator.Evaluate(bars, symbol)
	if err != nil {
		return err
	}

	helpers.Logger.Infoln(fmt.Sprintf("%s %s: %s (confidence %.2f, probability %.1f, %d indicators, %s market, risk %s): %s",
		symbol, interval, signal.Signal, signal.Confidence, signal.Probability,
		signal.IndicatorsUsed, signal.MarketCondition, signal.RiskLevel, signal.RecommendedAction))

	if dbs := connectDatabase(); dbs != nil {
		if _, err := dbs.AddCombinedSignal(*signal); err != nil {
			helpers.Logger.Errorln("cannot persist signal:", err)
		}
	}
	return nil
}

// RunBacktest replays the engine over a CSV series and logs the report.
func (b *Bot) RunBacktest(c *cli.Context) error {
	symbol := c.String("symbol")
	interval := c.String("interval")

	barPeriod, err := str2duration.ParseDuration(interval)
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", interval, err)
	}

	provider := csvprovider.NewProvider(c.String("data-dir"))
	bars, err := provider.GetBars(symbol, interval, c.Int("limit"))
	if err != nil {
		return err
	}

	settings := services.DefaultBacktestSettings()
	if c.IsSet("capital") {
		settings.InitialCapital = c.Float64("capital")
	}
	if c.IsSet("min-probability") {
		settings.MinProbability = c.Float64("min-probability")
	}
	if c.IsSet("stop") {
		settings.StopLossPct = c.Float64("stop")
	}
	if c.IsSet("target") {
		settings.TakeProfitPct = c.Float64("target")
	}
	settings.AnnualizationFactor = annualizationFactor(barPeriod)

	aggregator := services.NewSignalAggregationService(barPeriod)
	backtester, err := services.NewBacktestService(aggregator, settings)
	if err != nil {
		return err
	}

	report, err := backtester.Run(bars, symbol)
	if err != nil {
		return err
	}

	profits := make([]float64, 0, len(report.Trades))
	for _, trade := range report.Trades {
		profits = append(profits, trade.ProfitLoss)
	}
	helpers.Logger.Infoln(fmt.Sprintf("%s %s backtest: %d trades, win rate %.2f, pos/neg ratio %.2f, profit factor %.2f, "+
		"sharpe %.2f, max drawdown %.2f%%, return %.2f%% (%.2f to %.2f)",
		symbol, interval, len(report.Trades), report.WinRate, helpers.PositiveNegativeRatio(profits),
		report.ProfitFactor, report.SharpeRatio, report.MaxDrawdownPct,
		report.TotalReturnPct(), report.InitialCapital, report.FinalCapital))
	for name, pnl := range report.IndicatorPnL {
		helpers.Logger.Debugln(fmt.Sprintf("  %s contributed %.2f", name, pnl))
	}

	if dbs := connectDatabase(); dbs != nil {
		if _, err := dbs.AddBacktestReport(*report); err != nil {
			helpers.Logger.Errorln("cannot persist backtest report:", err)
		}
	}
	return nil
}

// annualizationFactor derives the Sharpe scaling from the bar period
// assuming a 24/7 market.
func annualizationFactor(barPeriod time.Duration) float64 {
	if barPeriod <= 0 {
		return 1
	}
	periodsPerYear := float64(365*24*time.Hour) / float64(barPeriod)
	return math.Sqrt(periodsPerYear)
}

func connectDatabase() *database.DBService {
	dbHost := os.Getenv("dbHost")
	if dbHost == "" {
		return nil
	}
	dbs, err := database.NewDBService(dbHost, os.Getenv("dbPort"), os.Getenv("dbName"),
		os.Getenv("dbUser"), os.Getenv("dbPass"))
	if err != nil {
		helpers.Logger.Errorln("cannot connect to database:", err)
		return nil
	}
	return dbs
}

// ValidateSymbol rejects empty symbols before any file or series work.
func ValidateSymbol(c *cli.Context) error {
	if c.String("symbol") == "" {
		return fmt.Errorf("symbol is required")
	}
	return nil
}
