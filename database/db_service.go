package database

import (
	"math"

	database "gitlab.com/aoterocom/AOSignals/database/models"
	"gitlab.com/aoterocom/AOSignals/models"
	"gitlab.com/aoterocom/AOSignals/models/analytics"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type DBService struct {
	DB *gorm.DB
}

func NewDBService(dbHost string, dbPort string, dbName string, dbUser string, dbPass string) (*DBService, error) {
	dsn := dbUser + ":" + dbPass + "@tcp(" + dbHost + ":" + dbPort + ")/" + dbName + "?charset=utf8mb4&parseTime=True&loc=Local"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	dbs := &DBService{
		DB: db,
	}

	err = dbs.DB.AutoMigrate(&database.CombinedSignalRecord{}, &database.BacktestRun{}, &database.BacktestTrade{})
	if err != nil {
		return nil, err
	}

	return dbs, nil
}

// AddCombinedSignal persists one aggregation result.
func (dbs *DBService) AddCombinedSignal(signal models.CombinedSignal) (uint, error) {
	record := database.CombinedSignalRecord{
		Symbol:            signal.Symbol,
		Timestamp:         signal.Timestamp,
		Signal:            signal.Signal.String(),
		Confidence:        signal.Confidence,
		Probability:       signal.Probability,
		IndicatorsUsed:    signal.IndicatorsUsed,
		MarketCondition:   string(signal.MarketCondition),
		RecommendedAction: signal.RecommendedAction,
		RiskLevel:         string(signal.RiskLevel),
	}
	result := dbs.DB.Create(&record)
	return record.ID, result.Error
}

// AddBacktestReport persists a run and its trades.
func (dbs *DBService) AddBacktestReport(report analytics.BacktestReport) (uint, error) {
	profitFactor := report.ProfitFactor
	if math.IsInf(profitFactor, 1) {
		// MySQL has no +Inf double
		profitFactor = math.MaxFloat64
	}

	run := database.BacktestRun{
		Symbol:         report.Symbol,
		InitialCapital: report.InitialCapital,
		FinalCapital:   report.FinalCapital,
		WinRate:        report.WinRate,
		ProfitFactor:   profitFactor,
		SharpeRatio:    report.SharpeRatio,
		MaxDrawdownPct: report.MaxDrawdownPct,
	}
	for _, trade := range report.Trades {
		run.Trades = append(run.Trades, database.BacktestTrade{
			Direction:           string(trade.Direction),
			EntryTime:           trade.EntryTime,
			EntryPrice:          trade.EntryPrice,
			ExitTime:            trade.ExitTime,
			ExitPrice:           trade.ExitPrice,
			Size:                trade.Size,
			ProfitLoss:          trade.ProfitLoss,
			EntryReason:         trade.EntryReason,
			ExitReason:          string(trade.ExitReason),
			MaxAdverseExcursion: trade.MaxAdverseExcursion,
		})
	}
	result := dbs.DB.Create(&run)
	return run.ID, result.Error
}
