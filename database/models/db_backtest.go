package models

import (
	"time"

	"gorm.io/gorm"
)

type BacktestRun struct {
	gorm.Model
	Symbol         string `gorm:"index"`
	InitialCapital float64
	FinalCapital   float64
	WinRate        float64
	ProfitFactor   float64
	SharpeRatio    float64
	MaxDrawdownPct float64
	Trades         []BacktestTrade
}

type BacktestTrade struct {
	gorm.Model
	BacktestRunID       uint `gorm:"index"`
	Direction           string
	EntryTime           time.Time
	EntryPrice          float64
	ExitTime            time.Time
	ExitPrice           float64
	Size                float64
	ProfitLoss          float64
	EntryReason         string
	ExitReason          string
	MaxAdverseExcursion float64
}
