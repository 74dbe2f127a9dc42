package models

import (
	"time"

	"gorm.io/gorm"
)

// CombinedSignalRecord is the persisted form of one aggregation result.
type CombinedSignalRecord struct {
	gorm.Model
	Symbol            string `gorm:"index"`
	Timestamp         time.Time
	Signal            string
	Confidence        float64
	Probability       float64
	IndicatorsUsed    int
	MarketCondition   string
	RecommendedAction string
	RiskLevel         string
}
