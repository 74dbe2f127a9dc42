package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gitlab.com/aoterocom/AOSignals/models"
)

// Provider reads bar series from <dataDir>/<symbol>_<interval>.csv
// files with a timestamp,open,high,low,close,volume header. Timestamps
// are RFC3339 or unix seconds.
type Provider struct {
	dataDir string
}

func NewProvider(dataDir string) *Provider {
	return &Provider{dataDir: dataDir}
}

func (p *Provider) GetBars(symbol string, interval string, limit int) ([]models.PriceBar, error) {
	path := filepath.Join(p.dataDir, fmt.Sprintf("%s_%s.csv", symbol, interval))
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	bars := make([]models.PriceBar, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < 6 {
			return nil, fmt.Errorf("%s: row %d has %d columns, want 6", path, i+2, len(record))
		}
		timestamp, err := parseTimestamp(record[0])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i+2, err)
		}
		values := make([]float64, 5)
		for j := 1; j <= 5; j++ {
			values[j-1], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d: %w", path, i+2, err)
			}
		}
		bars = append(bars, models.PriceBar{
			Timestamp: timestamp,
			Open:      values[0],
			High:      values[1],
			Low:       values[2],
			Close:     values[3],
			Volume:    values[4],
		})
	}

	if limit > 0 && len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}
	if err := models.ValidateBars(bars); err != nil {
		return nil, err
	}
	return bars, nil
}

func parseTimestamp(field string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, field); err == nil {
		return ts, nil
	}
	unix, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable timestamp %q", field)
	}
	return time.Unix(unix, 0).UTC(), nil
}
