package interfaces

import "gitlab.com/aoterocom/AOSignals/models"

type (
	// DataProvider supplies contiguous, time-ordered bar series. The
	// provider guarantees strictly increasing timestamps; the core still
	// re-validates and rejects violations as InvalidInputError.
	DataProvider interface {
		GetBars(symbol string, interval string, limit int) ([]models.PriceBar, error)
	}
)
