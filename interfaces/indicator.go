package interfaces

import (
	"github.com/sdcoffey/techan"
	"gitlab.com/aoterocom/AOSignals/models"
)

type (
	// Indicator is a single calculation unit turning a window of candles
	// into one signal judgment plus a confidence. Evaluate must be a pure
	// function of the supplied series, using only candles up to and
	// including the last one. It returns (nil, nil) when the window fails
	// a data-quality check: the caller treats that as "no opinion".
	Indicator interface {
		Name() string
		RequiredLookback() int
		Evaluate(series *techan.TimeSeries, symbol string) (*models.IndicatorResult, error)
	}
)
