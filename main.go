package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gitlab.com/aoterocom/AOSignals/bot"
)

func main() {
	cwd, _ := os.Getwd()
	if err := godotenv.Load(cwd + "/conf.env"); err != nil {
		log.Debugln("no conf.env file, relying on environment")
	}

	b := bot.Bot{}

	commonFlags := []cli.Flag{
		&cli.StringFlag{Name: "symbol", Usage: "market symbol, e.g. EURUSD", Required: true},
		&cli.StringFlag{Name: "interval", Usage: "bar interval, e.g. 1h", Value: "1h"},
		&cli.StringFlag{Name: "data-dir", Usage: "directory holding <symbol>_<interval>.csv files", Value: "data"},
		&cli.IntFlag{Name: "limit", Usage: "use only the latest N bars (0 = all)"},
	}

	app := &cli.App{
		Name:  "aosignals",
		Usage: "rule-based market signal generator and backtest simulator",
		Commands: []*cli.Command{
			{
				Name:   "signal",
				Usage:  "evaluate the combined signal on the latest bar",
				Flags:  commonFlags,
				Before: bot.ValidateSymbol,
				Action: b.RunSignal,
			},
			{
				Name:  "backtest",
				Usage: "replay the signal engine over historical bars",
				Flags: append(commonFlags,
					&cli.Float64Flag{Name: "capital", Usage: "initial capital"},
					&cli.Float64Flag{Name: "min-probability", Usage: "entry probability gate"},
					&cli.Float64Flag{Name: "stop", Usage: "stop-loss distance as price fraction"},
					&cli.Float64Flag{Name: "target", Usage: "take-profit distance as price fraction"},
				),
				Before: bot.ValidateSymbol,
				Action: b.RunBacktest,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}
