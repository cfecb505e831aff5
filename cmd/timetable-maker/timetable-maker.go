package main

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/timetable-maker/pkg/config"
	"github.com/travigo/timetable-maker/pkg/database"
	"github.com/travigo/timetable-maker/pkg/editor"
	"github.com/travigo/timetable-maker/pkg/generator"
	"github.com/travigo/timetable-maker/pkg/shell"
	"github.com/travigo/timetable-maker/pkg/stride"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func setupLogging(cfg *config.Config) {
	// stdout carries the wizards, logs go to stderr
	if !strings.EqualFold(cfg.Log.Format, "JSON") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	if cfg.Log.Debug {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}
}

func main() {
	app := &cli.App{
		Name:        "timetable-maker",
		Usage:       "Build line groups and print their arrival timetables",
		Description: "Line groups are searched against the Open Bus Stride API and stored locally",

		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				EnvVars: []string{"TIMETABLE_CONFIG"},
			},
		}, shell.Flags()...),

		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			config.Current = cfg

			setupLogging(cfg)

			if err := stride.SetupClient(cfg); err != nil {
				return err
			}

			return database.Connect(cfg.Store)
		},

		After: func(c *cli.Context) error {
			if database.GlobalStore == nil {
				return nil
			}

			return database.GlobalStore.Close()
		},

		Action: shell.Action,

		Commands: []*cli.Command{
			shell.RegisterCLI(),
			editor.RegisterCLI(),
			generator.RegisterCLI(),
			stride.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
