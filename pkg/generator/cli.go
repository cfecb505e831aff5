package generator

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/timetable-maker/pkg/config"
	"github.com/travigo/timetable-maker/pkg/database"
	"github.com/travigo/timetable-maker/pkg/editor"
	"github.com/travigo/timetable-maker/pkg/export"
	"github.com/travigo/timetable-maker/pkg/prompt"
	"github.com/travigo/timetable-maker/pkg/stride"
	"github.com/travigo/timetable-maker/pkg/util"
	"github.com/urfave/cli/v2"
)

func configuredWorkers(c *cli.Context) int {
	if workers := c.Int("workers"); workers > 0 {
		return workers
	}
	if config.Current != nil {
		return config.Current.Generator.Workers
	}

	return 1
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "timetable",
		Usage: "Generate arrival timetables for a line group",
		Subcommands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "collect the arrivals of a group and export them, runs the wizard when no day is given",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "group", Aliases: []string{"g"}, Required: true, Usage: "group id or name"},
					&cli.StringSliceFlag{Name: "day", Aliases: []string{"d"}, Usage: "service day as YYYY-MM-DD, up to 5"},
					&cli.StringSliceFlag{Name: "nickname", Usage: "label for a day as YYYY-MM-DD=label"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: ".", Usage: "output directory"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: string(export.FormatCSV), Usage: "csv, html, text or json"},
					&cli.IntFlag{Name: "workers", Usage: "concurrent requests, defaults to generator.workers"},
				},
				Action: func(c *cli.Context) error {
					group, err := database.Find(c.Context, database.GlobalStore, c.String("group"))
					if err != nil {
						return err
					}
					if !group.IsTimetableReady() {
						log.Warn().Str("group", group.Name).Msg("Group has lines without a stop, they will be skipped")
					}

					location := stride.GlobalClient.Location
					session := NewSession(NewState(*group, time.Now(), location), stride.GlobalClient, configuredWorkers(c))
					p := prompt.New(c.App.Reader, c.App.Writer)

					if len(c.StringSlice("day")) == 0 {
						state, err := RunInteractive(c.Context, p, session, c.String("out"))
						if err != nil {
							return err
						}
						if state.EditRequested {
							_, err = editor.Open(c.Context, p, &state.Group, stride.GlobalClient, database.GlobalStore)
						}

						return err
					}

					format, err := export.ParseFormat(c.String("format"))
					if err != nil {
						return err
					}

					var days []time.Time
					for _, value := range c.StringSlice("day") {
						day, err := util.ParseDateKey(value, location)
						if err != nil {
							return fmt.Errorf("invalid day %q: %w", value, err)
						}
						days = append(days, day)
					}

					nicknames, err := ParseNicknames(c.StringSlice("nickname"))
					if err != nil {
						return err
					}

					state, err := Generate(c.Context, session, days, nicknames)
					if err != nil {
						return err
					}

					for _, requestError := range state.Errors {
						log.Error().Err(requestError.Err).Str("line", requestError.Line).Str("day", util.DateKey(requestError.Day)).Msg("Failed to fetch timetable")
					}

					if format == export.FormatText && c.String("out") == "-" {
						return export.WriteText(c.App.Writer, group.Name, state.Timetables, location)
					}

					paths, err := export.WriteFiles(c.String("out"), format, group.Name, state.Timetables, location)
					if err != nil {
						return err
					}
					for _, path := range paths {
						log.Info().Str("path", path).Msg("Wrote timetable")
					}

					return nil
				},
			},
		},
	}
}
