package shell

import (
	"github.com/travigo/timetable-maker/pkg/config"
	"github.com/travigo/timetable-maker/pkg/database"
	"github.com/travigo/timetable-maker/pkg/prompt"
	"github.com/travigo/timetable-maker/pkg/stride"
	"github.com/urfave/cli/v2"
)

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: ".", Usage: "directory exports are written to"},
	}
}

// Action runs the main menu, it is also what the bare binary does
func Action(c *cli.Context) error {
	workers := 1
	if config.Current != nil {
		workers = config.Current.Generator.Workers
	}

	s := &Shell{
		Prompter:        prompt.New(c.App.Reader, c.App.Writer),
		Store:           database.GlobalStore,
		API:             stride.GlobalClient,
		Location:        stride.GlobalClient.Location,
		Workers:         workers,
		OutputDirectory: c.String("out"),
	}

	return s.Run(c.Context)
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:   "shell",
		Usage:  "Interactive menu over the line groups",
		Flags:  Flags(),
		Action: Action,
	}
}
