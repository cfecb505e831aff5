package editor

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/travigo/timetable-maker/pkg/ctdf"
	"github.com/travigo/timetable-maker/pkg/database"
	"github.com/travigo/timetable-maker/pkg/prompt"
	"github.com/travigo/timetable-maker/pkg/stride"
	"github.com/urfave/cli/v2"
)

func groupArgument(c *cli.Context) (*ctdf.LineGroup, error) {
	idOrName := c.Args().First()
	if idOrName == "" {
		return nil, errors.New("a group id or name is required")
	}

	return database.Find(c.Context, database.GlobalStore, idOrName)
}

func newPrompter(c *cli.Context) *prompt.Prompter {
	return prompt.New(c.App.Reader, c.App.Writer)
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "groups",
		Usage: "Manage line groups",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list every group",
				Action: func(c *cli.Context) error {
					groups, err := database.GlobalStore.List(c.Context)
					if err != nil {
						return err
					}

					rows := make([][]any, 0, len(groups))
					for _, group := range groups {
						ready := "no"
						if group.IsTimetableReady() {
							ready = "yes"
						}
						rows = append(rows, []any{group.ID, group.Name, len(group.Lines), ready})
					}
					newPrompter(c).Table([]any{"ID", "Name", "Lines", "Ready"}, rows)

					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "show the lines and stops of a group",
				ArgsUsage: "<id or name>",
				Action: func(c *cli.Context) error {
					group, err := groupArgument(c)
					if err != nil {
						return err
					}

					p := newPrompter(c)
					p.Printf("%s (%s)\n", group.Name, group.ID)
					printLines(p, *group)

					return nil
				},
			},
			{
				Name:  "create",
				Usage: "create a group with the editor wizard",
				Action: func(c *cli.Context) error {
					_, err := Open(c.Context, newPrompter(c), nil, stride.GlobalClient, database.GlobalStore)
					return err
				},
			},
			{
				Name:      "edit",
				Usage:     "edit a group with the editor wizard",
				ArgsUsage: "<id or name>",
				Action: func(c *cli.Context) error {
					group, err := groupArgument(c)
					if err != nil {
						return err
					}

					_, err = Open(c.Context, newPrompter(c), group, stride.GlobalClient, database.GlobalStore)
					return err
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a group",
				ArgsUsage: "<id or name>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "do not ask for confirmation"},
				},
				Action: func(c *cli.Context) error {
					group, err := groupArgument(c)
					if err != nil {
						return err
					}

					_, err = Delete(c.Context, newPrompter(c), database.GlobalStore, *group, c.Bool("yes"))
					return err
				},
			},
			{
				Name:      "export",
				Usage:     "write every group as JSON",
				ArgsUsage: "<file, - for stdout>",
				Action: func(c *cli.Context) error {
					var writer io.Writer = c.App.Writer
					if path := c.Args().First(); path != "" && path != "-" {
						file, err := os.Create(path)
						if err != nil {
							return err
						}
						defer file.Close()
						writer = file
					}

					count, err := database.ExportGroups(c.Context, database.GlobalStore, writer)
					if err != nil {
						return err
					}

					fmt.Fprintf(c.App.ErrWriter, "Exported %d groups\n", count)
					return nil
				},
			},
			{
				Name:      "import",
				Usage:     "upsert every group of a JSON file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return errors.New("a file is required")
					}

					file, err := os.Open(path)
					if err != nil {
						return err
					}
					defer file.Close()

					count, err := database.ImportGroups(c.Context, database.GlobalStore, file)
					if err != nil {
						return err
					}

					fmt.Fprintf(c.App.ErrWriter, "Imported %d groups\n", count)
					return nil
				},
			},
		},
	}
}
