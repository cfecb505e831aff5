package stride

import (
	"errors"
	"fmt"

	"github.com/rodaine/table"
	"github.com/travigo/timetable-maker/pkg/ctdf"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "lines",
		Usage: "Query the Stride API for lines and their stops",
		Subcommands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "list the route variants of a line number",
				ArgsUsage: "<line number>",
				Action: func(c *cli.Context) error {
					lineNumber := c.Args().First()
					if lineNumber == "" {
						return errors.New("a line number is required")
					}

					routes, err := GlobalClient.ListRouteVariants(c.Context, lineNumber)
					if err != nil {
						return err
					}
					routes = ctdf.UniqueRouteVariants(routes)

					if len(routes) == 0 {
						fmt.Fprintf(c.App.Writer, "No routes found for line %s\n", lineNumber)
						return nil
					}

					tbl := table.New("Line", "Route", "Agency", "Mkt", "Direction", "Alternative").WithWriter(c.App.Writer)
					for _, route := range routes {
						tbl.AddRow(route.ShortName, route.LongName, route.Agency, route.MarketCode, route.Direction, route.Alternative)
					}
					tbl.Print()

					return nil
				},
			},
			{
				Name:  "stops",
				Usage: "list the stops of a route variant",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mkt", Required: true, Usage: "route market code"},
					&cli.StringFlag{Name: "direction", Required: true, Usage: "route direction"},
					&cli.StringFlag{Name: "alternative", Value: "#", Usage: "route alternative"},
				},
				Action: func(c *cli.Context) error {
					line := ctdf.SelectedLine{
						MarketCode:  c.String("mkt"),
						Direction:   c.String("direction"),
						Alternative: c.String("alternative"),
					}
					line.ID = line.Identity().ID()
					line.ShortName = line.ID

					stops, err := GlobalClient.ListStopsForRoute(c.Context, line)
					if err != nil {
						return err
					}

					tbl := table.New("Code", "Name", "City").WithWriter(c.App.Writer)
					for _, stop := range ctdf.UniqueStops(stops) {
						tbl.AddRow(stop.StopCode, stop.StopName, stop.StopCity)
					}
					tbl.Print()

					return nil
				},
			},
		},
	}
}
