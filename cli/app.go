// Package cli contains the lanetraj command line: closed-loop simulation, one-shot planning, and
// config schema output.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	generalFlagDebug      = "debug"
	mapFlagWaypoints      = "map"
	mapFlagMaxS           = "max-s"
	mapFlagRingRadius     = "ring-radius"
	simFlagConfig         = "config"
	simFlagOut            = "out"
	simFlagPathPlot       = "path-plot"
	simFlagSpeedPlot      = "speed-plot"
	simFlagTable          = "table"
	planFlagTelemetry     = "telemetry"
	planFlagPlannerConfig = "planner-config"
	planFlagState         = "state"
	planFlagLane          = "lane"
	planFlagSpeed         = "speed"
)

var mapFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  mapFlagWaypoints,
		Usage: "load a waypoint map from `FILE` of \"x y s dx dy\" lines; defaults to a straight road along +x",
	},
	&cli.Float64Flag{
		Name:  mapFlagMaxS,
		Usage: "lap length of the waypoint map; derived from the waypoints when unset",
	},
	&cli.Float64Flag{
		Name:  mapFlagRingRadius,
		Usage: "use a ring road of this centerline radius instead of a waypoint map",
	},
}

var app = &cli.App{
	Name:            "lanetraj",
	Usage:           "plan and simulate lane-keeping trajectories",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    generalFlagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:  "simulate",
			Usage: "drive a simulated vehicle through repeated planning cycles",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:     simFlagConfig,
					Aliases:  []string{"c"},
					Usage:    "load run configuration from `FILE`",
					Required: true,
				},
				&cli.StringFlag{
					Name:  simFlagOut,
					Usage: "write the full run history as JSON to `FILE`",
				},
				&cli.StringFlag{
					Name:  simFlagPathPlot,
					Usage: "plot the driven path to `FILE` (png, svg, pdf)",
				},
				&cli.StringFlag{
					Name:  simFlagSpeedPlot,
					Usage: "plot speed over time to `FILE` (png, svg, pdf)",
				},
				&cli.BoolFlag{
					Name:  simFlagTable,
					Usage: "print the summary as a table instead of JSON",
				},
			}, mapFlags...),
			Action: SimulateAction,
		},
		{
			Name:  "plan",
			Usage: "run a single planning cycle and print the trajectory as JSON",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:     planFlagTelemetry,
					Usage:    "read telemetry JSON from `FILE`",
					Required: true,
				},
				&cli.StringFlag{
					Name:  planFlagPlannerConfig,
					Usage: "load planner configuration from `FILE`",
				},
				&cli.StringFlag{
					Name:  planFlagState,
					Usage: "lane state JSON `FILE`, read if present and rewritten after planning",
				},
				&cli.IntFlag{
					Name:  planFlagLane,
					Usage: "target lane index",
				},
				&cli.Float64Flag{
					Name:     planFlagSpeed,
					Usage:    "target speed",
					Required: true,
				},
			}, mapFlags...),
			Action: PlanAction,
		},
		{
			Name:   "schema",
			Usage:  "print the JSON schema of the planner configuration",
			Action: SchemaAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
