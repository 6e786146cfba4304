package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/lanetraj/logging"
	"go.viam.com/lanetraj/planner"
	"go.viam.com/lanetraj/roadmap"
	"go.viam.com/lanetraj/sim"
)

func loggerFor(c *cli.Context) logging.Logger {
	if c.Bool(generalFlagDebug) {
		return logging.NewDebugLogger("lanetraj")
	}
	return logging.NewBlankLogger("lanetraj")
}

func loadMap(c *cli.Context) (roadmap.FrenetMap, error) {
	if path := c.String(mapFlagWaypoints); path != "" {
		if c.Float64(mapFlagRingRadius) > 0 {
			return nil, errors.Errorf("--%s and --%s are mutually exclusive", mapFlagWaypoints, mapFlagRingRadius)
		}
		return roadmap.ReadWaypointMap(path, c.Float64(mapFlagMaxS))
	}
	if r := c.Float64(mapFlagRingRadius); r > 0 {
		return roadmap.CircleMap{Radius: r}, nil
	}
	return roadmap.StraightMap{}, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeJSONFile(path string, v interface{}) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return writeJSON(f, v)
}

func readJSONFile(path string, v interface{}) error {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return errors.Wrapf(json.Unmarshal(data, v), "parsing %s", path)
}

// SimulateAction runs a closed-loop simulation and reports its summary.
func SimulateAction(c *cli.Context) error {
	cfg, err := sim.ReadConfig(c.String(simFlagConfig))
	if err != nil {
		return err
	}
	m, err := loadMap(c)
	if err != nil {
		return err
	}
	result, err := sim.Run(c.Context, cfg, m, loggerFor(c))
	if err != nil {
		return err
	}

	if out := c.String(simFlagOut); out != "" {
		if err := writeJSONFile(out, result); err != nil {
			return err
		}
	}
	if path := c.String(simFlagPathPlot); path != "" {
		if err := sim.SavePathPlot(result, path); err != nil {
			return errors.Wrap(err, "saving path plot")
		}
	}
	if path := c.String(simFlagSpeedPlot); path != "" {
		if err := sim.SaveSpeedPlot(result, path); err != nil {
			return errors.Wrap(err, "saving speed plot")
		}
	}
	if c.Bool(simFlagTable) {
		_, err := fmt.Fprintln(c.App.Writer, result.Summary.String())
		return err
	}
	return writeJSON(c.App.Writer, result.Summary)
}

// PlanAction runs one planning cycle from a telemetry file.
func PlanAction(c *cli.Context) error {
	var tl planner.Telemetry
	if err := readJSONFile(c.String(planFlagTelemetry), &tl); err != nil {
		return err
	}

	cfg := planner.DefaultConfig()
	if path := c.String(planFlagPlannerConfig); path != "" {
		var err error
		if cfg, err = planner.ReadConfig(path); err != nil {
			return err
		}
	}

	var state planner.LaneState
	statePath := c.String(planFlagState)
	if statePath != "" {
		if err := readJSONFile(statePath, &state); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	m, err := loadMap(c)
	if err != nil {
		return err
	}
	p, err := planner.New(cfg, loggerFor(c))
	if err != nil {
		return err
	}
	traj, err := p.Generate(&state, tl, m, c.Int(planFlagLane), c.Float64(planFlagSpeed))
	if err != nil {
		return err
	}

	if statePath != "" {
		if err := writeJSONFile(statePath, state); err != nil {
			return err
		}
	}
	return writeJSON(c.App.Writer, traj)
}

// SchemaAction prints the planner config schema.
func SchemaAction(c *cli.Context) error {
	return writeJSON(c.App.Writer, planner.ConfigSchema())
}
