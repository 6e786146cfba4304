package sim

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/lanetraj/planner"
)

// LaneChange switches the requested lane starting at Cycle.
type LaneChange struct {
	Cycle int `json:"cycle"`
	Lane  int `json:"lane"`
}

// Start is where the vehicle begins, in Frenet coordinates.
type Start struct {
	S     float64 `json:"s"`
	D     float64 `json:"d"`
	Speed float64 `json:"speed"`
}

// Config describes a closed-loop run.
type Config struct {
	Planner        planner.Config `json:"planner"`
	Cycles         int            `json:"cycles"`
	PointsPerCycle int            `json:"points_per_cycle"`
	TargetLane     int            `json:"target_lane"`
	TargetSpeed    float64        `json:"target_speed"`
	Start          Start          `json:"start"`
	LaneSchedule   []LaneChange   `json:"lane_schedule,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	var err error
	if cfg.Cycles < 1 {
		err = multierr.Append(err, errors.Errorf("%s: cycles must be at least 1, got %d", path, cfg.Cycles))
	}
	if cfg.PointsPerCycle < 1 {
		err = multierr.Append(err, errors.Errorf("%s: points_per_cycle must be at least 1, got %d", path, cfg.PointsPerCycle))
	}
	if cfg.TargetLane < 0 {
		err = multierr.Append(err, errors.Errorf("%s: target_lane must be non-negative, got %d", path, cfg.TargetLane))
	}
	if cfg.TargetSpeed < 0 {
		err = multierr.Append(err, errors.Errorf("%s: target_speed must be non-negative, got %g", path, cfg.TargetSpeed))
	}
	for i, lc := range cfg.LaneSchedule {
		if lc.Lane < 0 || lc.Cycle < 0 {
			err = multierr.Append(err, errors.Errorf("%s: lane_schedule[%d] needs non-negative cycle and lane", path, i))
		}
		if i > 0 && lc.Cycle <= cfg.LaneSchedule[i-1].Cycle {
			err = multierr.Append(err, errors.Errorf("%s: lane_schedule[%d] cycles must increase", path, i))
		}
	}
	return err
}

// requestedLane returns the lane asked for on the given cycle.
func (cfg *Config) requestedLane(cycle int) int {
	lane := cfg.TargetLane
	for _, lc := range cfg.LaneSchedule {
		if lc.Cycle > cycle {
			break
		}
		lane = lc.Lane
	}
	return lane
}

// ReadConfig loads and validates a JSON run config.
func ReadConfig(path string) (Config, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing %s", path)
	}
	if err := cfg.Validate(path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
