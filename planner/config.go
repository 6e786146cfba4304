package planner

import (
	"encoding/json"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/lanetraj/spline"
)

const (
	// DefaultSpeedDelta is the largest change in speed allowed between consecutive steps.
	DefaultSpeedDelta = 0.13
	// DefaultStepDurationSec is the time between consecutive trajectory points.
	DefaultStepDurationSec = 0.02
	// DefaultLookaheadFactor scales target speed into the spacing between future anchors.
	DefaultLookaheadFactor = 1.4
	// DefaultLaneWidth is the width of every lane.
	DefaultLaneWidth = 4.0
	// DefaultHorizonCount is the number of points each emitted trajectory holds.
	DefaultHorizonCount = 50
)

// Config holds the tunable constants of the planner. Zero values take the defaults above.
type Config struct {
	SpeedDelta      float64 `json:"speed_delta,omitempty" jsonschema:"description=max speed change per step"`
	StepDurationSec float64 `json:"step_duration_sec,omitempty" jsonschema:"description=seconds between trajectory points"`
	LookaheadFactor float64 `json:"lookahead_factor,omitempty" jsonschema:"description=anchor spacing per unit of target speed"`
	LaneWidth       float64 `json:"lane_width,omitempty" jsonschema:"description=width of a lane"`
	HorizonCount    int     `json:"horizon_count,omitempty" jsonschema:"description=points per emitted trajectory"`
	Spline          string  `json:"spline,omitempty" jsonschema:"enum=natural,enum=akima,enum=fritsch_butland"`
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() Config {
	return Config{
		SpeedDelta:      DefaultSpeedDelta,
		StepDurationSec: DefaultStepDurationSec,
		LookaheadFactor: DefaultLookaheadFactor,
		LaneWidth:       DefaultLaneWidth,
		HorizonCount:    DefaultHorizonCount,
		Spline:          string(spline.Natural),
	}
}

func (cfg Config) withDefaults() Config {
	def := DefaultConfig()
	if cfg.SpeedDelta == 0 {
		cfg.SpeedDelta = def.SpeedDelta
	}
	if cfg.StepDurationSec == 0 {
		cfg.StepDurationSec = def.StepDurationSec
	}
	if cfg.LookaheadFactor == 0 {
		cfg.LookaheadFactor = def.LookaheadFactor
	}
	if cfg.LaneWidth == 0 {
		cfg.LaneWidth = def.LaneWidth
	}
	if cfg.HorizonCount == 0 {
		cfg.HorizonCount = def.HorizonCount
	}
	if cfg.Spline == "" {
		cfg.Spline = def.Spline
	}
	return cfg
}

// Validate ensures all parts of the config are valid. Every problem found is reported.
func (cfg *Config) Validate(path string) error {
	var err error
	positive := func(name string, v float64) {
		if !(v > 0) {
			err = multierr.Append(err, errors.Errorf("%s: %s must be positive, got %g", path, name, v))
		}
	}
	positive("speed_delta", cfg.SpeedDelta)
	positive("step_duration_sec", cfg.StepDurationSec)
	positive("lookahead_factor", cfg.LookaheadFactor)
	positive("lane_width", cfg.LaneWidth)
	if cfg.HorizonCount < 1 {
		err = multierr.Append(err, errors.Errorf("%s: horizon_count must be at least 1, got %d", path, cfg.HorizonCount))
	}
	if _, kindErr := spline.ParseKind(cfg.Spline); kindErr != nil {
		err = multierr.Append(err, errors.Wrapf(kindErr, "%s: spline", path))
	}
	return err
}

// ReadConfig loads a JSON config from disk, fills in defaults, and validates it.
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
	cfg = cfg.withDefaults()
	if err := cfg.Validate(path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigSchema returns the JSON schema describing Config.
func ConfigSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
