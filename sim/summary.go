package sim

import (
	"fmt"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
)

// Summary condenses a run into the numbers worth eyeballing.
type Summary struct {
	Distance    float64 `json:"distance"`
	MeanSpeed   float64 `json:"mean_speed"`
	MaxSpeed    float64 `json:"max_speed"`
	MaxAccel    float64 `json:"max_accel"`
	P95Accel    float64 `json:"p95_accel"`
	FinalS      float64 `json:"final_s"`
	FinalD      float64 `json:"final_d"`
	LaneChanges int     `json:"lane_changes"`
}

// Summarize computes a Summary from the steps and cycles of a result.
func Summarize(result *Result, dt float64) (Summary, error) {
	var summary Summary
	if len(result.Steps) == 0 {
		return summary, nil
	}
	speeds := lo.Map(result.Steps, func(step Step, _ int) float64 { return step.Speed })
	accels := make([]float64, 0, len(speeds))
	for i := 1; i < len(speeds); i++ {
		accels = append(accels, math.Abs(speeds[i]-speeds[i-1])/dt)
	}
	summary.Distance = floats.Sum(speeds) * dt

	var err error
	if summary.MeanSpeed, err = stats.Mean(speeds); err != nil {
		return Summary{}, errors.Wrap(err, "mean speed")
	}
	if summary.MaxSpeed, err = stats.Max(speeds); err != nil {
		return Summary{}, errors.Wrap(err, "max speed")
	}
	if len(accels) > 0 {
		if summary.MaxAccel, err = stats.Max(accels); err != nil {
			return Summary{}, errors.Wrap(err, "max accel")
		}
		if summary.P95Accel, err = stats.Percentile(accels, 95); err != nil {
			return Summary{}, errors.Wrap(err, "accel percentile")
		}
	}

	last := result.Steps[len(result.Steps)-1]
	summary.FinalS, summary.FinalD = last.S, last.D

	busy := false
	for _, c := range result.Cycles {
		if c.Busy && !busy {
			summary.LaneChanges++
		}
		busy = c.Busy
	}
	return summary, nil
}

// String renders the summary as a two column table.
func (s Summary) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"distance (m)", fmt.Sprintf("%.2f", s.Distance)},
		{"mean speed (m/s)", fmt.Sprintf("%.2f", s.MeanSpeed)},
		{"max speed (m/s)", fmt.Sprintf("%.2f", s.MaxSpeed)},
		{"max accel (m/s^2)", fmt.Sprintf("%.2f", s.MaxAccel)},
		{"p95 accel (m/s^2)", fmt.Sprintf("%.2f", s.P95Accel)},
		{"final s", fmt.Sprintf("%.2f", s.FinalS)},
		{"final d", fmt.Sprintf("%.2f", s.FinalD)},
		{"lane changes", s.LaneChanges},
	})
	return t.Render()
}
