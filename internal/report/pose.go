// Package report renders estimated trajectories: console pose lines, a
// trajectory table, a PNG plot and an interactive HTML chart.
package report

import (
	"fmt"
	"io"

	"github.com/banshee-data/deadreckoning/internal/fsutil"
	"github.com/banshee-data/deadreckoning/internal/odometry"
	"github.com/banshee-data/deadreckoning/internal/uncertain"
)

// PoseSummary is a pose reduced to per-coordinate statistics.
type PoseSummary struct {
	X       uncertain.Summary
	Y       uncertain.Summary
	Heading uncertain.Summary
}

// Cloud holds the raw (x, y) draws of a pose.
type Cloud struct {
	X []float32
	Y []float32
}

// SummarizePose summarizes each coordinate of p.
func SummarizePose[S any](e uncertain.Engine[S], p odometry.Pose[S]) PoseSummary {
	return PoseSummary{
		X:       e.Summarize(p.X),
		Y:       e.Summarize(p.Y),
		Heading: e.SummarizeAngle(p.Heading),
	}
}

// SummarizeTrajectory summarizes every pose in poses.
func SummarizeTrajectory[S any](e uncertain.Engine[S], poses []odometry.Pose[S]) []PoseSummary {
	out := make([]PoseSummary, len(poses))
	for i, p := range poses {
		out[i] = SummarizePose(e, p)
	}
	return out
}

// PoseCloud returns the position draws of p.
func PoseCloud[S any](e uncertain.Engine[S], p odometry.Pose[S]) Cloud {
	return Cloud{X: e.Values(p.X), Y: e.Values(p.Y)}
}

// FormatPose renders the pose at timestep index step as a single line.
func FormatPose(step int, p PoseSummary) string {
	return fmt.Sprintf("t=%d: x=%s, y=%s, θ=%s", step, p.X, p.Y, p.Heading)
}

// WriteFile creates path through fsys and hands the writer to render.
func WriteFile(fsys fsutil.FileSystem, path string, render func(io.Writer) error) error {
	f, err := fsutil.CreateWithParents(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
