package report

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/banshee-data/deadreckoning/internal/fsutil"
	"github.com/banshee-data/deadreckoning/internal/odometry"
	"github.com/banshee-data/deadreckoning/internal/uncertain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exactTrajectory(t *testing.T) []odometry.Pose[float32] {
	t.Helper()
	p := odometry.Parameters{
		TrackWidth:        1,
		WheelConstant:     360,
		MaximumTimerCount: 65535,
		Timestep:          0.1,
	}
	rs := []odometry.RawReading{{Right: 230, Left: 460}, {Right: 230, Left: 460}, {Right: 230, Left: 460}}
	poses, err := odometry.Run[float32](uncertain.Exact{}, p, rs)
	require.NoError(t, err)
	return poses
}

func TestFormatPose(t *testing.T) {
	e := uncertain.Exact{}
	got := FormatPose(0, SummarizePose[float32](e, odometry.Pose[float32]{X: 1, Y: 2.5, Heading: 0}))
	assert.Equal(t, "t=0: x=1, y=2.5, θ=0", got)

	mc := uncertain.NewMonteCarlo(100, 1)
	pose := odometry.Pose[uncertain.Samples]{
		X:       mc.Uniform(0, 1),
		Y:       mc.Const(3),
		Heading: mc.Const(0),
	}
	line := FormatPose(7, SummarizePose[uncertain.Samples](mc, pose))
	assert.True(t, strings.HasPrefix(line, "t=7: x="))
	assert.Contains(t, line, " ± ")
	assert.Contains(t, line, "y=3,")
}

func TestSummarizeTrajectory(t *testing.T) {
	poses := exactTrajectory(t)
	traj := SummarizeTrajectory[float32](uncertain.Exact{}, poses)
	require.Len(t, traj, 3)
	assert.Equal(t, 0.0, traj[0].X.Mean)
	assert.InDelta(t, 0.11721165, traj[1].X.Mean, 1e-6)
	assert.InDelta(t, 0.07826087, traj[1].Heading.Mean, 1e-6)
	assert.Equal(t, 0.0, traj[1].X.StdDev)

	cloud := PoseCloud[float32](uncertain.Exact{}, poses[2])
	assert.Len(t, cloud.X, 1)
	assert.Len(t, cloud.Y, 1)
}

func TestSummarizePose_HeadingAcrossWrap(t *testing.T) {
	mc := uncertain.NewMonteCarlo(2000, 5)
	p := odometry.Parameters{TrackWidth: 1, WheelConstant: 360, MaximumTimerCount: 65535, Timestep: 0.1}
	rs := make([]odometry.RawReading, 11)
	for i := range rs {
		rs[i] = odometry.RawReading{Right: 230, Left: 230}
	}
	poses, err := odometry.Run[uncertain.Samples](mc, p, rs)
	require.NoError(t, err)

	last := SummarizePose[uncertain.Samples](mc, poses[len(poses)-1])
	assert.Less(t, math.Abs(math.Remainder(last.Heading.Mean, 2*math.Pi)), 5e-3)
	assert.Less(t, last.Heading.StdDev, 0.01)
}

func TestWriteTable(t *testing.T) {
	traj := SummarizeTrajectory[float32](uncertain.Exact{}, exactTrajectory(t))

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, traj, 0.1))
	out := buf.String()

	for _, header := range []string{"TIME (S)", "ΣX", "Θ"} {
		assert.Contains(t, out, header)
	}
	assert.Contains(t, out, "0.1172")
	assert.Contains(t, out, "0.2000")
	// borders, header, separator and three rows
	assert.Equal(t, 7, strings.Count(strings.TrimSpace(out), "\n")+1)
}

func TestWritePlot(t *testing.T) {
	mc := uncertain.NewMonteCarlo(200, 3)
	p := odometry.Parameters{TrackWidth: 1, WheelConstant: 360, MaximumTimerCount: 65535, Timestep: 0.1}
	rs := []odometry.RawReading{{Right: 230, Left: 460}, {Right: 230, Left: 460}, {Right: 230, Left: 460}}
	poses, err := odometry.Run[uncertain.Samples](mc, p, rs)
	require.NoError(t, err)

	traj := SummarizeTrajectory[uncertain.Samples](mc, poses)
	cloud := PoseCloud[uncertain.Samples](mc, poses[len(poses)-1])
	require.Len(t, cloud.X, 200)

	var buf bytes.Buffer
	require.NoError(t, WritePlot(&buf, "run", traj, cloud))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")), "output is not a PNG")

	assert.Error(t, WritePlot(io.Discard, "empty", nil, Cloud{}))
}

func TestWriteChart(t *testing.T) {
	traj := SummarizeTrajectory[float32](uncertain.Exact{}, exactTrajectory(t))
	cloud := Cloud{X: make([]float32, 5000), Y: make([]float32, 5000)}

	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, "Dead reckoning", "run=abc", traj, cloud))
	out := buf.String()
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "Dead reckoning")
	assert.Contains(t, out, "run=abc")
	assert.Contains(t, out, "mean path")
	assert.Contains(t, out, "final samples")
}

func TestWriteFile(t *testing.T) {
	m := fsutil.NewMemoryFileSystem()
	err := WriteFile(m, "out/reports/run.txt", func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	})
	require.NoError(t, err)
	assert.True(t, m.IsDir("out/reports"))
	data, err := m.ReadFile("out/reports/run.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	boom := errors.New("boom")
	err = WriteFile(m, "out/bad.txt", func(io.Writer) error { return boom })
	assert.ErrorIs(t, err, boom)
}
