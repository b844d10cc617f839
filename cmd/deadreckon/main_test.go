package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/banshee-data/deadreckoning/internal/encoderport"
	"github.com/banshee-data/deadreckoning/internal/fsutil"
	"github.com/banshee-data/deadreckoning/internal/monitoring"
	"github.com/banshee-data/deadreckoning/internal/odometry"
	"github.com/banshee-data/deadreckoning/internal/readings"
	"github.com/banshee-data/deadreckoning/internal/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	monitoring.SetLogger(nil)
	os.Exit(m.Run())
}

type nopPort struct{ io.Reader }

func (nopPort) Close() error { return nil }

type testEnv struct {
	env
	out  *bytes.Buffer
	mem  *fsutil.MemoryFileSystem
	port string
}

func newTestEnv() *testEnv {
	te := &testEnv{out: &bytes.Buffer{}, mem: fsutil.NewMemoryFileSystem()}
	te.env = env{
		stdout: te.out,
		fsys:   te.mem,
		clock:  timeutil.NewMockClock(time.Unix(1700000000, 0)),
		open: func(path string, opts encoderport.PortOptions) (encoderport.SerialPorter, error) {
			if path != "/dev/ttyENC0" {
				return nil, errors.New("no such device")
			}
			return nopPort{strings.NewReader(te.port)}, nil
		},
	}
	return te
}

func (te *testEnv) lines() []string {
	return strings.Split(strings.TrimSpace(te.out.String()), "\n")
}

func TestRun_DefaultSequenceExact(t *testing.T) {
	te := newTestEnv()
	require.NoError(t, run(context.Background(), []string{"-engine", "exact"}, te.env))

	lines := te.lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "t=0: x=0, y=0, θ=0", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "t=80: x=-0.03"), lines[1])
	assert.Contains(t, lines[1], "θ=6.26")
	assert.NotContains(t, lines[1], "±")
}

func TestRun_InputFile(t *testing.T) {
	te := newTestEnv()
	te.mem.WriteFile("logs/run.csv", []byte("230,460\n230,460\n"))
	t.Cleanup(func() { monitoring.SetDebug(false) })

	require.NoError(t, run(context.Background(), []string{"-v", "-engine", "exact", "-i", "logs/run.csv"}, te.env))
	assert.True(t, monitoring.DebugEnabled())
	lines := te.lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "t=1: x=0.1172"), lines[1])
}

func TestRun_MonteCarloSeeded(t *testing.T) {
	args := []string{"-samples", "50", "-seed", "7"}

	a := newTestEnv()
	require.NoError(t, run(context.Background(), args, a.env))
	b := newTestEnv()
	require.NoError(t, run(context.Background(), args, b.env))

	assert.Equal(t, a.out.String(), b.out.String())
	assert.Contains(t, a.lines()[1], "±")
}

func TestRun_ConfigFile(t *testing.T) {
	const path = "configs/params.json"
	params := []byte(`{"engine": "exact", "initial_state": "1:2:0"}`)

	te := newTestEnv()
	te.mem.WriteFile(path, params)
	require.NoError(t, run(context.Background(), []string{"-config", path}, te.env))
	assert.Equal(t, "t=0: x=1, y=2, θ=0", te.lines()[0])

	// explicit flags win over the file
	te = newTestEnv()
	te.mem.WriteFile(path, params)
	require.NoError(t, run(context.Background(), []string{"-config", path, "-s", "0:0:0", "-engine", "montecarlo", "-samples", "20", "-seed", "1"}, te.env))
	assert.Equal(t, "t=0: x=0, y=0, θ=0", te.lines()[0])
	assert.Contains(t, te.lines()[1], "±")

	te = newTestEnv()
	te.mem.WriteFile(path, params)
	err := run(context.Background(), []string{"-config", "configs/missing.json"}, te.env)
	assert.Error(t, err)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		target error
	}{
		{name: "zero track width", args: []string{"-w", "0"}, target: odometry.ErrInvalidParameter},
		{name: "negative timestep", args: []string{"-t", "-0.1"}, target: odometry.ErrInvalidParameter},
		{name: "single reading", args: []string{"-i", "one.csv"}, target: odometry.ErrInsufficientInput},
		{name: "malformed file", args: []string{"-i", "bad.csv"}, target: readings.ErrMalformed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			te := newTestEnv()
			te.mem.WriteFile("one.csv", []byte("230,460\n"))
			te.mem.WriteFile("bad.csv", []byte("230,460\n230\n"))

			err := run(context.Background(), tc.args, te.env)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.target)
			assert.Empty(t, te.out.String())
		})
	}
}

func TestRun_BadArguments(t *testing.T) {
	for _, args := range [][]string{
		{"-engine", "quantum"},
		{"-s", "1:2"},
		{"-samples", "1"},
		{"extra"},
		{"-nope"},
		{"-chart", "/etc/deadreckon.html"},
	} {
		te := newTestEnv()
		te.env.stdout = io.Discard
		assert.Error(t, run(context.Background(), args, te.env), "args %v", args)
	}
}

func TestRun_Version(t *testing.T) {
	te := newTestEnv()
	require.NoError(t, run(context.Background(), []string{"-version"}, te.env))
	assert.True(t, strings.HasPrefix(te.out.String(), "deadreckon dev"))
}

func TestRun_TrajectoryAndReports(t *testing.T) {
	te := newTestEnv()
	args := []string{"-samples", "100", "-seed", "3", "-trajectory", "-plot", "out/run.png", "-chart", "out/run.html"}
	require.NoError(t, run(context.Background(), args, te.env))

	assert.Contains(t, te.out.String(), "TIME (S)")

	png, err := te.mem.ReadFile("out/run.png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	html, err := te.mem.ReadFile("out/run.html")
	require.NoError(t, err)
	assert.Contains(t, string(html), "readings=81")
}

func TestRun_SerialCapture(t *testing.T) {
	te := newTestEnv()
	te.port = "230,460\ngarbage\n230,460\n230,460\n230,460\n"

	require.NoError(t, run(context.Background(), []string{"-engine", "exact", "-port", "/dev/ttyENC0", "-count", "3"}, te.env))
	lines := te.lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "t=2: "), lines[1])

	te = newTestEnv()
	err := run(context.Background(), []string{"-port", "/dev/ttyMISSING"}, te.env)
	assert.ErrorContains(t, err, "no such device")
}
