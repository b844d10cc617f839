// Command deadreckon estimates the pose of a differential-drive robot from
// wheel encoder timer counts and reports the start and end of the trajectory
// with its uncertainty.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/banshee-data/deadreckoning/internal/config"
	"github.com/banshee-data/deadreckoning/internal/encoderport"
	"github.com/banshee-data/deadreckoning/internal/fsutil"
	"github.com/banshee-data/deadreckoning/internal/monitoring"
	"github.com/banshee-data/deadreckoning/internal/odometry"
	"github.com/banshee-data/deadreckoning/internal/readings"
	"github.com/banshee-data/deadreckoning/internal/report"
	"github.com/banshee-data/deadreckoning/internal/security"
	"github.com/banshee-data/deadreckoning/internal/timeutil"
	"github.com/banshee-data/deadreckoning/internal/uncertain"
	"github.com/banshee-data/deadreckoning/internal/version"
)

// env carries the process dependencies so tests can swap them out.
type env struct {
	stdout io.Writer
	fsys   fsutil.FileSystem
	clock  timeutil.Clock
	open   encoderport.Opener
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := env{
		stdout: os.Stdout,
		fsys:   fsutil.OSFileSystem{},
		clock:  timeutil.RealClock{},
		open:   encoderport.Open,
	}
	if err := run(ctx, os.Args[1:], e); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("deadreckon: %v", err)
	}
}

func run(ctx context.Context, args []string, e env) error {
	fs, f := newFlagSet("deadreckon")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if f.version {
		fmt.Fprintf(e.stdout, "deadreckon %s\n", version.String())
		return nil
	}
	monitoring.SetDebug(f.verbose)

	for _, out := range []string{f.plotPath, f.chartPath} {
		if out == "" {
			continue
		}
		if err := security.ValidateOutputPath(out); err != nil {
			return err
		}
	}

	cfg := config.DefaultParameterConfig()
	if f.configPath != "" {
		loaded, err := config.LoadParameterConfig(e.fsys, f.configPath)
		if err != nil {
			return err
		}
		cfg.Merge(loaded)
	}
	overrides, err := f.overrides(fs)
	if err != nil {
		return err
	}
	cfg.Merge(overrides)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	rs, err := loadReadings(ctx, f, e)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log.Printf("run %s: %d readings, engine=%s", runID, len(rs), cfg.GetEngine())

	switch cfg.GetEngine() {
	case config.EngineExact:
		return estimate[float32](uncertain.Exact{}, cfg.Parameters(), rs, runID, f, e)
	case config.EngineMonteCarlo:
		seed, ok := cfg.GetSeed()
		if !ok {
			seed = rand.Uint64()
		}
		monitoring.Debugf("monte carlo: samples=%d seed=%d", cfg.GetSamples(), seed)
		mc := uncertain.NewMonteCarlo(cfg.GetSamples(), seed)
		return estimate[uncertain.Samples](mc, cfg.Parameters(), rs, runID, f, e)
	default:
		return fmt.Errorf("unknown engine %q", cfg.GetEngine())
	}
}

// loadReadings picks the reading source: a serial device, a CSV file, or
// the built-in sequence.
func loadReadings(ctx context.Context, f *cliFlags, e env) ([]odometry.RawReading, error) {
	switch {
	case f.port != "":
		port, err := e.open(f.port, encoderport.PortOptions{BaudRate: f.baud})
		if err != nil {
			return nil, fmt.Errorf("failed to open encoder port %s: %w", f.port, err)
		}
		r := encoderport.NewReader(port, e.clock, f.portTimeout)
		defer r.Close()

		rs, err := r.Collect(ctx, f.count)
		if skipped := r.Skipped(); skipped > 0 {
			log.Printf("skipped %d malformed lines from %s", skipped, f.port)
		}
		if err != nil {
			if len(rs) == 0 || !(errors.Is(err, encoderport.ErrIdle) || errors.Is(err, context.Canceled)) {
				return nil, err
			}
			log.Printf("capture stopped after %d readings: %v", len(rs), err)
		}
		return rs, nil

	case f.input != "":
		return readings.Load(e.fsys, f.input)

	default:
		return readings.Default(), nil
	}
}

func estimate[S any](eng uncertain.Engine[S], p odometry.Parameters, rs []odometry.RawReading, runID string, f *cliFlags, e env) error {
	start := e.clock.Now()
	est := odometry.NewEstimator(eng, p)
	poses, err := est.Run(rs)
	if err != nil {
		return err
	}

	traj := report.SummarizeTrajectory(eng, poses)
	if monitoring.DebugEnabled() {
		for i, ps := range traj {
			monitoring.Debugf("%s", report.FormatPose(i, ps))
		}
	}

	last := len(traj) - 1
	fmt.Fprintln(e.stdout, report.FormatPose(0, traj[0]))
	fmt.Fprintln(e.stdout, report.FormatPose(last, traj[last]))

	if f.trajectory {
		if err := report.WriteTable(e.stdout, traj, p.Timestep); err != nil {
			return err
		}
	}

	cloud := report.PoseCloud(eng, poses[last])
	title := "Dead reckoning trajectory"
	if f.plotPath != "" {
		err := report.WriteFile(e.fsys, f.plotPath, func(w io.Writer) error {
			return report.WritePlot(w, title, traj, cloud)
		})
		if err != nil {
			return err
		}
		log.Printf("wrote trajectory plot to %s", f.plotPath)
	}
	if f.chartPath != "" {
		subtitle := fmt.Sprintf("run=%s readings=%d", runID, len(rs))
		err := report.WriteFile(e.fsys, f.chartPath, func(w io.Writer) error {
			return report.WriteChart(w, title, subtitle, traj, cloud)
		})
		if err != nil {
			return err
		}
		log.Printf("wrote trajectory chart to %s", f.chartPath)
	}

	log.Printf("run %s: integrated %d steps in %s", runID, last, e.clock.Since(start))
	return nil
}
