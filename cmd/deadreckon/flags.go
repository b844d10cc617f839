package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/banshee-data/deadreckoning/internal/config"
	"github.com/banshee-data/deadreckoning/internal/encoderport"
)

type cliFlags struct {
	configPath string
	input      string

	trackWidth        float64
	wheelConstant     float64
	maximumTimerCount float64
	timestep          float64
	initialState      string

	engine  string
	samples int
	seed    uint64

	trajectory bool
	plotPath   string
	chartPath  string

	port        string
	baud        int
	count       int
	portTimeout time.Duration

	version bool
	verbose bool
}

func newFlagSet(name string) (*flag.FlagSet, *cliFlags) {
	def := config.DefaultParameterConfig()
	f := &cliFlags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&f.configPath, "config", "", "Path to a JSON parameter file (see "+config.DefaultConfigPath+")")
	fs.StringVar(&f.input, "i", "", "CSV file of right,left timer counts (default: built-in circle sequence)")

	fs.Float64Var(&f.trackWidth, "w", def.GetTrackWidth(), "Track width: distance between the wheels")
	fs.Float64Var(&f.wheelConstant, "k", def.GetWheelConstant(), "Wheel constant: distance per timer count")
	fs.Float64Var(&f.maximumTimerCount, "m", def.GetMaximumTimerCount(), "Maximum timer count before the encoder timer saturates")
	fs.Float64Var(&f.timestep, "t", def.GetTimestep(), "Timestep between readings")
	fs.StringVar(&f.initialState, "s", "0:0:0", "Initial state as x:y:theta")

	fs.StringVar(&f.engine, "engine", def.GetEngine(), "Uncertainty engine: "+config.EngineMonteCarlo+" or "+config.EngineExact)
	fs.IntVar(&f.samples, "samples", def.GetSamples(), "Monte Carlo sample count")
	fs.Uint64Var(&f.seed, "seed", 0, "Monte Carlo seed (default: random)")

	fs.BoolVar(&f.trajectory, "trajectory", false, "Print the full trajectory table")
	fs.StringVar(&f.plotPath, "plot", "", "Write a PNG trajectory plot to this path")
	fs.StringVar(&f.chartPath, "chart", "", "Write an HTML trajectory chart to this path")

	fs.StringVar(&f.port, "port", "", "Capture readings from this serial device instead of a file")
	fs.IntVar(&f.baud, "baud", encoderport.DefaultBaudRate, "Serial baud rate")
	fs.IntVar(&f.count, "count", 0, "Number of readings to capture from the serial device (0: until idle)")
	fs.DurationVar(&f.portTimeout, "port-timeout", 5*time.Second, "Stop capturing after the device is silent this long")

	fs.BoolVar(&f.version, "version", false, "Print version and exit")
	fs.BoolVar(&f.verbose, "v", false, "Verbose per-step logging")

	return fs, f
}

// overrides returns a config holding only the parameters set explicitly on
// the command line, so flag defaults never mask values from -config.
func (f *cliFlags) overrides(fs *flag.FlagSet) (*config.ParameterConfig, error) {
	o := config.EmptyParameterConfig()
	var err error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "w":
			o.TrackWidth = &f.trackWidth
		case "k":
			o.WheelConstant = &f.wheelConstant
		case "m":
			o.MaximumTimerCount = &f.maximumTimerCount
		case "t":
			o.Timestep = &f.timestep
		case "s":
			if _, perr := config.ParseInitialState(f.initialState); perr != nil && err == nil {
				err = fmt.Errorf("invalid -s: %w", perr)
			}
			o.InitialState = &f.initialState
		case "engine":
			o.Engine = &f.engine
		case "samples":
			o.Samples = &f.samples
		case "seed":
			o.Seed = &f.seed
		}
	})
	return o, err
}
