package config

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/banshee-data/deadreckoning/internal/fsutil"
	"github.com/banshee-data/deadreckoning/internal/odometry"
	"github.com/banshee-data/deadreckoning/internal/uncertain"
)

// DefaultConfigPath is the path to the canonical parameter defaults file.
const DefaultConfigPath = "config/odometry.defaults.json"

// Engine names accepted by the "engine" field.
const (
	EngineMonteCarlo = "montecarlo"
	EngineExact      = "exact"
)

// ParameterConfig is the on-disk form of an estimation run's parameters.
// Every field is optional; the Get* accessors fall back to defaults for
// anything left unset, so partial configs are safe.
type ParameterConfig struct {
	// Robot geometry and encoder
	TrackWidth        *float64 `json:"track_width,omitempty"`
	WheelConstant     *float64 `json:"wheel_constant,omitempty"`
	MaximumTimerCount *float64 `json:"maximum_timer_count,omitempty"`

	// Integration
	Timestep     *float64 `json:"timestep,omitempty"`
	InitialState *string  `json:"initial_state,omitempty"` // "x:y:theta"

	// Uncertainty engine
	Engine  *string `json:"engine,omitempty"`
	Samples *int    `json:"samples,omitempty"`
	Seed    *uint64 `json:"seed,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyParameterConfig returns a ParameterConfig with all fields set to nil.
func EmptyParameterConfig() *ParameterConfig {
	return &ParameterConfig{}
}

// DefaultParameterConfig returns a ParameterConfig with every field set to
// its default value.
func DefaultParameterConfig() *ParameterConfig {
	return &ParameterConfig{
		TrackWidth:        ptrFloat64(1.0),
		WheelConstant:     ptrFloat64(360.0),
		MaximumTimerCount: ptrFloat64(65535),
		Timestep:          ptrFloat64(0.1),
		InitialState:      ptrString("0:0:0"),
		Engine:            ptrString(EngineMonteCarlo),
		Samples:           ptrInt(uncertain.DefaultSamples),
	}
}

// LoadParameterConfig loads a ParameterConfig from a JSON file read through
// fsys. The file must have a .json extension and be under 1MB.
func LoadParameterConfig(fsys fsutil.FileSystem, path string) (*ParameterConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	f, err := fsys.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyParameterConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents. Panics if the file cannot be loaded; intended
// for test setup.
func MustLoadDefaultConfig() *ParameterConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/ or cmd/deadreckon/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadParameterConfig(fsutil.OSFileSystem{}, path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks the values that are set. Range violations are reported as
// *odometry.ParameterError so callers can match odometry.ErrInvalidParameter.
func (c *ParameterConfig) Validate() error {
	if c.TrackWidth != nil && !(*c.TrackWidth > 0) {
		return &odometry.ParameterError{Name: "track_width", Value: *c.TrackWidth, Reason: "must be positive"}
	}
	if c.MaximumTimerCount != nil && !(*c.MaximumTimerCount >= 0) {
		return &odometry.ParameterError{Name: "maximum_timer_count", Value: *c.MaximumTimerCount, Reason: "must be non-negative"}
	}
	if c.Timestep != nil && !(*c.Timestep > 0) {
		return &odometry.ParameterError{Name: "timestep", Value: *c.Timestep, Reason: "must be positive"}
	}
	if c.InitialState != nil {
		if _, err := ParseInitialState(*c.InitialState); err != nil {
			return err
		}
	}
	if c.Engine != nil {
		switch *c.Engine {
		case EngineMonteCarlo, EngineExact:
		default:
			return fmt.Errorf("engine must be %q or %q, got %q", EngineMonteCarlo, EngineExact, *c.Engine)
		}
	}
	if c.Samples != nil && *c.Samples < uncertain.MinSamples {
		return fmt.Errorf("samples must be at least %d, got %d", uncertain.MinSamples, *c.Samples)
	}
	return nil
}

// Merge copies every field set in other over c.
func (c *ParameterConfig) Merge(other *ParameterConfig) {
	if other == nil {
		return
	}
	if other.TrackWidth != nil {
		c.TrackWidth = other.TrackWidth
	}
	if other.WheelConstant != nil {
		c.WheelConstant = other.WheelConstant
	}
	if other.MaximumTimerCount != nil {
		c.MaximumTimerCount = other.MaximumTimerCount
	}
	if other.Timestep != nil {
		c.Timestep = other.Timestep
	}
	if other.InitialState != nil {
		c.InitialState = other.InitialState
	}
	if other.Engine != nil {
		c.Engine = other.Engine
	}
	if other.Samples != nil {
		c.Samples = other.Samples
	}
	if other.Seed != nil {
		c.Seed = other.Seed
	}
}

// GetTrackWidth returns the track_width value or the default.
func (c *ParameterConfig) GetTrackWidth() float64 {
	if c.TrackWidth == nil {
		return 1.0
	}
	return *c.TrackWidth
}

// GetWheelConstant returns the wheel_constant value or the default.
func (c *ParameterConfig) GetWheelConstant() float64 {
	if c.WheelConstant == nil {
		return 360.0
	}
	return *c.WheelConstant
}

// GetMaximumTimerCount returns the maximum_timer_count value or the default.
func (c *ParameterConfig) GetMaximumTimerCount() float64 {
	if c.MaximumTimerCount == nil {
		return 65535 // 16-bit timer
	}
	return *c.MaximumTimerCount
}

// GetTimestep returns the timestep value or the default.
func (c *ParameterConfig) GetTimestep() float64 {
	if c.Timestep == nil {
		return 0.1
	}
	return *c.Timestep
}

// GetInitialState parses the initial_state value, falling back to the
// origin when unset or unparseable.
func (c *ParameterConfig) GetInitialState() odometry.State {
	if c.InitialState == nil {
		return odometry.State{}
	}
	s, err := ParseInitialState(*c.InitialState)
	if err != nil {
		return odometry.State{}
	}
	return s
}

// GetEngine returns the engine value or the default.
func (c *ParameterConfig) GetEngine() string {
	if c.Engine == nil || *c.Engine == "" {
		return EngineMonteCarlo
	}
	return *c.Engine
}

// GetSamples returns the samples value or the default.
func (c *ParameterConfig) GetSamples() int {
	if c.Samples == nil {
		return uncertain.DefaultSamples
	}
	return *c.Samples
}

// GetSeed returns the seed value and whether one was configured.
func (c *ParameterConfig) GetSeed() (uint64, bool) {
	if c.Seed == nil {
		return 0, false
	}
	return *c.Seed, true
}

// Parameters converts the config into the estimator's parameter set.
func (c *ParameterConfig) Parameters() odometry.Parameters {
	return odometry.Parameters{
		TrackWidth:        float32(c.GetTrackWidth()),
		WheelConstant:     float32(c.GetWheelConstant()),
		MaximumTimerCount: float32(c.GetMaximumTimerCount()),
		Timestep:          float32(c.GetTimestep()),
		InitialState:      c.GetInitialState(),
	}
}

// ParseInitialState parses a pose written as "x:y:theta".
func ParseInitialState(s string) (odometry.State, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return odometry.State{}, fmt.Errorf("initial state: bad format %q, expected x:y:theta", s)
	}
	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return odometry.State{}, fmt.Errorf("initial state: invalid value %q: %w", p, err)
		}
		v[i] = float32(f)
	}
	return odometry.State{X: v[0], Y: v[1], Heading: v[2]}, nil
}
