// Package readings supplies sequences of raw encoder readings: parsed from
// CSV logs with one "right,left" row per timestep, or the built-in default
// sequence.
package readings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/deadreckoning/internal/fsutil"
	"github.com/banshee-data/deadreckoning/internal/monitoring"
	"github.com/banshee-data/deadreckoning/internal/odometry"
)

// ErrMalformed is returned for rows that are not two integer timer counts.
var ErrMalformed = errors.New("malformed encoder reading")

// MaxFileSize bounds the size of a readings file.
const MaxFileSize = 64 * 1024 * 1024

// Default reference sequence: both wheels turning forward at a 2:1 speed
// ratio, which drives the reference robot around a circle.
const (
	DefaultLength = 81
	DefaultRight  = 230
	DefaultLeft   = 460
)

// Default returns the built-in reading sequence.
func Default() []odometry.RawReading {
	out := make([]odometry.RawReading, DefaultLength)
	for i := range out {
		out[i] = odometry.RawReading{Right: DefaultRight, Left: DefaultLeft}
	}
	return out
}

// ParseLine parses a single "right,left" row.
func ParseLine(line string) (odometry.RawReading, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	return parseFields(fields)
}

func parseFields(fields []string) (odometry.RawReading, error) {
	if len(fields) != 2 {
		return odometry.RawReading{}, fmt.Errorf("%w: expected 2 fields, got %d", ErrMalformed, len(fields))
	}
	var counts [2]int32
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 32)
		if err != nil {
			return odometry.RawReading{}, fmt.Errorf("%w: invalid timer count %q", ErrMalformed, f)
		}
		counts[i] = int32(v)
	}
	return odometry.RawReading{Right: counts[0], Left: counts[1]}, nil
}

// Parse reads every row from r. Blank lines are skipped; any other row that
// is not two integers fails the whole parse with ErrMalformed.
func Parse(r io.Reader) ([]odometry.RawReading, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var out []odometry.RawReading
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		reading, err := parseFields(record)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, reading)
	}
	return out, nil
}

// Load reads a readings file through fsys.
func Load(fsys fsutil.FileSystem, path string) ([]odometry.RawReading, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat readings file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("readings file too large: %d bytes (max %d)", info.Size(), MaxFileSize)
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open readings file: %w", err)
	}
	defer f.Close()

	out, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	monitoring.Logf("loaded %d encoder readings from %s", len(out), path)
	return out, nil
}
