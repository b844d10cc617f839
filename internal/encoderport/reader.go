package encoderport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/banshee-data/deadreckoning/internal/monitoring"
	"github.com/banshee-data/deadreckoning/internal/odometry"
	"github.com/banshee-data/deadreckoning/internal/readings"
	"github.com/banshee-data/deadreckoning/internal/timeutil"
)

// ErrIdle is returned when the device stays silent for longer than the idle
// timeout.
var ErrIdle = errors.New("encoder port idle")

// Reader turns the line stream of an encoder device into RawReadings.
type Reader struct {
	port  SerialPorter
	clock timeutil.Clock
	idle  time.Duration

	skipped atomic.Int64
}

// NewReader creates a Reader over port. An idle of zero disables the idle
// timeout. A nil clock uses the real clock.
func NewReader(port SerialPorter, clock timeutil.Clock, idle time.Duration) *Reader {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Reader{port: port, clock: clock, idle: idle}
}

// Skipped returns the number of malformed lines dropped so far.
func (r *Reader) Skipped() int { return int(r.skipped.Load()) }

// Close closes the underlying port, which also unblocks a pending Collect.
func (r *Reader) Close() error { return r.port.Close() }

// Collect reads readings until n have been received (n <= 0 reads until the
// device closes the stream). Malformed lines are logged and skipped. On
// context cancellation or idle timeout the readings gathered so far are
// returned together with the error.
func (r *Reader) Collect(ctx context.Context, n int) ([]odometry.RawReading, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	scan := bufio.NewScanner(r.port)
	lineChan := make(chan string)
	scanErrChan := make(chan error, 1)

	// the blocking scan.Scan runs apart from the select loop so that
	// cancellation and the idle timer are always observed
	go func() {
		defer close(lineChan)
		for scan.Scan() {
			select {
			case lineChan <- scan.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scan.Err(); err != nil {
			scanErrChan <- err
		}
	}()

	var idleC <-chan time.Time
	var timer timeutil.Timer
	if r.idle > 0 {
		timer = r.clock.NewTimer(r.idle)
		defer timer.Stop()
		idleC = timer.C()
	}

	var out []odometry.RawReading
	for {
		select {
		case <-ctx.Done():
			return out, ctx.Err()

		case err := <-scanErrChan:
			return out, fmt.Errorf("reading encoder port: %w", err)

		case <-idleC:
			return out, fmt.Errorf("%w: no data for %s", ErrIdle, r.idle)

		case line, ok := <-lineChan:
			if !ok {
				select {
				case err := <-scanErrChan:
					return out, fmt.Errorf("reading encoder port: %w", err)
				default:
				}
				return out, nil
			}
			if timer != nil {
				timer.Stop()
				timer.Reset(r.idle)
			}
			if strings.TrimSpace(line) == "" {
				continue
			}

			reading, err := readings.ParseLine(line)
			if err != nil {
				r.skipped.Add(1)
				monitoring.Logf("encoderport: skipping line %q: %v", line, err)
				continue
			}
			out = append(out, reading)
			monitoring.Debugf("encoderport: reading %d: right=%d left=%d", len(out)-1, reading.Right, reading.Left)
			if n > 0 && len(out) >= n {
				return out, nil
			}
		}
	}
}
