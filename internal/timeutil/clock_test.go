package timeutil

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestRealClock(t *testing.T) {
	var c RealClock
	start := c.Now()
	if c.Since(start) < 0 {
		t.Error("Since returned negative duration")
	}

	timer := c.NewTimer(time.Millisecond)
	select {
	case <-timer.C():
	case <-time.After(time.Second):
		t.Fatal("real timer did not fire")
	}
	if timer.Stop() {
		t.Error("Stop after firing should report inactive")
	}
}

func TestMockClock_NowAndSince(t *testing.T) {
	c := NewMockClock(epoch)
	if !c.Now().Equal(epoch) {
		t.Errorf("Now() = %v, want %v", c.Now(), epoch)
	}
	c.Advance(90 * time.Second)
	if got := c.Since(epoch); got != 90*time.Second {
		t.Errorf("Since() = %v, want 90s", got)
	}
}

func TestMockTimer_FiresAtDeadline(t *testing.T) {
	c := NewMockClock(epoch)
	timer := c.NewTimer(time.Second)
	if c.Timers() != 1 {
		t.Fatalf("Timers() = %d, want 1", c.Timers())
	}

	c.Advance(999 * time.Millisecond)
	select {
	case <-timer.C():
		t.Fatal("timer fired early")
	default:
	}

	c.Advance(time.Millisecond)
	select {
	case got := <-timer.C():
		if !got.Equal(epoch.Add(time.Second)) {
			t.Errorf("fired at %v", got)
		}
	default:
		t.Fatal("timer did not fire at deadline")
	}
}

func TestMockTimer_StopAndReset(t *testing.T) {
	c := NewMockClock(epoch)
	timer := c.NewTimer(time.Second)

	if !timer.Stop() {
		t.Error("Stop on active timer should return true")
	}
	c.Advance(2 * time.Second)
	select {
	case <-timer.C():
		t.Fatal("stopped timer fired")
	default:
	}

	if timer.Reset(time.Second) {
		t.Error("Reset on stopped timer should return false")
	}
	c.Advance(500 * time.Millisecond)
	if !timer.Reset(time.Second) {
		t.Error("Reset on active timer should return true")
	}
	c.Advance(600 * time.Millisecond)
	select {
	case <-timer.C():
		t.Fatal("timer fired before reset deadline")
	default:
	}
	c.Advance(400 * time.Millisecond)
	select {
	case <-timer.C():
	default:
		t.Fatal("timer did not fire after reset deadline")
	}
}
