// Package sched runs a fixed registry of periodic tasks from one cooperative
// control loop. Each pass evaluates every task against a wrapping 32-bit
// millisecond clock; a task runs when now-lastRun >= interval, using unsigned
// subtraction so the gate stays correct across clock wraparound. Task bodies
// must return without blocking; there is no preemption and no task runs
// concurrently with another.
package sched

import (
	"context"
	"time"

	"nodelink-go/x/timex"
)

// Clock supplies the monotonic millisecond counter the loop gates on.
type Clock interface {
	NowMs() uint32
}

// ClockFunc adapts a func to Clock.
type ClockFunc func() uint32

func (f ClockFunc) NowMs() uint32 { return f() }

// WallClock is the default clock, milliseconds since process start.
var WallClock Clock = ClockFunc(timex.Millis)

type task struct {
	name     string
	interval uint32
	lastRun  uint32
	run      func(nowMs uint32)
}

// Loop is the cooperative scheduler. Register tasks before calling Run; the
// registry is fixed while the loop is running.
type Loop struct {
	clock     Clock
	tasks     []*task
	everyPass []func()
}

func NewLoop(clock Clock) *Loop {
	if clock == nil {
		clock = WallClock
	}
	return &Loop{clock: clock}
}

// Every registers a task gated on intervalMs. The first run happens one full
// interval after registration.
func (l *Loop) Every(name string, intervalMs uint32, run func(nowMs uint32)) {
	if intervalMs == 0 {
		intervalMs = 1
	}
	l.tasks = append(l.tasks, &task{
		name:     name,
		interval: intervalMs,
		lastRun:  l.clock.NowMs(),
		run:      run,
	})
}

// EachPass registers an ungated upkeep hook invoked on every pass, per its
// own contract (OTA service tick, name-resolution tick, indicator animation
// helpers that gate themselves).
func (l *Loop) EachPass(run func()) {
	l.everyPass = append(l.everyPass, run)
}

// Tick executes one pass of the control loop: every due task body, then the
// every-pass hooks.
func (l *Loop) Tick() {
	now := l.clock.NowMs()
	for _, t := range l.tasks {
		if timex.Since32(now, t.lastRun) >= t.interval {
			t.lastRun = now
			t.run(now)
		}
	}
	for _, h := range l.everyPass {
		h()
	}
}

// Run ticks the loop until ctx is cancelled, yielding briefly between passes.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		l.Tick()
		time.Sleep(time.Millisecond)
	}
}
