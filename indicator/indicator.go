// Package indicator drives the two-channel status lights without blocking:
// solid levels, blinking, and short one-shot pulses, all advanced by the
// scheduler's animation tick.
package indicator

import (
	"sync"

	"nodelink-go/x/timex"
)

// Channel selects which light an operation acts on.
type Channel uint8

const (
	Primary Channel = iota
	Secondary
	Both
)

func (c Channel) String() string {
	switch c {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return "both"
	}
}

// Driver sets the physical level of one channel. Implementations drive GPIO
// on MCU builds and fakes in tests; Both is expanded before the driver sees
// it.
type Driver interface {
	Set(ch Channel, on bool)
}

// DriverFunc adapts a func to Driver.
type DriverFunc func(ch Channel, on bool)

func (f DriverFunc) Set(ch Channel, on bool) { f(ch, on) }

// Lights is the indicator state machine. All methods are non-blocking; Tick
// is called from the scheduler's animation task, the other methods from
// request handlers and the telemetry apply path.
type Lights struct {
	mu  sync.Mutex
	drv Driver

	blinking   bool
	blinkCh    Channel
	intervalMs uint32
	phase      bool
	lastToggle uint32

	pulseUntil [2]uint32
	pulsing    [2]bool
}

// New builds the state machine over drv. A nil driver is accepted and acts
// as a sink, for hosts with no lights attached.
func New(drv Driver) *Lights {
	if drv == nil {
		drv = DriverFunc(func(Channel, bool) {})
	}
	return &Lights{drv: drv}
}

func (l *Lights) drive(ch Channel, on bool) {
	if ch == Both {
		l.drv.Set(Primary, on)
		l.drv.Set(Secondary, on)
		return
	}
	l.drv.Set(ch, on)
}

// SetSolid cancels any blinking and sets the channel level directly.
func (l *Lights) SetSolid(ch Channel, on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.blinking = false
	l.drive(ch, on)
}

// StartBlink enters the blinking state on ch. The first toggle happens on
// the next animation tick.
func (l *Lights) StartBlink(ch Channel, intervalMs uint32) {
	if intervalMs == 0 {
		intervalMs = 1
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.blinking = true
	l.blinkCh = ch
	l.intervalMs = intervalMs
	l.phase = false
	l.lastToggle = 0
}

// Stop cancels blinking and turns both channels off.
func (l *Lights) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.blinking = false
	l.drive(Both, false)
}

// Pulse turns ch on now and schedules it off durMs later; the animation tick
// resolves the deadline, so callers never delay.
func (l *Lights) Pulse(ch Channel, durMs, nowMs uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ch == Both {
		l.startPulse(Primary, durMs, nowMs)
		l.startPulse(Secondary, durMs, nowMs)
		return
	}
	l.startPulse(ch, durMs, nowMs)
}

func (l *Lights) startPulse(ch Channel, durMs, nowMs uint32) {
	l.pulsing[ch] = true
	l.pulseUntil[ch] = nowMs + durMs
	l.drv.Set(ch, true)
}

// Tick advances blink phase and expires pulses. Wraparound-safe like the
// scheduler gate it runs under.
func (l *Lights) Tick(nowMs uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ch := Primary; ch <= Secondary; ch++ {
		if l.pulsing[ch] && timex.Since32(nowMs, l.pulseUntil[ch]) < 1<<31 {
			l.pulsing[ch] = false
			l.drv.Set(ch, false)
		}
	}

	if !l.blinking {
		return
	}
	if timex.Since32(nowMs, l.lastToggle) >= l.intervalMs {
		l.lastToggle = nowMs
		l.phase = !l.phase
		l.drive(l.blinkCh, l.phase)
	}
}
