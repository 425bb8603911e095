package coordinator

import (
	"sync"

	"nodelink-go/errcode"
	"nodelink-go/indicator"
	"nodelink-go/twi"
	"nodelink-go/wire"
	"nodelink-go/x/timex"
)

// Sender submits single-shot commands onto the bus, outside the poll task.
// No acknowledgement exists: a command sent while the link is down is lost,
// an accepted limitation surfaced only through the returned code (callers on
// the request surface deliberately ignore it). The request surface calls in
// from preemptive handler goroutines, so the write buffer is mutex-guarded;
// a command byte pair always reaches the wire intact.
type Sender struct {
	state  *State
	ctrl   twi.Controller
	lights *indicator.Lights

	pulseMs uint32

	mu  sync.Mutex
	buf [2]byte
}

func NewSender(state *State, ctrl twi.Controller, lights *indicator.Lights) *Sender {
	return &Sender{state: state, ctrl: ctrl, lights: lights, pulseMs: 10}
}

// PlayTrack asks the peripheral to start track n.
func (s *Sender) PlayTrack(n uint8) error {
	return s.send(wire.Command{Tag: wire.CmdPlayTrack, Track: n})
}

func (s *Sender) VolumeUp() error   { return s.send(wire.Command{Tag: wire.CmdVolumeUp}) }
func (s *Sender) VolumeDown() error { return s.send(wire.Command{Tag: wire.CmdVolumeDown}) }

func (s *Sender) send(c wire.Command) error {
	if !s.state.LinkOnline() {
		return errcode.LinkOffline
	}
	println("[link] send command:", c.Tag.String())
	s.mu.Lock()
	err := s.ctrl.Write(wire.AppendCommand(s.buf[:0], c))
	s.mu.Unlock()
	if err != nil {
		return &errcode.E{C: errcode.Error, Op: "send", Err: err}
	}
	if s.lights != nil {
		s.lights.Pulse(indicator.Primary, s.pulseMs, timex.Millis())
	}
	return nil
}
