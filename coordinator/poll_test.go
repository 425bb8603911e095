package coordinator

import (
	"testing"

	"nodelink-go/bus"
	"nodelink-go/indicator"
	"nodelink-go/wire"
)

// scriptCtrl answers each Request with the next scripted response; a short
// response models a failed or timed-out exchange. Writes are recorded.
type scriptCtrl struct {
	replies [][]byte
	writes  [][]byte
}

func (c *scriptCtrl) Request(buf []byte) (int, error) {
	if len(c.replies) == 0 {
		return 0, nil
	}
	r := c.replies[0]
	c.replies = c.replies[1:]
	return copy(buf, r), nil
}

func (c *scriptCtrl) Write(p []byte) error {
	w := make([]byte, len(p))
	copy(w, p)
	c.writes = append(c.writes, w)
	return nil
}

func frameBytes(f wire.Frame) []byte { return f.AppendTo(nil) }

func newTestPoller(ctrl *scriptCtrl) (*Poller, *State) {
	state := NewState()
	lights := indicator.New(indicator.DriverFunc(func(indicator.Channel, bool) {}))
	return NewPoller(state, ctrl, lights), state
}

func TestLinkEdgeTransitions(t *testing.T) {
	ctrl := &scriptCtrl{replies: [][]byte{
		frameBytes(wire.Idle),
		{0x00},        // short
		{},            // nothing
		frameBytes(wire.Idle),
	}}
	p, state := newTestPoller(ctrl)

	b := bus.NewBus(8)
	conn := b.NewConnection("test")
	sub := conn.Subscribe(bus.T("link", "state"))
	p.WithConnection(b.NewConnection("poller"))

	if state.LinkOnline() {
		t.Fatal("link starts offline")
	}
	p.Poll(0)
	if !state.LinkOnline() {
		t.Fatal("Ok from offline must go online")
	}
	p.Poll(500)
	if state.LinkOnline() {
		t.Fatal("short response must go offline")
	}
	p.Poll(1000) // second Err: still offline, no second edge
	p.Poll(1500)
	if !state.LinkOnline() {
		t.Fatal("Ok must re-establish")
	}

	// Edge-triggered publications only: online, offline, online.
	want := []string{"online", "offline", "online"}
	for i, w := range want {
		select {
		case m := <-sub.Channel():
			if m.Payload.(string) != w {
				t.Fatalf("transition %d = %v, want %s", i, m.Payload, w)
			}
		default:
			t.Fatalf("missing transition %d (%s)", i, w)
		}
	}
	select {
	case m := <-sub.Channel():
		t.Fatalf("extra transition %v", m.Payload)
	default:
	}
}

func TestLossResetsCardKeepsEnvironment(t *testing.T) {
	env := wire.EncodeEnv(wire.EnvReading{DeciCelsius: 250, Humidity: 50, Light: 7})
	card := wire.EncodeCard(wire.CardID{0xDE, 0xAD, 0xBE, 0xEF})
	ctrl := &scriptCtrl{replies: [][]byte{frameBytes(env), frameBytes(card), {0x00}}}
	p, state := newTestPoller(ctrl)

	p.Poll(0)
	p.Poll(500)
	snap := state.Snapshot()
	if snap.Card != "DEADBEEF" || snap.Temperature != 25.0 {
		t.Fatalf("snapshot before loss: %+v", snap)
	}

	p.Poll(1000)
	snap = state.Snapshot()
	if snap.LinkOnline {
		t.Fatal("link must be down")
	}
	if snap.Card != wire.NoCard {
		t.Fatalf("card must reset to sentinel, got %q", snap.Card)
	}
	if snap.Temperature != 25.0 || snap.Humidity != 50 || snap.Light != 7 {
		t.Fatalf("environment must stay (stale): %+v", snap)
	}
}

func TestEnvDecodeScaling(t *testing.T) {
	raw := []byte{byte(wire.KindEnv), 0x00, 0xFA, 0x32, 0x01, 0x00, 0, 0, 0, 0}
	ctrl := &scriptCtrl{replies: [][]byte{raw}}
	p, state := newTestPoller(ctrl)
	p.Poll(0)
	snap := state.Snapshot()
	if snap.Temperature != 25.0 {
		t.Fatalf("temperature = %v, want 25.0", snap.Temperature)
	}
	if snap.Humidity != 50 {
		t.Fatalf("humidity = %v, want 50", snap.Humidity)
	}
	if snap.Light != 256 {
		t.Fatalf("light = %v, want 256", snap.Light)
	}
}

func TestUnknownKindIgnored(t *testing.T) {
	raw := make([]byte, wire.FrameSize)
	raw[0] = 0x7F
	ctrl := &scriptCtrl{replies: [][]byte{raw}}
	p, state := newTestPoller(ctrl)
	p.Poll(0)
	if !state.LinkOnline() {
		t.Fatal("unknown kinds still count as well-formed frames")
	}
	snap := state.Snapshot()
	if snap.Card != wire.NoCard {
		t.Fatal("unknown kind must not touch telemetry")
	}
}

func TestIndicatorPulsesOnEvents(t *testing.T) {
	var pulsed []indicator.Channel
	lights := indicator.New(indicator.DriverFunc(func(ch indicator.Channel, on bool) {
		if on {
			pulsed = append(pulsed, ch)
		}
	}))
	state := NewState()
	ctrl := &scriptCtrl{replies: [][]byte{
		frameBytes(wire.EncodeCard(wire.CardID{1, 2, 3, 4})),
		frameBytes(wire.EncodeEnv(wire.EnvReading{})),
		frameBytes(wire.Idle),
	}}
	p := NewPoller(state, ctrl, lights)

	p.Poll(0)
	p.Poll(500)
	p.Poll(1000)
	if len(pulsed) != 2 || pulsed[0] != indicator.Secondary || pulsed[1] != indicator.Primary {
		t.Fatalf("pulses = %v, want [secondary primary]", pulsed)
	}
}

func TestFirstOnlineHookRunsOnce(t *testing.T) {
	ctrl := &scriptCtrl{replies: [][]byte{
		frameBytes(wire.Idle), {0}, frameBytes(wire.Idle),
	}}
	p, _ := newTestPoller(ctrl)
	count := 0
	p.OnFirstOnline(func() { count++ })
	p.Poll(0)
	p.Poll(500)
	p.Poll(1000) // back online: hook must not fire again
	if count != 1 {
		t.Fatalf("hook ran %d times, want 1", count)
	}
}
