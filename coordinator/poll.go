package coordinator

import (
	"nodelink-go/bus"
	"nodelink-go/indicator"
	"nodelink-go/twi"
	"nodelink-go/wire"
	"nodelink-go/x/fmtx"
)

var topicLinkState = bus.T("link", "state")

// Poller owns the coordinator side of the link: one request per scheduler
// tick, feeding the link health state machine and the telemetry snapshot.
// Polls are strictly sequential; a failed exchange is retried only at the
// next scheduled interval, surfacing solely through link state.
type Poller struct {
	state  *State
	ctrl   twi.Controller
	lights *indicator.Lights
	conn   *bus.Connection // optional; retained link state for observers

	pulseMs uint32
	onUp    []func()
	greeted bool

	buf [wire.FrameSize]byte
}

func NewPoller(state *State, ctrl twi.Controller, lights *indicator.Lights) *Poller {
	return &Poller{state: state, ctrl: ctrl, lights: lights, pulseMs: 10}
}

// WithConnection publishes retained link transitions on {"link","state"}.
func (p *Poller) WithConnection(conn *bus.Connection) *Poller {
	p.conn = conn
	return p
}

// OnFirstOnline adds a one-shot hook run the first time the link comes up.
// Hooks accumulate and run in installation order: the boot indicator settle
// and the greeting both live here.
func (p *Poller) OnFirstOnline(fn func()) { p.onUp = append(p.onUp, fn) }

// Poll performs one exchange and applies the outcome. Runs as the bus-health
// task body; never blocks beyond the transport's own bounded exchange.
func (p *Poller) Poll(nowMs uint32) {
	n, err := p.ctrl.Request(p.buf[:])
	if err != nil || n != wire.FrameSize {
		p.applyDown(n)
		return
	}
	frame, err := wire.Decode(p.buf[:n])
	if err != nil {
		p.applyDown(n)
		return
	}
	p.applyUp(frame, nowMs)
}

// applyUp handles Ok(frame): Offline x Ok -> Online (edge-logged), then
// decode and fold the frame into the snapshot.
func (p *Poller) applyUp(f wire.Frame, nowMs uint32) {
	if !p.state.LinkOnline() {
		println("[link] established")
		p.state.setOnline(true)
		p.publishLink("online")
		if !p.greeted {
			p.greeted = true
			for _, fn := range p.onUp {
				fn()
			}
		}
	}

	switch f.Kind {
	case wire.KindIdle:
		// nothing new
	case wire.KindCard:
		id := f.Card()
		println("[link] card:", id.String())
		p.state.setCard(id)
		if p.lights != nil {
			p.lights.Pulse(indicator.Secondary, p.pulseMs, nowMs)
		}
	case wire.KindEnv:
		r := f.Env()
		fmtx.Printf("[link] env: %d deci-C %d%% light %d\n", r.DeciCelsius, r.Humidity, r.Light)
		p.state.setEnv(r)
		if p.lights != nil {
			p.lights.Pulse(indicator.Primary, p.pulseMs, nowMs)
		}
	default:
		// Reserved tag from a newer peripheral: log and ignore, the
		// protocol stays operational.
		println("[link] ignoring unknown frame kind:", int(f.Kind))
	}
}

// applyDown handles Err(UnexpectedLength): * x Err -> Offline, edge-logged
// with the observed byte count.
func (p *Poller) applyDown(n int) {
	if p.state.LinkOnline() {
		println("[link] lost, response bytes:", n)
		p.publishLink("offline")
	}
	p.state.setOnline(false)
}

func (p *Poller) publishLink(status string) {
	if p.conn == nil {
		return
	}
	p.conn.Publish(p.conn.NewMessage(topicLinkState, status, true))
}
