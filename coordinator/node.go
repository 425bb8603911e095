package coordinator

import (
	"nodelink-go/bus"
	"nodelink-go/indicator"
	"nodelink-go/sched"
	"nodelink-go/twi"
)

// NetMonitor is the boundary to the externally-owned association layer. The
// net-health task only asks whether the station link is up and kicks a
// reconnect when it is not; association and DNS mechanics live elsewhere.
type NetMonitor interface {
	Connected() bool
	Reconnect()
}

// Config carries the coordinator task intervals.
type Config struct {
	PollEveryMs     uint32
	NetCheckEveryMs uint32
	AnimateEveryMs  uint32
	GreetingTrack   uint8 // 0 disables the boot greeting
}

// DefaultConfig matches the deployed timings: bus poll every 500 ms, network
// check every 10 s, short animation tick.
func DefaultConfig() Config {
	return Config{
		PollEveryMs:     500,
		NetCheckEveryMs: 10000,
		AnimateEveryMs:  10,
		GreetingTrack:   1,
	}
}

// Node aggregates the coordinator's owned state and tasks.
type Node struct {
	State  *State
	Lights *indicator.Lights
	Poller *Poller
	Sender *Sender

	netmon NetMonitor
}

func NewNode(ctrl twi.Controller, drv indicator.Driver, netmon NetMonitor, conn *bus.Connection) *Node {
	state := NewState()
	lights := indicator.New(drv)
	n := &Node{
		State:  state,
		Lights: lights,
		Poller: NewPoller(state, ctrl, lights).WithConnection(conn),
		Sender: NewSender(state, ctrl, lights),
		netmon: netmon,
	}
	return n
}

// Register installs the coordinator tasks on the cooperative loop: the bus
// poll, the network check, the indicator animation, and the externally-owned
// upkeep hooks (OTA tick, name-resolution tick) which run every pass per
// their own contracts.
func (n *Node) Register(loop *sched.Loop, cfg Config, upkeep ...func()) {
	if cfg.GreetingTrack != 0 {
		track := cfg.GreetingTrack
		n.Poller.OnFirstOnline(func() {
			// ignore the result: fire-and-forget like every command
			_ = n.Sender.PlayTrack(track)
		})
	}
	loop.Every("bus-poll", cfg.PollEveryMs, n.Poller.Poll)
	loop.Every("net-check", cfg.NetCheckEveryMs, func(uint32) { n.checkNet() })
	loop.Every("indicator-animate", cfg.AnimateEveryMs, n.Lights.Tick)
	for _, h := range upkeep {
		loop.EachPass(h)
	}
}

func (n *Node) checkNet() {
	if n.netmon == nil || n.netmon.Connected() {
		return
	}
	println("[net] disconnected, reconnecting")
	n.netmon.Reconnect()
}
