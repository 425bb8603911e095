package peripheral

import (
	"context"

	"nodelink-go/sched"
	"nodelink-go/twi"
	"nodelink-go/wire"
)

// CardReader yields the identifier of a newly presented card. ok is false
// when no new card is in the field; the reader halts the card after a
// successful read so the same presentation reports once.
type CardReader interface {
	ReadCard() (wire.CardID, bool)
}

// EnvSensor yields one combined environment sample (temperature, humidity,
// light). Errors mean this sample is unusable and the cycle is skipped.
type EnvSensor interface {
	ReadEnv() (wire.EnvReading, error)
}

// Player is the audio actuator commands dispatch to. Fire-and-forget from the
// protocol's point of view.
type Player interface {
	Play(track uint8) error
	VolumeUp() error
	VolumeDown() error
}

// Config carries the sampling intervals.
type Config struct {
	CardEveryMs uint32
	EnvEveryMs  uint32
}

// DefaultConfig matches the deployed timings.
func DefaultConfig() Config {
	return Config{CardEveryMs: 200, EnvEveryMs: 2500}
}

// Node is the peripheral's state: the event queue and command channel shared
// with the port service, plus the sensors and actuator the tasks drive.
type Node struct {
	Events   *EventQueue
	Commands *CommandChannel

	card   CardReader
	env    EnvSensor
	player Player
}

func NewNode(card CardReader, env EnvSensor, player Player) *Node {
	return &Node{
		Events:   &EventQueue{},
		Commands: &CommandChannel{},
		card:     card,
		env:      env,
		player:   player,
	}
}

// Register installs the sampling tasks and the command dispatch on the
// cooperative loop. Sampling for a kind is suppressed while its event slot is
// occupied; dispatch drains the single command slot once per pass.
func (n *Node) Register(loop *sched.Loop, cfg Config) {
	loop.Every("card-sample", cfg.CardEveryMs, func(uint32) { n.sampleCard() })
	loop.Every("env-sample", cfg.EnvEveryMs, func(uint32) { n.sampleEnv() })
	loop.EachPass(n.dispatch)
}

func (n *Node) sampleCard() {
	if n.card == nil || n.Events.Pending(wire.KindCard) {
		return
	}
	id, ok := n.card.ReadCard()
	if !ok {
		return
	}
	println("[periph] card detected:", id.String())
	n.Events.OfferCard(id)
}

func (n *Node) sampleEnv() {
	if n.env == nil || n.Events.Pending(wire.KindEnv) {
		return
	}
	r, err := n.env.ReadEnv()
	if err != nil {
		println("[periph] env read failed, sample skipped")
		return
	}
	n.Events.OfferEnv(r)
}

func (n *Node) dispatch() {
	cmd, ok := n.Commands.TakePending()
	if !ok {
		return
	}
	if n.player == nil {
		return
	}
	switch cmd.Tag {
	case wire.CmdPlayTrack:
		if err := n.player.Play(cmd.Track); err != nil {
			println("[periph] play failed:", err.Error())
		}
	case wire.CmdVolumeUp:
		if err := n.player.VolumeUp(); err != nil {
			println("[periph] volume up failed:", err.Error())
		}
	case wire.CmdVolumeDown:
		if err := n.player.VolumeDown(); err != nil {
			println("[periph] volume down failed:", err.Error())
		}
	}
}

// ServePort runs the bus port loop: command writes feed the command channel,
// read requests answer with the next outgoing frame. It blocks in
// WaitForEvent, standing in for the receive/request interrupt context, so it
// runs from its own goroutine until ctx is cancelled.
func (n *Node) ServePort(ctx context.Context, port twi.Port) {
	buf := make([]byte, wire.FrameSize)
	out := make([]byte, 0, wire.FrameSize)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		evt, nb, err := port.WaitForEvent(buf)
		if err != nil {
			println("[periph] port event error:", err.Error())
			continue
		}
		switch evt {
		case twi.EventReceive:
			if err := n.Commands.Receive(buf[:nb]); err != nil {
				// Unknown tags are logged and ignored; the link stays up.
				println("[periph] ignoring command:", err.Error())
			}
		case twi.EventRequest:
			out = n.Events.NextOutgoing().AppendTo(out[:0])
			if err := port.Reply(out); err != nil {
				println("[periph] reply failed:", err.Error())
			}
		}
	}
}
