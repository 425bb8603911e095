package peripheral

import (
	"sync"

	"nodelink-go/wire"
)

// CommandChannel carries coordinator commands across the bus-receive /
// main-loop boundary: a single pending slot, last writer wins, read once per
// dispatch tick. The mutex makes a receive spanning tag and parameter atomic
// with respect to dispatch.
type CommandChannel struct {
	mu        sync.Mutex
	pending   wire.Command
	hasEntry  bool
	lastTrack byte
}

// Receive parses the raw bytes of a command write transaction and stores the
// result, overwriting any undispatched prior command. A play tag that arrives
// without its parameter byte reuses the last track value seen on the channel
// (wire.ParseCommand documents the quirk).
func (c *CommandChannel) Receive(p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cmd, err := wire.ParseCommand(p, c.lastTrack)
	if err != nil {
		return err
	}
	c.lastTrack = cmd.Track
	c.pending = cmd
	c.hasEntry = true
	return nil
}

// TakePending returns the pending command and clears the slot; ok is false
// when nothing is pending.
func (c *CommandChannel) TakePending() (wire.Command, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasEntry {
		return wire.Command{}, false
	}
	c.hasEntry = false
	return c.pending, true
}
