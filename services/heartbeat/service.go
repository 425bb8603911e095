// Package heartbeat logs a periodic status line: uptime plus the last
// retained link state. The interval comes from the config service and can be
// retuned at runtime.
package heartbeat

import (
	"context"
	"time"

	"nodelink-go/bus"
	"nodelink-go/x/timex"
)

var (
	topicConfigHeartbeat = bus.T("config", "heartbeat")
	topicLinkState       = bus.T("link", "state")
)

type Service struct{}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)
	linkSub := conn.Subscribe(topicLinkState)
	defer conn.Unsubscribe(linkSub)

	link := "unknown"

	tick := time.NewTicker(5 * time.Second)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			println("[heartbeat] stopping")
			return
		case <-tick.C:
			println("[heartbeat] up", timex.Millis()/1000, "s, link", link)
		case msg := <-linkSub.Channel():
			if st, ok := msg.Payload.(string); ok {
				link = st
			}
		case msg := <-cfgSub.Channel():
			m, ok := msg.Payload.(map[string]any)
			if !ok {
				continue
			}
			iv, ok := m["interval"].(float64)
			if !ok || iv <= 0 {
				continue
			}
			tick.Reset(time.Duration(iv) * time.Second)
			println("[heartbeat] interval set to", int(iv), "s")
		}
	}
}

// Start launches the heartbeat loop.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
