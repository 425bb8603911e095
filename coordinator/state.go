// Package coordinator implements the network-side node: the link health
// state machine, the telemetry snapshot, the bus poll task, and command
// submission toward the peripheral.
package coordinator

import (
	"sync"

	"nodelink-go/wire"
)

// Telemetry is the value-copy view handed to request handlers: the latest
// decoded sensor values plus link reachability. Handlers never block on it
// and never see a torn read.
type Telemetry struct {
	Temperature float64 // °C, one decimal
	Humidity    float64 // %, one decimal
	Light       int
	Card        string // wire.NoCard until a card is seen
	LinkOnline  bool
}

// State is the coordinator's single shared aggregate. The poll task is the
// only writer; any number of handlers read value copies through Snapshot.
type State struct {
	mu sync.RWMutex

	deciCelsius int16
	humidity    uint8
	light       int16
	card        string
	online      bool
}

// initial temperature sentinel, displayed until the first environment frame
const deciUnset = -9990

func NewState() *State {
	return &State{deciCelsius: deciUnset, card: wire.NoCard}
}

// Snapshot returns the current telemetry by value.
func (s *State) Snapshot() Telemetry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Telemetry{
		Temperature: float64(s.deciCelsius) / 10,
		Humidity:    float64(s.humidity),
		Light:       int(s.light),
		Card:        s.card,
		LinkOnline:  s.online,
	}
}

// LinkOnline reports current reachability.
func (s *State) LinkOnline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}

func (s *State) setEnv(r wire.EnvReading) {
	s.mu.Lock()
	s.deciCelsius = r.DeciCelsius
	s.humidity = r.Humidity
	s.light = r.Light
	s.mu.Unlock()
}

func (s *State) setCard(id wire.CardID) {
	s.mu.Lock()
	s.card = id.String()
	s.mu.Unlock()
}

// setOnline flips reachability. On loss the card identifier resets to the
// sentinel: card presence is a point-in-time event. Environment values stay;
// they are slowly varying and still approximately valid while stale.
func (s *State) setOnline(on bool) {
	s.mu.Lock()
	s.online = on
	if !on {
		s.card = wire.NoCard
	}
	s.mu.Unlock()
}
