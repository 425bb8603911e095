package main

import (
	"encoding/hex"
	"sync"

	"nodelink-go/wire"
	"nodelink-go/x/timex"
)

// simCards rotates through the configured UIDs: each card sits in the field
// for holdMs, then the field is empty for holdMs, then the next card
// appears. A card reports once per presentation, like a real reader that
// halts the tag after a read.
type simCards struct {
	mu       sync.Mutex
	cards    []wire.CardID
	holdMs   uint32
	lastSeen int // presentation index already reported
}

func newSimCards(hexIDs []string, holdMs uint32) (*simCards, error) {
	s := &simCards{holdMs: holdMs, lastSeen: -1}
	for _, h := range hexIDs {
		raw, err := hex.DecodeString(h)
		if err != nil || len(raw) != wire.CardIDLen {
			return nil, errBadCard(h)
		}
		var id wire.CardID
		copy(id[:], raw)
		s.cards = append(s.cards, id)
	}
	return s, nil
}

type errBadCard string

func (e errBadCard) Error() string { return "bad card UID: " + string(e) }

func (s *simCards) ReadCard() (wire.CardID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot := timex.Millis() / s.holdMs
	if slot%2 == 1 { // empty-field phase
		return wire.CardID{}, false
	}
	pres := int(slot / 2)
	if pres == s.lastSeen {
		return wire.CardID{}, false
	}
	s.lastSeen = pres
	return s.cards[pres%len(s.cards)], true
}

// simEnv produces a slow deterministic walk around plausible indoor values.
type simEnv struct {
	mu    sync.Mutex
	step  int
	deciC int16
	hum   uint8
	light int16
}

func newSimEnv() *simEnv {
	return &simEnv{deciC: 215, hum: 45, light: 500}
}

func (s *simEnv) ReadEnv() (wire.EnvReading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step++
	// Triangle wave riders on each channel, different periods.
	s.deciC = 215 + tri(s.step, 8, 15)
	s.hum = uint8(45 + tri(s.step, 12, 10))
	s.light = 500 + 20*tri(s.step, 30, 15)
	return wire.EnvReading{DeciCelsius: s.deciC, Humidity: s.hum, Light: s.light}, nil
}

// tri is a triangle wave over step with the given half-period and amplitude.
func tri(step, half, amp int) int16 {
	pos := step % (2 * half)
	if pos >= half {
		pos = 2*half - pos
	}
	return int16(amp * (2*pos - half) / half)
}

// simPlayer logs the audio commands the peripheral would play.
type simPlayer struct{}

func (simPlayer) Play(track uint8) error {
	println("[audio] play track", track)
	return nil
}
func (simPlayer) VolumeUp() error   { println("[audio] volume up"); return nil }
func (simPlayer) VolumeDown() error { println("[audio] volume down"); return nil }

// simNet is always associated; the interesting flakiness lives on the
// two-wire link, not the network side.
type simNet struct{}

func (simNet) Connected() bool { return true }
func (simNet) Reconnect()      {}
