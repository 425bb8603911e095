package coordinator

import (
	"sync"
	"testing"

	"nodelink-go/errcode"
	"nodelink-go/wire"
)

func TestSenderWritesCommands(t *testing.T) {
	ctrl := &scriptCtrl{replies: [][]byte{frameBytes(wire.Idle)}}
	p, state := newTestPoller(ctrl)
	p.Poll(0) // bring the link up
	s := NewSender(state, ctrl, nil)

	if err := s.PlayTrack(5); err != nil {
		t.Fatal(err)
	}
	if err := s.VolumeUp(); err != nil {
		t.Fatal(err)
	}
	if err := s.VolumeDown(); err != nil {
		t.Fatal(err)
	}

	want := [][]byte{{'P', 5}, {'+'}, {'-'}}
	if len(ctrl.writes) != len(want) {
		t.Fatalf("writes = %v", ctrl.writes)
	}
	for i := range want {
		if string(ctrl.writes[i]) != string(want[i]) {
			t.Fatalf("write %d = % X, want % X", i, ctrl.writes[i], want[i])
		}
	}
}

// Commands to an offline peripheral are dropped, never transmitted.
func TestSenderDropsWhileOffline(t *testing.T) {
	ctrl := &scriptCtrl{}
	state := NewState()
	s := NewSender(state, ctrl, nil)

	if err := s.PlayTrack(1); errcode.Of(err) != errcode.LinkOffline {
		t.Fatalf("want link_offline, got %v", err)
	}
	if len(ctrl.writes) != 0 {
		t.Fatal("nothing may reach the wire while offline")
	}
}

// safeCtrl is a concurrency-safe recording controller.
type safeCtrl struct {
	mu     sync.Mutex
	writes [][]byte
}

func (c *safeCtrl) Request(buf []byte) (int, error) { return 0, nil }

func (c *safeCtrl) Write(p []byte) error {
	w := make([]byte, len(p))
	copy(w, p)
	c.mu.Lock()
	c.writes = append(c.writes, w)
	c.mu.Unlock()
	return nil
}

// The request surface submits from preemptive handler goroutines; every
// command must reach the wire as an intact byte pair.
func TestSenderConcurrentSubmits(t *testing.T) {
	ctrl := &safeCtrl{}
	state := NewState()
	state.setOnline(true)
	s := NewSender(state, ctrl, nil)

	var wg sync.WaitGroup
	for g := 0; g < 2; g++ {
		track := uint8(g + 1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if err := s.PlayTrack(track); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	if len(ctrl.writes) != 2000 {
		t.Fatalf("writes = %d, want 2000", len(ctrl.writes))
	}
	for _, w := range ctrl.writes {
		if len(w) != 2 || w[0] != 'P' || (w[1] != 1 && w[1] != 2) {
			t.Fatalf("interleaved command pair on the wire: % X", w)
		}
	}
}
