package twi

import (
	"time"

	"nodelink-go/errcode"
)

// MemLink joins a Controller and a Port in memory: the host stand-in for the
// physical two-wire bus, used by tests and the link simulator. The implicit
// hardware exchange timeout is modeled by requestTimeout; its expiry
// manifests as a short-length result, exactly like any other malformed
// transaction.
type MemLink struct {
	ev    chan memEvent
	reply chan []byte

	connected  chan bool // capacity 1, holds current state
	reqTimeout time.Duration
}

type memEvent struct {
	kind PortEvent
	data []byte
}

func NewMemLink() *MemLink {
	l := &MemLink{
		ev:         make(chan memEvent, 8),
		reply:      make(chan []byte, 1),
		connected:  make(chan bool, 1),
		reqTimeout: 25 * time.Millisecond,
	}
	l.connected <- true
	return l
}

// SetConnected simulates plugging or unplugging the peripheral. While
// disconnected, Request returns zero bytes and writes are lost.
func (l *MemLink) SetConnected(on bool) {
	<-l.connected
	l.connected <- on
}

func (l *MemLink) isConnected() bool {
	v := <-l.connected
	l.connected <- v
	return v
}

// --- Controller side ---------------------------------------------------------

func (l *MemLink) Request(buf []byte) (int, error) {
	if !l.isConnected() {
		return 0, nil
	}
	// Drain a stale reply from an exchange that timed out earlier.
	select {
	case <-l.reply:
	default:
	}
	select {
	case l.ev <- memEvent{kind: EventRequest}:
	default:
		return 0, nil // port not servicing events
	}
	select {
	case p := <-l.reply:
		n := copy(buf, p)
		return n, nil
	case <-time.After(l.reqTimeout):
		return 0, errcode.Timeout
	}
}

func (l *MemLink) Write(p []byte) error {
	if !l.isConnected() {
		return errcode.LinkOffline
	}
	data := make([]byte, len(p))
	copy(data, p)
	select {
	case l.ev <- memEvent{kind: EventReceive, data: data}:
	default:
		// fire-and-forget: a command the port cannot take is lost
	}
	return nil
}

// --- Port side ----------------------------------------------------------------

func (l *MemLink) WaitForEvent(buf []byte) (PortEvent, int, error) {
	e := <-l.ev
	n := copy(buf, e.data)
	return e.kind, n, nil
}

func (l *MemLink) Reply(p []byte) error {
	data := make([]byte, len(p))
	copy(data, p)
	select {
	case l.reply <- data:
		return nil
	default:
		return errcode.Timeout
	}
}

var (
	_ Controller = (*MemLink)(nil)
	_ Port       = (*MemLink)(nil)
)
