// Package twi is the two-wire bus boundary between the coordinator and the
// peripheral. Exactly two parties exist on the link: the coordinator drives
// read transactions of wire.FrameSize bytes and short command writes; the
// peripheral answers from a target-mode port. MCU builds adapt machine.I2C on
// both sides; host builds pair the two halves through MemLink.
package twi

// Controller is the coordinator's side of the link.
type Controller interface {
	// Request performs one read transaction, filling buf. It returns the
	// number of bytes actually delivered; anything other than len(buf) is a
	// transport failure the caller surfaces through link state, not an error
	// to propagate.
	Request(buf []byte) (int, error)
	// Write performs one command write transaction. Fire-and-forget: no
	// acknowledgement exists on the wire.
	Write(p []byte) error
}

// PortEvent mirrors the target-mode bus events the peripheral hardware
// raises.
type PortEvent uint8

const (
	EventNone PortEvent = iota
	// EventReceive delivers the bytes of a controller write transaction.
	EventReceive
	// EventRequest asks for a reply frame; the port must call Reply before
	// the transaction window closes.
	EventRequest
	// EventFinish marks the end of a transaction.
	EventFinish
)

// Port is the peripheral's target-mode side of the link. WaitForEvent blocks,
// so the port service runs it from its own goroutine, standing in for the
// receive/request interrupt context.
type Port interface {
	WaitForEvent(buf []byte) (PortEvent, int, error)
	Reply(p []byte) error
}
