//go:build rp2040 || rp2350

package twi

import "machine"

// I2CController adapts a machine.I2C controller to the link. One peripheral
// address exists on the bus; it is fixed at construction.
type I2CController struct {
	bus  *machine.I2C
	addr uint16
}

func NewI2CController(bus *machine.I2C, addr uint16) *I2CController {
	return &I2CController{bus: bus, addr: addr}
}

func (c *I2CController) Request(buf []byte) (int, error) {
	if err := c.bus.Tx(c.addr, nil, buf); err != nil {
		// The hardware exchange failed or timed out; surface it as a
		// short-length result for the link state machine.
		return 0, err
	}
	return len(buf), nil
}

func (c *I2CController) Write(p []byte) error {
	return c.bus.Tx(c.addr, p, nil)
}

// I2CPort adapts a machine.I2C in target mode to the Port interface.
type I2CPort struct {
	bus *machine.I2C
}

// ListenI2C configures bus as an I2C target on addr and returns the port.
func ListenI2C(bus *machine.I2C, addr uint16) (*I2CPort, error) {
	if err := bus.Configure(machine.I2CConfig{Mode: machine.I2CModeTarget}); err != nil {
		return nil, err
	}
	if err := bus.Listen(addr); err != nil {
		return nil, err
	}
	return &I2CPort{bus: bus}, nil
}

func (p *I2CPort) WaitForEvent(buf []byte) (PortEvent, int, error) {
	evt, n, err := p.bus.WaitForEvent(buf)
	switch evt {
	case machine.I2CReceive:
		return EventReceive, n, err
	case machine.I2CRequest:
		return EventRequest, n, err
	case machine.I2CFinish:
		return EventFinish, n, err
	default:
		return EventNone, n, err
	}
}

func (p *I2CPort) Reply(b []byte) error { return p.bus.Reply(b) }
