//go:build !(rp2040 || rp2350)

package dfplayer

import "go.bug.st/serial"

// OpenPort opens a host serial port configured for the module (9600 8N1).
// The returned port satisfies io.Writer and feeds New directly.
func OpenPort(name string) (serial.Port, error) {
	return serial.Open(name, &serial.Mode{
		BaudRate: 9600,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
}
