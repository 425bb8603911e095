//go:build rp2040 || rp2350

package dfplayer

import (
	"machine"

	"github.com/jangala-dev/tinygo-uartx/uartx"
)

// OpenUART configures a hardware UART for the module (9600 8N1) and returns
// it ready for New.
func OpenUART(u *uartx.UART, tx, rx machine.Pin) error {
	return u.Configure(uartx.UARTConfig{BaudRate: 9600, TX: tx, RX: rx})
}
