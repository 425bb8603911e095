// Package dfplayer drives the DFPlayer Mini MP3 module over a serial link.
// The module speaks 10-byte framed commands at 9600 baud:
//
//	0x7E 0xFF 0x06 CMD FB PARAM_H PARAM_L CK_H CK_L 0xEF
//
// where CK is the two's complement of the sum of bytes 1..6. The driver is
// write-only: feedback requests are disabled and replies, if any, are left
// on the wire. That keeps every call non-blocking, which the callers (six
// of them inside scheduler tasks) rely on.
package dfplayer

import "io"

const frameLen = 10

// Module command bytes (per DFPlayer Mini datasheet).
const (
	cmdPlayTrack  = 0x03
	cmdVolumeUp   = 0x04
	cmdVolumeDown = 0x05
	cmdSetVolume  = 0x06
	cmdReset      = 0x0C
	cmdPlay       = 0x0D
	cmdPause      = 0x0E
)

// MaxVolume is the module's volume ceiling.
const MaxVolume = 30

// Device wraps a serial port connected to a DFPlayer Mini. Construct with
// New; the port must already be configured for 9600 8N1.
type Device struct {
	port io.Writer
	buf  [frameLen]byte
}

func New(port io.Writer) Device {
	return Device{port: port}
}

// PlayTrack starts playback of track n (1-based index on the storage
// medium). Track 0 is accepted and addresses whatever the module resolves
// it to; the protocol does not reject it.
func (d *Device) PlayTrack(n uint8) error { return d.send(cmdPlayTrack, 0, uint16(n)) }

// VolumeUp raises the volume one step. The module clamps at MaxVolume.
func (d *Device) VolumeUp() error { return d.send(cmdVolumeUp, 0, 0) }

// VolumeDown lowers the volume one step. The module clamps at zero.
func (d *Device) VolumeDown() error { return d.send(cmdVolumeDown, 0, 0) }

// SetVolume sets the absolute volume, clamped to MaxVolume.
func (d *Device) SetVolume(v uint8) error {
	if v > MaxVolume {
		v = MaxVolume
	}
	return d.send(cmdSetVolume, 0, uint16(v))
}

// Play resumes paused playback.
func (d *Device) Play() error { return d.send(cmdPlay, 0, 0) }

// Pause pauses playback.
func (d *Device) Pause() error { return d.send(cmdPause, 0, 0) }

// Reset soft-resets the module. Give it ~1.5s before the next command.
func (d *Device) Reset() error { return d.send(cmdReset, 0, 0) }

func (d *Device) send(cmd byte, feedback byte, param uint16) error {
	b := &d.buf
	b[0] = 0x7E
	b[1] = 0xFF
	b[2] = 0x06
	b[3] = cmd
	b[4] = feedback
	b[5] = byte(param >> 8)
	b[6] = byte(param)
	ck := checksum(b[1:7])
	b[7] = byte(ck >> 8)
	b[8] = byte(ck)
	b[9] = 0xEF
	_, err := d.port.Write(b[:])
	return err
}

func checksum(p []byte) uint16 {
	var sum uint16
	for _, c := range p {
		sum += uint16(c)
	}
	return -sum
}
