// Package mfrc522 is a minimal driver for the MFRC522 RFID reader over SPI.
// It covers exactly what a badge-scan loop needs: configure the chip, detect
// a card in the field, and read its 4-byte UID. Authentication, MIFARE
// sectors, and 7/10-byte cascades are out of scope.
package mfrc522

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Registers (datasheet section 9).
const (
	regCommand    = 0x01
	regComIEn     = 0x02
	regComIrq     = 0x04
	regError      = 0x06
	regFIFOData   = 0x09
	regFIFOLevel  = 0x0A
	regControl    = 0x0C
	regBitFraming = 0x0D
	regMode       = 0x11
	regTxControl  = 0x14
	regTxASK      = 0x15
	regTMode      = 0x2A
	regTPrescaler = 0x2B
	regTReloadH   = 0x2C
	regTReloadL   = 0x2D
	regVersion    = 0x37
)

// Chip commands.
const (
	cmdIdle       = 0x00
	cmdTransceive = 0x0C
	cmdSoftReset  = 0x0F
)

// PICC commands.
const (
	piccReqA     = 0x26
	piccAntiColl = 0x93
)

var (
	ErrNoCard   = errors.New("mfrc522: no card")
	ErrProtocol = errors.New("mfrc522: protocol error")
	ErrTimeout  = errors.New("mfrc522: timeout")
)

// PinOutput drives the chip-select line (active low).
type PinOutput func(high bool)

// Device wraps an SPI connection to an MFRC522. The SPI bus must already be
// configured (mode 0, up to 10 MHz).
type Device struct {
	bus drivers.SPI
	cs  PinOutput

	tx [2]byte
	rx [2]byte
}

func New(bus drivers.SPI, cs PinOutput) Device {
	return Device{bus: bus, cs: cs}
}

// Configure soft-resets the chip, programs the timeout timer and modulation,
// and switches the antenna on.
func (d *Device) Configure() error {
	if err := d.writeReg(regCommand, cmdSoftReset); err != nil {
		return err
	}
	// ~25ms timeout: timer ticks at 13.56MHz/(2*prescaler+1).
	steps := []struct{ reg, val byte }{
		{regTMode, 0x8D},
		{regTPrescaler, 0x3E},
		{regTReloadL, 30},
		{regTReloadH, 0},
		{regTxASK, 0x40}, // force 100% ASK
		{regMode, 0x3D},  // CRC preset 0x6363
	}
	for _, s := range steps {
		if err := d.writeReg(s.reg, s.val); err != nil {
			return err
		}
	}
	return d.antennaOn()
}

// Version reads the chip version register (0x91 or 0x92 on genuine parts).
// Useful as a wiring self-check.
func (d *Device) Version() (byte, error) { return d.readReg(regVersion) }

// CardPresent probes the field with a REQA and reports whether any card
// answered. The card is left in READY state for ReadUID.
func (d *Device) CardPresent() bool {
	atqa := make([]byte, 2)
	n, err := d.transceive([]byte{piccReqA}, 7, atqa)
	return err == nil && n == 2
}

// ReadUID runs the cascade level 1 anticollision and returns the 4-byte
// UID. Callers should probe with CardPresent first; without a card in READY
// state the exchange times out with ErrNoCard.
func (d *Device) ReadUID(uid *[4]byte) error {
	resp := make([]byte, 5)
	n, err := d.transceive([]byte{piccAntiColl, 0x20}, 0, resp)
	if err != nil {
		return err
	}
	if n != 5 {
		return ErrProtocol
	}
	// Byte 4 is the BCC: XOR of the UID bytes.
	if resp[0]^resp[1]^resp[2]^resp[3] != resp[4] {
		return ErrProtocol
	}
	copy(uid[:], resp[:4])
	return nil
}

// transceive sends data through the FIFO and collects the response.
// txLastBits narrows the final byte for short frames (REQA is 7 bits);
// zero means full bytes.
func (d *Device) transceive(data []byte, txLastBits byte, resp []byte) (int, error) {
	if err := d.writeReg(regCommand, cmdIdle); err != nil {
		return 0, err
	}
	if err := d.writeReg(regComIrq, 0x7F); err != nil { // clear all irq bits
		return 0, err
	}
	if err := d.writeReg(regFIFOLevel, 0x80); err != nil { // flush FIFO
		return 0, err
	}
	for _, b := range data {
		if err := d.writeReg(regFIFOData, b); err != nil {
			return 0, err
		}
	}
	if err := d.writeReg(regCommand, cmdTransceive); err != nil {
		return 0, err
	}
	// StartSend plus the short-frame bit count.
	if err := d.writeReg(regBitFraming, 0x80|txLastBits); err != nil {
		return 0, err
	}

	// Poll for RxIRq or IdleIRq; the chip's own timer bounds the wait and
	// raises TimerIRq when nothing answers.
	for i := 0; i < 2000; i++ {
		irq, err := d.readReg(regComIrq)
		if err != nil {
			return 0, err
		}
		if irq&0x30 != 0 { // RxIRq | IdleIRq
			break
		}
		if irq&0x01 != 0 { // TimerIRq: nothing in the field
			return 0, ErrNoCard
		}
		if i == 1999 {
			return 0, ErrTimeout
		}
	}

	e, err := d.readReg(regError)
	if err != nil {
		return 0, err
	}
	if e&0x13 != 0 { // BufferOvfl | ParityErr | ProtocolErr
		return 0, ErrProtocol
	}

	n, err := d.readReg(regFIFOLevel)
	if err != nil {
		return 0, err
	}
	if int(n) > len(resp) {
		n = byte(len(resp))
	}
	for i := 0; i < int(n); i++ {
		b, err := d.readReg(regFIFOData)
		if err != nil {
			return 0, err
		}
		resp[i] = b
	}
	return int(n), nil
}

func (d *Device) antennaOn() error {
	v, err := d.readReg(regTxControl)
	if err != nil {
		return err
	}
	if v&0x03 == 0x03 {
		return nil
	}
	return d.writeReg(regTxControl, v|0x03)
}

// SPI register access: address byte is (reg<<1)&0x7E, bit 7 set for reads.

func (d *Device) writeReg(reg, val byte) error {
	d.tx[0] = (reg << 1) & 0x7E
	d.tx[1] = val
	d.cs(false)
	err := d.bus.Tx(d.tx[:], d.rx[:])
	d.cs(true)
	return err
}

func (d *Device) readReg(reg byte) (byte, error) {
	d.tx[0] = ((reg << 1) & 0x7E) | 0x80
	d.tx[1] = 0
	d.cs(false)
	err := d.bus.Tx(d.tx[:], d.rx[:])
	d.cs(true)
	return d.rx[1], err
}
