//go:build rp2040 || rp2350

// Command boardtest is a bring-up check for the peripheral board: it probes
// the card reader's version register, emits one audio frame, exercises the
// light pins, and reports each step over USB serial. Run it before flashing
// the real firmware to catch wiring mistakes.
package main

import (
	"machine"
	"time"

	"github.com/jangala-dev/tinygo-uartx/uartx"

	"nodelink-go/drivers/dfplayer"
	"nodelink-go/drivers/mfrc522"
	"nodelink-go/x/conv"
)

const (
	pinCardCS = machine.GP22
	stepDelay = 500 * time.Millisecond
)

var lightPins = []machine.Pin{machine.LED, machine.GP15}

func step(name string, ok bool, detail string) {
	status := "FAIL"
	if ok {
		status = "ok"
	}
	if detail != "" {
		println("[boardtest]", name+":", status, "("+detail+")")
	} else {
		println("[boardtest]", name+":", status)
	}
}

func main() {
	time.Sleep(3 * time.Second)
	println("[boardtest] start")

	// Lights: visible sweep so a missing wire shows immediately.
	for _, p := range lightPins {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	}
	for i := 0; i < 3; i++ {
		for _, p := range lightPins {
			p.High()
			time.Sleep(stepDelay)
			p.Low()
		}
	}
	step("lights", true, "")

	// Card reader: the version register answers 0x91/0x92 on genuine parts.
	err := machine.SPI0.Configure(machine.SPIConfig{Frequency: 1_000_000})
	if err != nil {
		step("spi", false, err.Error())
	} else {
		pinCardCS.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pinCardCS.High()
		rfid := mfrc522.New(machine.SPI0, func(high bool) { pinCardCS.Set(high) })
		if err := rfid.Configure(); err != nil {
			step("rfid", false, err.Error())
		} else {
			v, err := rfid.Version()
			step("rfid", err == nil && v != 0x00 && v != 0xFF, "version "+conv.HexUpper([]byte{v}))
		}
	}

	// Audio: one play-track frame; listen for the module's click or watch
	// its busy LED.
	if err := dfplayer.OpenUART(uartx.UART0, machine.UART0_TX_PIN, machine.UART0_RX_PIN); err != nil {
		step("uart", false, err.Error())
	} else {
		audio := dfplayer.New(uartx.UART0)
		err := audio.SetVolume(15)
		if err == nil {
			err = audio.PlayTrack(1)
		}
		step("audio", err == nil, "")
	}

	println("[boardtest] done; looping card scan")
	rfid := mfrc522.New(machine.SPI0, func(high bool) { pinCardCS.Set(high) })
	for {
		if rfid.CardPresent() {
			var uid [4]byte
			if err := rfid.ReadUID(&uid); err == nil {
				println("[boardtest] card", conv.HexUpper(uid[:]))
			}
		}
		time.Sleep(200 * time.Millisecond)
	}
}
