//go:build rp2040 || rp2350

// Peripheral node firmware: samples the card reader and the environment
// sensors, queues events for the coordinator's polls, and plays audio
// commands. The I2C target port is served from its own goroutine; the
// sampling tasks run on the cooperative loop.
package main

import (
	"context"
	"machine"
	"time"

	"github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/dht"

	"nodelink-go/drivers/dfplayer"
	"nodelink-go/drivers/mfrc522"
	"nodelink-go/peripheral"
	"nodelink-go/sched"
	"nodelink-go/twi"
	"nodelink-go/wire"
	"nodelink-go/x/mathx"
)

const portAddr = 8

// Pin plan: SPI0 for the card reader, GP22 its chip select, GP16 the DHT22,
// ADC0 the light sensor, UART0 the audio module.
const (
	pinCardCS = machine.GP22
	pinDHT    = machine.GP16
)

type cardReader struct{ d *mfrc522.Device }

func (r cardReader) ReadCard() (wire.CardID, bool) {
	var id wire.CardID
	if !r.d.CardPresent() {
		return id, false
	}
	if err := r.d.ReadUID((*[4]byte)(&id)); err != nil {
		return id, false
	}
	return id, true
}

type envSensor struct {
	d     dht.Device
	light machine.ADC
}

func (s envSensor) ReadEnv() (wire.EnvReading, error) {
	if err := s.d.ReadMeasurements(); err != nil {
		return wire.EnvReading{}, err
	}
	t, err := s.d.Temperature() // already tenths of a degree
	if err != nil {
		return wire.EnvReading{}, err
	}
	h, err := s.d.Humidity() // tenths of a percent
	if err != nil {
		return wire.EnvReading{}, err
	}
	// Full-scale ADC sample narrowed to the 10-bit range the wire carries.
	lum := int16(mathx.MapU16(s.light.Get(), 0, 0xFFFF, 0, 1023))
	return wire.EnvReading{DeciCelsius: t, Humidity: uint8(h / 10), Light: lum}, nil
}

type audioPlayer struct{ d *dfplayer.Device }

func (p audioPlayer) Play(track uint8) error { return p.d.PlayTrack(track) }
func (p audioPlayer) VolumeUp() error        { return p.d.VolumeUp() }
func (p audioPlayer) VolumeDown() error      { return p.d.VolumeDown() }

func main() {
	time.Sleep(2 * time.Second)
	println("[main] peripheral boot")

	if err := machine.SPI0.Configure(machine.SPIConfig{Frequency: 1_000_000}); err != nil {
		println("[main] spi configure:", err.Error())
		return
	}
	pinCardCS.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinCardCS.High()
	rfid := mfrc522.New(machine.SPI0, func(high bool) { pinCardCS.Set(high) })
	if err := rfid.Configure(); err != nil {
		println("[main] rfid configure:", err.Error())
	}

	machine.InitADC()
	light := machine.ADC{Pin: machine.ADC0}
	light.Configure(machine.ADCConfig{})

	sensor := dht.New(pinDHT, dht.DHT22)

	if err := dfplayer.OpenUART(uartx.UART0, machine.UART0_TX_PIN, machine.UART0_RX_PIN); err != nil {
		println("[main] uart configure:", err.Error())
	}
	audio := dfplayer.New(uartx.UART0)
	_ = audio.SetVolume(20)

	port, err := twi.ListenI2C(machine.I2C0, portAddr)
	if err != nil {
		println("[main] i2c listen:", err.Error())
		return
	}

	ctx := context.Background()
	node := peripheral.NewNode(cardReader{&rfid}, envSensor{d: sensor, light: light}, audioPlayer{&audio})
	go node.ServePort(ctx, port)

	loop := sched.NewLoop(sched.WallClock)
	node.Register(loop, peripheral.DefaultConfig())

	println("[main] running")
	_ = loop.Run(ctx)
}
