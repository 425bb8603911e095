//go:build rp2040 || rp2350

// Coordinator node firmware: polls the peripheral over I2C, keeps the
// telemetry snapshot and link state, drives the status lights. Network
// association and the remote surface are owned by the platform layer; this
// binary runs the bus side.
package main

import (
	"context"
	"machine"
	"time"

	"nodelink-go/bus"
	"nodelink-go/coordinator"
	"nodelink-go/indicator"
	"nodelink-go/sched"
	"nodelink-go/services/config"
	"nodelink-go/services/heartbeat"
	"nodelink-go/twi"
)

const peripheralAddr = 8

// Status light pins: onboard LED plus one external.
var lightPins = [2]machine.Pin{machine.LED, machine.GP15}

type pinDriver struct{}

func (pinDriver) Set(ch indicator.Channel, on bool) {
	lightPins[ch].Set(on)
}

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] coordinator boot")

	for _, p := range lightPins {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	}

	if err := machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 100_000,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	}); err != nil {
		println("[main] i2c configure:", err.Error())
		return
	}
	ctrl := twi.NewI2CController(machine.I2C0, peripheralAddr)

	ctx := context.WithValue(context.Background(), config.CtxNodeKey, "coordinator")
	b := bus.NewBus(8)
	config.NewConfigService().Start(ctx, b.NewConnection("config"))
	_ = (&heartbeat.Service{}).Start(ctx, b.NewConnection("heartbeat"))

	node := coordinator.NewNode(ctrl, pinDriver{}, nil, b.NewConnection("link"))

	// Blink until the peripheral first answers, then settle.
	node.Lights.StartBlink(indicator.Both, 250)
	node.Poller.OnFirstOnline(func() { node.Lights.Stop() })

	loop := sched.NewLoop(sched.WallClock)
	node.Register(loop, coordinator.DefaultConfig())

	println("[main] running")
	_ = loop.Run(ctx)
}
