package main

import (
	"nodelink-go/drivers/dfplayer"
	"nodelink-go/peripheral"
)

// openPlayer picks the peripheral's audio actuator: a real DFPlayer on the
// named serial port, or the console logger when no port is configured.
func openPlayer(portName string) (peripheral.Player, error) {
	if portName == "" {
		return simPlayer{}, nil
	}
	port, err := dfplayer.OpenPort(portName)
	if err != nil {
		return nil, err
	}
	d := dfplayer.New(port)
	_ = d.SetVolume(20)
	println("[main] audio on", portName)
	return dfPlayer{&d}, nil
}

type dfPlayer struct{ d *dfplayer.Device }

func (p dfPlayer) Play(track uint8) error { return p.d.PlayTrack(track) }
func (p dfPlayer) VolumeUp() error        { return p.d.VolumeUp() }
func (p dfPlayer) VolumeDown() error      { return p.d.VolumeDown() }
