package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SimConfig is the simulator's YAML document. Zero values fall back to the
// deployed timings, so an empty file is a valid run.
type SimConfig struct {
	Web struct {
		Addr string `yaml:"addr"`
	} `yaml:"web"`

	Link struct {
		// FlapEverySec periodically unplugs the simulated bus for one
		// second. Zero disables flapping.
		FlapEverySec int `yaml:"flap_every_s"`
	} `yaml:"link"`

	Peripheral struct {
		CardEveryMs uint32 `yaml:"card_every_ms"`
		EnvEveryMs  uint32 `yaml:"env_every_ms"`
		// Cards are 8-digit hex UIDs presented in rotation.
		Cards       []string `yaml:"cards"`
		CardHoldSec int      `yaml:"card_hold_s"`
		// AudioPort names a serial port with a real DFPlayer attached
		// (e.g. /dev/ttyUSB0). Empty logs playback to the console.
		AudioPort string `yaml:"audio_port"`
	} `yaml:"peripheral"`

	Coordinator struct {
		PollEveryMs uint32 `yaml:"poll_every_ms"`
	} `yaml:"coordinator"`
}

func loadConfig(path string) (SimConfig, error) {
	var cfg SimConfig
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, err
		}
	}
	if cfg.Web.Addr == "" {
		cfg.Web.Addr = "localhost:8080"
	}
	if cfg.Peripheral.CardEveryMs == 0 {
		cfg.Peripheral.CardEveryMs = 200
	}
	if cfg.Peripheral.EnvEveryMs == 0 {
		cfg.Peripheral.EnvEveryMs = 2500
	}
	if len(cfg.Peripheral.Cards) == 0 {
		cfg.Peripheral.Cards = []string{"DEADBEEF", "0A1B2C3D"}
	}
	if cfg.Peripheral.CardHoldSec == 0 {
		cfg.Peripheral.CardHoldSec = 5
	}
	if cfg.Coordinator.PollEveryMs == 0 {
		cfg.Coordinator.PollEveryMs = 500
	}
	return cfg, nil
}
