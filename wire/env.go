package wire

// EnvReading is one environment sample in fixed point: temperature in tenths
// of a degree C, humidity in whole percent, light as a raw signed level.
// Fixed point keeps the hot path off floating point on MCU builds.
type EnvReading struct {
	DeciCelsius int16
	Humidity    uint8
	Light       int16
}

// Celsius returns the temperature scaled to degrees.
func (r EnvReading) Celsius() float64 { return float64(r.DeciCelsius) / 10 }

// EncodeEnv builds an environment frame:
// bytes 1-2 temperature (int16 BE, x10), byte 3 humidity (%),
// bytes 4-5 light (int16 BE), bytes 6-9 zero.
func EncodeEnv(r EnvReading) Frame {
	f := Frame{Kind: KindEnv}
	f.Payload[0] = byte(uint16(r.DeciCelsius) >> 8)
	f.Payload[1] = byte(uint16(r.DeciCelsius))
	f.Payload[2] = r.Humidity
	f.Payload[3] = byte(uint16(r.Light) >> 8)
	f.Payload[4] = byte(uint16(r.Light))
	return f
}

// Env extracts the reading from an environment frame payload.
func (f Frame) Env() EnvReading {
	return EnvReading{
		DeciCelsius: int16(uint16(f.Payload[0])<<8 | uint16(f.Payload[1])),
		Humidity:    f.Payload[2],
		Light:       int16(uint16(f.Payload[3])<<8 | uint16(f.Payload[4])),
	}
}
