package timex

import "time"

var boot = time.Now()

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Millis returns milliseconds since boot on a wrapping 32-bit counter,
// the shape the cooperative schedulers in this repo gate on. Wraps after
// ~49.7 days; use Since32 for interval arithmetic across the wrap.
func Millis() uint32 { return uint32(time.Since(boot) / time.Millisecond) }

// Since32 returns now-then on the wrapping 32-bit millisecond clock.
// Unsigned subtraction keeps the result correct across wraparound for any
// real gap under 2^31 ms.
func Since32(now, then uint32) uint32 { return now - then }
