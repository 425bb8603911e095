package dfplayer

import (
	"bytes"
	"testing"
)

type recorder struct{ frames [][]byte }

func (r *recorder) Write(p []byte) (int, error) {
	f := make([]byte, len(p))
	copy(f, p)
	r.frames = append(r.frames, f)
	return len(p), nil
}

func TestPlayTrackFrame(t *testing.T) {
	rec := &recorder{}
	d := New(rec)
	if err := d.PlayTrack(1); err != nil {
		t.Fatal(err)
	}
	// Reference frame for "play track 1" from the module datasheet.
	want := []byte{0x7E, 0xFF, 0x06, 0x03, 0x00, 0x00, 0x01, 0xFE, 0xF7, 0xEF}
	if len(rec.frames) != 1 || !bytes.Equal(rec.frames[0], want) {
		t.Fatalf("frame = % X, want % X", rec.frames[0], want)
	}
}

func TestChecksumCoversPayload(t *testing.T) {
	rec := &recorder{}
	d := New(rec)
	_ = d.VolumeUp()
	_ = d.SetVolume(15)
	for _, f := range rec.frames {
		var sum uint16
		for _, c := range f[1:7] {
			sum += uint16(c)
		}
		got := uint16(f[7])<<8 | uint16(f[8])
		if got != -sum {
			t.Fatalf("frame % X: checksum %04X, want %04X", f, got, -sum)
		}
		if f[0] != 0x7E || f[9] != 0xEF {
			t.Fatalf("frame % X: bad delimiters", f)
		}
	}
}

func TestSetVolumeClamps(t *testing.T) {
	rec := &recorder{}
	d := New(rec)
	_ = d.SetVolume(200)
	f := rec.frames[0]
	if f[6] != MaxVolume {
		t.Fatalf("volume byte = %d, want %d", f[6], MaxVolume)
	}
}
