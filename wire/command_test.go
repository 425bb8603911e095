package wire

import (
	"bytes"
	"testing"
)

func TestAppendCommand(t *testing.T) {
	if got := AppendCommand(nil, Command{Tag: CmdPlayTrack, Track: 5}); !bytes.Equal(got, []byte{'P', 5}) {
		t.Fatalf("play = % X", got)
	}
	if got := AppendCommand(nil, Command{Tag: CmdVolumeUp}); !bytes.Equal(got, []byte{'+'}) {
		t.Fatalf("vol up = % X", got)
	}
	if got := AppendCommand(nil, Command{Tag: CmdVolumeDown}); !bytes.Equal(got, []byte{'-'}) {
		t.Fatalf("vol down = % X", got)
	}
}

func TestParseCommand(t *testing.T) {
	c, err := ParseCommand([]byte{'P', 7}, 0)
	if err != nil || c.Tag != CmdPlayTrack || c.Track != 7 {
		t.Fatalf("play parse: %+v %v", c, err)
	}
	c, err = ParseCommand([]byte{'+'}, 3)
	if err != nil || c.Tag != CmdVolumeUp || c.Track != 0 {
		t.Fatalf("vol up parse: %+v %v", c, err)
	}
	if _, err := ParseCommand([]byte{'?'}, 0); err != ErrUnknownCommand {
		t.Fatalf("want ErrUnknownCommand, got %v", err)
	}
	if _, err := ParseCommand(nil, 0); err != ErrUnknownCommand {
		t.Fatalf("empty: want ErrUnknownCommand, got %v", err)
	}
}

// A play tag without its parameter byte reuses the previously seen track.
func TestParseCommandTagOnlyPlayReusesTrack(t *testing.T) {
	c, err := ParseCommand([]byte{'P'}, 9)
	if err != nil || c.Track != 9 {
		t.Fatalf("tag-only play: %+v %v", c, err)
	}
}
