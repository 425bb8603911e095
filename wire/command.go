package wire

import "nodelink-go/errcode"

// Commands travel coordinator->peripheral as 1- or 2-byte write transactions:
// a tag byte, plus a parameter byte for CmdPlayTrack. The tags are printable
// on purpose so a bus analyzer shows them directly.

// CmdTag is the command tag in byte 0 of a write transaction.
type CmdTag byte

const (
	CmdPlayTrack  CmdTag = 'P'
	CmdVolumeUp   CmdTag = '+'
	CmdVolumeDown CmdTag = '-'
)

func (t CmdTag) String() string {
	switch t {
	case CmdPlayTrack:
		return "play"
	case CmdVolumeUp:
		return "vol_up"
	case CmdVolumeDown:
		return "vol_down"
	default:
		return "unknown"
	}
}

// Command is one decoded actuator command. Track is meaningful only for
// CmdPlayTrack.
type Command struct {
	Tag   CmdTag
	Track byte
}

// ErrUnknownCommand reports a tag byte outside the command set.
var ErrUnknownCommand = errcode.UnknownCommand

// AppendCommand serializes c into dst: tag byte, plus the track byte for
// play commands.
func AppendCommand(dst []byte, c Command) []byte {
	dst = append(dst, byte(c.Tag))
	if c.Tag == CmdPlayTrack {
		dst = append(dst, c.Track)
	}
	return dst
}

// ParseCommand decodes the raw bytes of a write transaction. For CmdPlayTrack
// the parameter byte is read only if the transaction delivered it; prevTrack
// is returned in its place otherwise. Reusing the previous track on a
// tag-only play is wire-compatible behavior this revision keeps as-is; it may
// be a latent stale-parameter reuse rather than intent.
func ParseCommand(p []byte, prevTrack byte) (Command, error) {
	if len(p) < 1 {
		return Command{}, ErrUnknownCommand
	}
	switch CmdTag(p[0]) {
	case CmdPlayTrack:
		c := Command{Tag: CmdPlayTrack, Track: prevTrack}
		if len(p) > 1 {
			c.Track = p[1]
		}
		return c, nil
	case CmdVolumeUp:
		return Command{Tag: CmdVolumeUp}, nil
	case CmdVolumeDown:
		return Command{Tag: CmdVolumeDown}, nil
	default:
		return Command{}, ErrUnknownCommand
	}
}
