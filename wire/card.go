package wire

import "nodelink-go/x/conv"

// CardIDLen is the number of raw identifier bytes carried by a card frame.
const CardIDLen = 4

// CardID is the raw reader identifier. It renders as zero-padded uppercase
// hex concatenated in byte order ("DEADBEEF" for DE AD BE EF).
type CardID [CardIDLen]byte

func (id CardID) String() string { return conv.HexUpper(id[:]) }

// NoCard is the sentinel the coordinator exposes when no card has been
// observed since the link came up (or went down).
const NoCard = "N/A"

// EncodeCard builds a card frame: bytes 1..4 raw identifier, rest zero.
func EncodeCard(id CardID) Frame {
	f := Frame{Kind: KindCard}
	copy(f.Payload[:], id[:])
	return f
}

// Card extracts the identifier from a card frame payload.
func (f Frame) Card() CardID {
	var id CardID
	copy(id[:], f.Payload[:CardIDLen])
	return id
}
