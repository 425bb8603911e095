package conv

const hexd = "0123456789ABCDEF"

// AppendHexUpper appends each byte of p as two zero-padded uppercase hex
// digits. No allocations beyond dst growth; no fmt dependency.
func AppendHexUpper(dst []byte, p []byte) []byte {
	for _, b := range p {
		dst = append(dst, hexd[b>>4], hexd[b&0xF])
	}
	return dst
}

// HexUpper renders p as concatenated zero-padded uppercase hex, the wire
// rendering used for card identifiers.
func HexUpper(p []byte) string {
	return string(AppendHexUpper(make([]byte, 0, len(p)*2), p))
}
