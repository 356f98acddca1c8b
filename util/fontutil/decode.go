package fontutil

// Decodes the codepoint at the start of s by the class of its leading byte.
// Continuation bytes are not validated and missing ones read as zero, so
// malformed input gives a deterministic codepoint. Returns the number of
// bytes consumed (at least 1 for a non-empty s).
func DecodeRuneInString(s string) (rune, int) {
	if len(s) == 0 {
		return 0, 0
	}
	c := s[0]
	var ru rune
	n := 0
	switch c & 0xf0 {
	case 0xf0:
		ru, n = rune(c&0x07), 3
	case 0xe0:
		ru, n = rune(c&0x0f), 2
	case 0xd0, 0xc0:
		ru, n = rune(c&0x1f), 1
	default:
		ru = rune(c)
	}
	for i := 1; i <= n; i++ {
		var b byte
		if i < len(s) {
			b = s[i]
		}
		ru = ru<<6 | rune(b&0x3f)
	}
	size := 1 + n
	if size > len(s) {
		size = len(s)
	}
	return ru, size
}

func DecodeRune(b []byte) (rune, int) {
	return DecodeRuneInString(string(b))
}
