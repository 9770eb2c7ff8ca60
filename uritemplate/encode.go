package uritemplate

import "strings"

const upperHex = "0123456789ABCDEF"

// isUnreserved reports membership in the RFC 3986 unreserved set.
func isUnreserved(c byte) bool {
	return c == '-' || c == '.' || c == '_' || c == '~' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// isReserved reports membership in the RFC 3986 reserved set (gen-delims and
// sub-delims), which reserved and fragment expansion pass through unencoded.
func isReserved(c byte) bool {
	switch c {
	case ':', '/', '?', '#', '[', ']', '@',
		'!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return true
	}
	return false
}

// escape percent-encodes s for inclusion in an expanded URI. With
// allowReserved set, characters from the reserved set pass through unchanged
// and pre-existing percent-encoded triplets are preserved rather than
// double-encoded, as reserved and fragment expansion require.
func escape(s string, allowReserved bool) string {
	needed := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || (allowReserved && isReserved(c)) {
			continue
		}
		if allowReserved && c == '%' && i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2]) {
			continue
		}
		needed++
	}
	if needed == 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2*needed)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isUnreserved(c) || (allowReserved && isReserved(c)):
			sb.WriteByte(c)
		case allowReserved && c == '%' && i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2]):
			sb.WriteByte(c)
		default:
			sb.WriteByte('%')
			sb.WriteByte(upperHex[c>>4])
			sb.WriteByte(upperHex[c&0xf])
		}
	}
	return sb.String()
}
