package classfile

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// decodeModifiedUtf8 decodes the JVM's modified UTF-8: NUL is written as
// C0 80 and supplementary characters as surrogate pairs of three bytes each.
// Malformed input still yields a string, with U+FFFD in place of bad bytes,
// together with an error pointing at the first bad byte.
func decodeModifiedUtf8(b []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(b))

	var err error
	bad := func(pos int) {
		if err == nil {
			err = &Utf8Error{Pos: pos}
		}
		sb.WriteRune(utf8.RuneError)
	}

	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == 0 || c >= 0xF0:
			bad(i)
			i++
		case c < 0x80:
			sb.WriteByte(c)
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(b) || !isContinuation(b[i+1]) {
				bad(i)
				i++
				continue
			}
			sb.WriteRune(rune(c&0x1F)<<6 | rune(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0:
			r, ok := decodeThree(b, i)
			if !ok {
				bad(i)
				i++
				continue
			}
			i += 3
			if utf16.IsSurrogate(r) && r < 0xDC00 {
				if low, ok := decodeThree(b, i); ok && low >= 0xDC00 && low <= 0xDFFF {
					r = utf16.DecodeRune(r, low)
					i += 3
				}
			}
			// A lone surrogate is legal here but has no UTF-8 form; WriteRune
			// substitutes U+FFFD.
			sb.WriteRune(r)
		default:
			bad(i)
			i++
		}
	}
	return sb.String(), err
}

func decodeThree(b []byte, i int) (rune, bool) {
	if i+2 >= len(b) || b[i]&0xF0 != 0xE0 || !isContinuation(b[i+1]) || !isContinuation(b[i+2]) {
		return 0, false
	}
	return rune(b[i]&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F), true
}

func isContinuation(c byte) bool { return c&0xC0 == 0x80 }

func encodeModifiedUtf8(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r == 0:
			out = append(out, 0xC0, 0x80)
		case r < 0x80:
			out = append(out, byte(r))
		case r < 0x800:
			out = append(out, 0xC0|byte(r>>6), 0x80|byte(r&0x3F))
		case r < 0x10000:
			out = appendThree(out, r)
		default:
			high, low := utf16.EncodeRune(r)
			out = appendThree(out, high)
			out = appendThree(out, low)
		}
	}
	return out
}

func appendThree(out []byte, r rune) []byte {
	return append(out, 0xE0|byte(r>>12), 0x80|byte((r>>6)&0x3F), 0x80|byte(r&0x3F))
}
