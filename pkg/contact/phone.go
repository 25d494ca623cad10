package contact

import "strings"

// MaxPhoneDigits is the longest Brazilian number (DDD + nine digit mobile).
const MaxPhoneDigits = 11

// MaxPhoneLength is the rendered length of a full mask, "(DD) DDDDD-DDDD".
const MaxPhoneLength = 15

// Digits keeps the ASCII digits of raw in order.
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// FormatPhone strips everything but digits from raw, keeps at most
// MaxPhoneDigits of them and punctuates the result progressively:
//
//	1-2 digits   (DD
//	3-6 digits   (DD) DDDD
//	7-10 digits  (DD) DDDD-DDDD
//	11 digits    (DD) DDDDD-DDDD
//
// Feeding the output back in yields the same string.
func FormatPhone(raw string) string {
	d := Digits(raw)
	if len(d) > MaxPhoneDigits {
		d = d[:MaxPhoneDigits]
	}

	switch n := len(d); {
	case n == 0:
		return ""
	case n <= 2:
		return "(" + d
	case n <= 6:
		return "(" + d[:2] + ") " + d[2:]
	case n <= 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}
