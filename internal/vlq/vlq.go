// Package vlq implements the variable-length-quantity Base64 codec used
// by the Source Map v3 "mappings" field.
//
// Each digit carries five data bits plus one continuation bit (bit 5).
// The sign occupies the least significant bit of the value prior to
// digit-splitting. Digits are emitted least-significant-first.
package vlq

import (
	"errors"
	"strings"
)

// Alphabet is the Base64 alphabet used for VLQ digits.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var values [128]int

func init() {
	for i := range values {
		values[i] = -1
	}
	for i, c := range Alphabet {
		values[c] = i
	}
}

const (
	baseShift       = 5
	base            = 1 << baseShift
	baseMask        = base - 1
	continuationBit = base
	signBit         = 1
)

// ErrInvalidBase64Char is returned when a decoded byte is not a member
// of the VLQ Base64 alphabet.
var ErrInvalidBase64Char = errors.New("vlq: invalid base64 character")

// ErrValueTooLarge is returned when the accumulated shift of a decoded
// value reaches 32 bits without terminating.
var ErrValueTooLarge = errors.New("vlq: value too large")

// ErrUnexpectedEnd is returned when the input ends while a continuation
// bit is still set on the last digit consumed.
var ErrUnexpectedEnd = errors.New("vlq: unexpected end of input")

// EncodeInt encodes a signed integer as a VLQ Base64 digit run. It always
// produces at least one digit.
func EncodeInt(n int) string {
	var v uint64
	if n < 0 {
		v = uint64(-int64(n))<<1 | signBit
	} else {
		v = uint64(n) << 1
	}

	var buf strings.Builder
	for {
		digit := v & baseMask
		v >>= baseShift
		if v > 0 {
			digit |= continuationBit
		}
		buf.WriteByte(Alphabet[digit])
		if v == 0 {
			break
		}
	}
	return buf.String()
}

// EncodeSegment concatenates the VLQ encoding of each field with no
// separator. An empty slice encodes to the empty string.
func EncodeSegment(fields []int) string {
	var buf strings.Builder
	for _, f := range fields {
		buf.WriteString(EncodeInt(f))
	}
	return buf.String()
}

// DecodeInt decodes a single VLQ value starting at the beginning of s
// and reports how many bytes it consumed.
func DecodeInt(s string) (value int, consumed int, err error) {
	var v uint64
	var shift uint32

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 128 || values[c] < 0 {
			return 0, 0, ErrInvalidBase64Char
		}
		digit := values[c]
		cont := digit&continuationBit != 0
		digit &= baseMask

		if shift >= 32 {
			return 0, 0, ErrValueTooLarge
		}
		v |= uint64(digit) << shift
		shift += baseShift
		consumed++

		if !cont {
			negative := v&signBit != 0
			v >>= 1
			if negative {
				return -int(v), consumed, nil
			}
			return int(v), consumed, nil
		}
	}
	return 0, 0, ErrUnexpectedEnd
}

// DecodeSegment decodes exactly n consecutive VLQ values from the start
// of s.
func DecodeSegment(s string, n int) ([]int, error) {
	values := make([]int, 0, n)
	pos := 0
	for i := 0; i < n; i++ {
		if pos >= len(s) {
			return nil, ErrUnexpectedEnd
		}
		v, consumed, err := DecodeInt(s[pos:])
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		pos += consumed
	}
	return values, nil
}
