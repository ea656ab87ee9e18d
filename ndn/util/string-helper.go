/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package util

const hexUpper = "0123456789ABCDEF"
const hexLower = "0123456789abcdef"

// ToHexChar converts the least significant nibble of n to the corresponding hex character.
func ToHexChar(n byte, wantUpperCase bool) byte {
	if wantUpperCase {
		return hexUpper[n&0x0f]
	}
	return hexLower[n&0x0f]
}

// FromHexChar converts the hex character c to an integer in [0, 15], or -1 if it is not a hex character.
func FromHexChar(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// ToHex returns the hex representation of buf: exactly two hex characters per octet, no separators.
func ToHex(buf []byte, wantUpperCase bool) string {
	out := make([]byte, 0, 2*len(buf))
	for _, b := range buf {
		out = append(out, ToHexChar(b>>4, wantUpperCase), ToHexChar(b, wantUpperCase))
	}
	return string(out)
}

// FromHex converts a sequence of hex character pairs (either case) to a byte buffer. Fails on
// odd-length input or any non-hex character.
func FromHex(hexString string) ([]byte, error) {
	if len(hexString)%2 != 0 {
		return nil, ErrInvalidHex
	}

	out := make([]byte, len(hexString)/2)
	for i := 0; i < len(out); i++ {
		hi := FromHexChar(hexString[2*i])
		lo := FromHexChar(hexString[2*i+1])
		if hi < 0 || lo < 0 {
			return nil, ErrInvalidHex
		}
		out[i] = byte(hi<<4 | lo)
	}
	return out, nil
}

func isUnreserved(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') ||
		b == '-' || b == '.' || b == '_' || b == '~'
}

// Escape percent-encodes str per RFC 3986: every byte outside the unreserved set becomes %XX
// with uppercase hex digits.
func Escape(str string) string {
	out := make([]byte, 0, len(str))
	for i := 0; i < len(str); i++ {
		b := str[i]
		if isUnreserved(b) {
			out = append(out, b)
		} else {
			out = append(out, '%', ToHexChar(b>>4, true), ToHexChar(b, true))
		}
	}
	return string(out)
}

// Unescape decodes a percent-encoded string. A % not followed by two hex characters is left
// unchanged, along with the characters following it.
func Unescape(str string) string {
	out := make([]byte, 0, len(str))
	for i := 0; i < len(str); i++ {
		if str[i] == '%' && i+2 < len(str) {
			hi := FromHexChar(str[i+1])
			lo := FromHexChar(str[i+2])
			if hi >= 0 && lo >= 0 {
				out = append(out, byte(hi<<4|lo))
				i += 2
				continue
			}
		}
		out = append(out, str[i])
	}
	return string(out)
}
