/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package util_test

import (
	"testing"

	"github.com/named-data/ndnwire/ndn/util"
	"github.com/stretchr/testify/assert"
)

func TestToHex(t *testing.T) {
	assert.Equal(t, "00FF0A", util.ToHex([]byte{0x00, 0xFF, 0x0A}, true))
	assert.Equal(t, "00ff0a", util.ToHex([]byte{0x00, 0xFF, 0x0A}, false))
	assert.Equal(t, "", util.ToHex([]byte{}, true))
	assert.Equal(t, "48656C6C6F", util.ToHex([]byte("Hello"), true))
}

func TestFromHex(t *testing.T) {
	buf, err := util.FromHex("48656C6C6F")
	assert.NoError(t, err)
	assert.Equal(t, []byte("Hello"), buf)

	// Case-insensitive
	buf, err = util.FromHex("48656c6c6f")
	assert.NoError(t, err)
	assert.Equal(t, []byte("Hello"), buf)

	buf, err = util.FromHex("")
	assert.NoError(t, err)
	assert.Len(t, buf, 0)

	// Odd length
	_, err = util.FromHex("48656")
	assert.ErrorIs(t, err, util.ErrInvalidHex)

	// Non-hex character
	_, err = util.FromHex("48G5")
	assert.ErrorIs(t, err, util.ErrInvalidHex)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "hello%20world", util.Escape("hello world"))
	assert.Equal(t, "100%25", util.Escape("100%"))
	assert.Equal(t, "A-Za-z0-9-._~", util.Escape("A-Za-z0-9-._~"))
	assert.Equal(t, "%00%01%FF", util.Escape(string([]byte{0x00, 0x01, 0xFF})))
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "hello world", util.Unescape("hello%20world"))
	// Malformed %Fo left intact because 'o' is not a hex digit
	assert.Equal(t, "hello world%FooBar", util.Unescape("hello%20world%FooBar"))
	// Truncated escape sequences pass through
	assert.Equal(t, "abc%", util.Unescape("abc%"))
	assert.Equal(t, "abc%4", util.Unescape("abc%4"))
	assert.Equal(t, "100%", util.Unescape("100%25"))
}

func TestEscapeRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"hello world",
		"100%",
		"/a/b/c",
		string([]byte{0x00, 0x7F, 0x80, 0xFF}),
		"ndn-wire_~.test",
	}
	for _, s := range cases {
		assert.Equal(t, s, util.Unescape(util.Escape(s)))
	}
}

func TestSharedBuffer(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03}
	shared := util.NewSharedBuffer(raw)
	assert.Equal(t, raw, shared.Bytes())
	assert.Equal(t, 3, shared.Size())

	copied := util.CopyToSharedBuffer(raw)
	raw[0] = 0xFF
	assert.Equal(t, byte(0x01), copied.Bytes()[0])

	empty := util.NewSharedBuffer(nil)
	assert.NotNil(t, empty.Bytes())
	assert.Equal(t, 0, empty.Size())
}
