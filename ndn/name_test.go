/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn_test

import (
	"testing"

	"github.com/named-data/ndnwire/ndn"
	"github.com/named-data/ndnwire/ndn/tlv"
	"github.com/named-data/ndnwire/ndn/util"
	"github.com/stretchr/testify/assert"
)

func TestNameComponentTypes(t *testing.T) {
	g := ndn.NewGenericNameComponent([]byte("ndn"))
	assert.Equal(t, uint16(tlv.GenericNameComponent), g.Type())
	assert.Equal(t, "ndn", g.String())

	k := ndn.NewKeywordNameComponent([]byte("metadata"))
	assert.Equal(t, uint16(tlv.KeywordNameComponent), k.Type())

	seg := ndn.NewSegmentNameComponent(13)
	assert.Equal(t, uint16(tlv.SegmentNameComponent), seg.Type())
	assert.Equal(t, "seg=13", seg.String())

	v := ndn.NewVersionNameComponent(5000)
	assert.Equal(t, uint16(tlv.VersionNameComponent), v.Type())
	assert.Equal(t, "v=5000", v.String())
	assert.Equal(t, uint64(5000), v.Version())

	digest := make([]byte, 32)
	d := ndn.NewImplicitSha256DigestComponent(digest)
	assert.NotNil(t, d)
	assert.Equal(t, uint16(tlv.ImplicitSha256DigestComponent), d.Type())

	// Digest components must be exactly 32 bytes
	assert.Nil(t, ndn.NewImplicitSha256DigestComponent(make([]byte, 16)))

	b := ndn.NewBaseNameComponent(0x42, []byte{0x01})
	assert.Equal(t, "66=%01", b.String())
}

func TestNameComponentEscaping(t *testing.T) {
	g := ndn.NewGenericNameComponent([]byte("hello world"))
	assert.Equal(t, "hello%20world", g.String())

	// Components consisting solely of periods get "..." appended
	g = ndn.NewGenericNameComponent([]byte(".."))
	assert.Equal(t, ".....", g.String())
}

func TestNameFromString(t *testing.T) {
	n, err := ndn.NameFromString("/ndn/edu/go%20pher/seg=42/v=7")
	assert.NoError(t, err)
	assert.NotNil(t, n)
	assert.Equal(t, 5, n.Size())
	assert.Equal(t, []byte("ndn"), n.At(0).Value())
	assert.Equal(t, []byte("go pher"), n.At(2).Value())
	assert.Equal(t, uint16(tlv.SegmentNameComponent), n.At(3).Type())
	assert.Equal(t, uint16(tlv.VersionNameComponent), n.At(4).Type())
	assert.Equal(t, "/ndn/edu/go%20pher/seg=42/v=7", n.String())

	// Negative indexing counts from the end
	assert.Equal(t, n.At(4), n.At(-1))
	assert.Nil(t, n.At(5))
	assert.Nil(t, n.At(-6))

	// Empty name
	n, err = ndn.NameFromString("/")
	assert.NoError(t, err)
	assert.Equal(t, 0, n.Size())
	assert.Equal(t, "/", n.String())

	// Malformed escape sequences are rejected
	_, err = ndn.NameFromString("/bad%2")
	assert.Error(t, err)
	_, err = ndn.NameFromString("/bad%GG")
	assert.Error(t, err)
}

func TestNameEncodeDecode(t *testing.T) {
	n, err := ndn.NameFromString("/ndn/edu/arizona")
	assert.NoError(t, err)

	encoded := n.Encode()
	assert.Equal(t, uint32(tlv.Name), encoded.Type())
	wire, err := encoded.Wire()
	assert.NoError(t, err)

	decodedBlock, _, err := tlv.DecodeBlock(wire)
	assert.NoError(t, err)
	decoded, err := ndn.DecodeName(decodedBlock)
	assert.NoError(t, err)
	assert.True(t, n.Equals(decoded))
	assert.Equal(t, n.String(), decoded.String())

	// A value that is not a whole number of TLV elements fails to decode
	_, err = ndn.DecodeName(tlv.NewBlock(tlv.Name, []byte{0xFD}))
	assert.ErrorIs(t, err, util.ErrDecodeName)
}

func TestNamePrefixAndEquality(t *testing.T) {
	a, _ := ndn.NameFromString("/ndn/edu")
	b, _ := ndn.NameFromString("/ndn/edu/arizona")
	c, _ := ndn.NameFromString("/ndn/com")

	assert.True(t, a.PrefixOf(b))
	assert.False(t, b.PrefixOf(a))
	assert.True(t, a.PrefixOf(a))
	assert.False(t, c.PrefixOf(b))
	assert.False(t, a.Equals(b))
	assert.True(t, b.Equals(b.DeepCopy()))
	assert.False(t, a.Equals(nil))
}

func TestNameAppendInvalidatesWire(t *testing.T) {
	n, _ := ndn.NameFromString("/ndn")
	n.Encode()
	assert.True(t, n.HasWire())
	n.Append(ndn.NewGenericNameComponent([]byte("edu")))
	assert.False(t, n.HasWire())
	assert.Equal(t, "/ndn/edu", n.String())
}
