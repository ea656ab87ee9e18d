/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn_test

import (
	"testing"
	"time"

	"github.com/named-data/ndnwire/ndn"
	"github.com/named-data/ndnwire/ndn/tlv"
	"github.com/named-data/ndnwire/ndn/util"
	"github.com/stretchr/testify/assert"
)

func TestMetaInfoNew(t *testing.T) {
	m := ndn.NewMetaInfo()
	assert.NotNil(t, m)
	assert.Nil(t, m.ContentType())
	assert.Nil(t, m.FreshnessPeriod())
	assert.Nil(t, m.FinalBlockID())
	assert.False(t, m.MobilityFlag())
	assert.Equal(t, uint8(0), m.HopLimit())
	assert.False(t, m.Timestamp().IsZero())
	assert.Equal(t, "MetaInfo()", m.String())
}

func TestMetaInfoEncodeDecode(t *testing.T) {
	m := ndn.NewMetaInfo()
	m.SetContentType(4)
	m.SetFreshnessPeriod(5 * time.Second)
	m.SetFinalBlockID(ndn.NewSegmentNameComponent(9))
	m.SetMobilityFlag(true)
	m.SetHopLimit(16)
	m.SetTimestamp(time.UnixMilli(1600000000000))

	encoded, err := m.Encode()
	assert.NoError(t, err)
	assert.Equal(t, uint32(tlv.MetaInfo), encoded.Type())

	decoded, err := ndn.DecodeMetaInfo(encoded)
	assert.NoError(t, err)
	assert.NotNil(t, decoded.ContentType())
	assert.Equal(t, uint64(4), *decoded.ContentType())
	assert.NotNil(t, decoded.FreshnessPeriod())
	assert.Equal(t, 5*time.Second, *decoded.FreshnessPeriod())
	assert.NotNil(t, decoded.FinalBlockID())
	assert.Equal(t, uint16(tlv.SegmentNameComponent), decoded.FinalBlockID().Type())
	assert.True(t, decoded.MobilityFlag())
	assert.Equal(t, uint8(16), decoded.HopLimit())
	assert.Equal(t, int64(1600000000000), decoded.Timestamp().UnixMilli())
}

func TestMetaInfoOptionalFieldsAbsentFromWire(t *testing.T) {
	m := ndn.NewMetaInfo()
	m.SetTimestamp(time.UnixMilli(1600000000000))

	encoded, err := m.Encode()
	assert.NoError(t, err)

	// Only the timestamp is present: unset fields, a false mobility flag, and a zero hop
	// limit must not appear on the wire.
	assert.Nil(t, encoded.Find(tlv.ContentType))
	assert.Nil(t, encoded.Find(tlv.FreshnessPeriod))
	assert.Nil(t, encoded.Find(tlv.FinalBlockID))
	assert.Nil(t, encoded.Find(tlv.MobilityFlag))
	assert.Nil(t, encoded.Find(tlv.HopLimit))
	assert.NotNil(t, encoded.Find(tlv.MetaInfoTimestamp))
}

func TestMetaInfoSettersInvalidateWire(t *testing.T) {
	m := ndn.NewMetaInfo()
	_, err := m.Encode()
	assert.NoError(t, err)
	assert.True(t, m.HasWire())

	m.SetContentType(0)
	assert.False(t, m.HasWire())
	_, err = m.Encode()
	assert.NoError(t, err)
	assert.True(t, m.HasWire())

	m.UnsetContentType()
	assert.False(t, m.HasWire())
	assert.Nil(t, m.ContentType())
}

func TestMetaInfoDecodeAnyOrder(t *testing.T) {
	// Children may appear in any order
	wire := tlv.NewEmptyBlock(tlv.MetaInfo)
	wire.Append(tlv.EncodeNNIBlock(tlv.FreshnessPeriod, 1000))
	wire.Append(tlv.EncodeNNIBlock(tlv.ContentType, 4))
	_, err := wire.Wire()
	assert.NoError(t, err)

	m, err := ndn.DecodeMetaInfo(wire)
	assert.NoError(t, err)
	assert.Equal(t, uint64(4), *m.ContentType())
	assert.Equal(t, time.Second, *m.FreshnessPeriod())
}

func TestMetaInfoDecodeIgnoresUnknownChildren(t *testing.T) {
	wire := tlv.NewEmptyBlock(tlv.MetaInfo)
	wire.Append(tlv.EncodeNNIBlock(tlv.ContentType, 4))
	// An unrecognized child, even a critical one, is skipped
	wire.Append(tlv.NewBlock(0x13, []byte{0x01, 0x02}))
	_, err := wire.Wire()
	assert.NoError(t, err)

	m, err := ndn.DecodeMetaInfo(wire)
	assert.NoError(t, err)
	assert.Equal(t, uint64(4), *m.ContentType())
}

func TestMetaInfoDecodeErrors(t *testing.T) {
	_, err := ndn.DecodeMetaInfo(nil)
	assert.Error(t, err)

	// Wrong outer type
	_, err = ndn.DecodeMetaInfo(tlv.NewEmptyBlock(tlv.Content))
	assert.Error(t, err)

	// Malformed FinalBlockID (no name component inside)
	wire := tlv.NewEmptyBlock(tlv.MetaInfo)
	wire.Append(tlv.NewEmptyBlock(tlv.FinalBlockID))
	wire.Wire()
	_, err = ndn.DecodeMetaInfo(wire)
	assert.Error(t, err)

	// Hop limit out of range
	wire = tlv.NewEmptyBlock(tlv.MetaInfo)
	wire.Append(tlv.EncodeNNIBlock(tlv.HopLimit, 300))
	wire.Wire()
	_, err = ndn.DecodeMetaInfo(wire)
	assert.Error(t, err)

	// Value that is not a whole number of TLV elements
	_, err = ndn.DecodeMetaInfo(tlv.NewBlock(tlv.MetaInfo, []byte{0xFD}))
	assert.ErrorIs(t, err, util.ErrDecodeMetaInfo)
}
