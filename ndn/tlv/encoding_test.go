/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv_test

import (
	"testing"

	"github.com/named-data/ndnwire/ndn/tlv"
	"github.com/stretchr/testify/assert"
)

func encodeSample(enc tlv.Encoder) {
	// Innermost value first: the buffer is written back-to-front
	n := enc.PrependBytes([]byte{0x01, 0x02, 0x03, 0x04})
	enc.PrependTypeLength(0x15, n)
	enc.PrependVarNum(0x1388)
}

func TestEncodingBufferBackToFront(t *testing.T) {
	buf := tlv.NewEncodingBuffer(32)
	encodeSample(buf)
	assert.Equal(t, []byte{0xFD, 0x13, 0x88, 0x15, 0x04, 0x01, 0x02, 0x03, 0x04}, buf.Bytes())
	assert.Equal(t, len(buf.Bytes()), buf.Size())
}

func TestEncodingEstimateAgreesWithWrite(t *testing.T) {
	est := tlv.NewSizeEstimator()
	encodeSample(est)

	buf := tlv.NewEncodingBuffer(est.Size())
	encodeSample(buf)

	assert.Equal(t, est.Size(), buf.Size())
	assert.Equal(t, est.Size(), len(buf.Bytes()))
}

func TestEncodingBufferGrows(t *testing.T) {
	// Undersized buffer must still produce a correct encoding
	buf := tlv.NewEncodingBuffer(2)
	payload := make([]byte, 300)
	for i := range payload {
		payload[i] = byte(i)
	}
	n := buf.PrependBytes(payload)
	buf.PrependTypeLength(0x15, n)

	est := tlv.NewSizeEstimator()
	n = est.PrependBytes(payload)
	est.PrependTypeLength(0x15, n)
	assert.Equal(t, est.Size(), buf.Size())

	block, size, err := tlv.DecodeBlock(buf.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, uint64(buf.Size()), size)
	assert.Equal(t, uint32(0x15), block.Type())
	assert.Equal(t, payload, block.Value())
}

func TestEncodingBufferZeroCapacity(t *testing.T) {
	buf := tlv.NewEncodingBuffer(0)
	buf.PrependVarNum(0x42)
	assert.Equal(t, []byte{0x42}, buf.Bytes())
}
