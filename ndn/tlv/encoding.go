/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

// Encoder accumulates a wire encoding back-to-front. Nested TLV elements are written value
// first, so the outer Type-Length header can be prepended once the value length is known.
//
// Two implementations exist: SizeEstimator, which only counts bytes, and EncodingBuffer, which
// writes them. Running the same prepend sequence against both must yield the same Size.
type Encoder interface {
	// PrependBytes prepends the specified bytes, returning the number of bytes prepended.
	PrependBytes(buf []byte) int
	// PrependVarNum prepends a TLV variable-length number, returning the number of bytes prepended.
	PrependVarNum(v uint64) int
	// PrependTypeLength prepends a TLV length then a TLV type, returning the number of bytes prepended.
	PrependTypeLength(tlvType uint32, length int) int
	// Size returns the number of bytes prepended so far.
	Size() int
}

// SizeEstimator is an Encoder that computes the resulting encoding size without writing bytes.
type SizeEstimator struct {
	size int
}

// NewSizeEstimator creates a new SizeEstimator.
func NewSizeEstimator() *SizeEstimator {
	return new(SizeEstimator)
}

// PrependBytes counts the specified bytes without writing them.
func (e *SizeEstimator) PrependBytes(buf []byte) int {
	e.size += len(buf)
	return len(buf)
}

// PrependVarNum counts a TLV variable-length number without writing it.
func (e *SizeEstimator) PrependVarNum(v uint64) int {
	n := VarNumSize(v)
	e.size += n
	return n
}

// PrependTypeLength counts a TLV type and length header without writing it.
func (e *SizeEstimator) PrependTypeLength(tlvType uint32, length int) int {
	n := VarNumSize(uint64(length)) + VarNumSize(uint64(tlvType))
	e.size += n
	return n
}

// Size returns the number of bytes counted so far.
func (e *SizeEstimator) Size() int {
	return e.size
}

// EncodingBuffer is an Encoder that writes bytes back-to-front into a buffer. The buffer grows
// at the front if the initial capacity is exceeded, but sizing it from a SizeEstimator pass
// avoids any reallocation.
type EncodingBuffer struct {
	buf []byte
	pos int // index of the first written byte
}

// NewEncodingBuffer creates an EncodingBuffer with the specified initial capacity.
func NewEncodingBuffer(capacity int) *EncodingBuffer {
	return &EncodingBuffer{
		buf: make([]byte, capacity),
		pos: capacity,
	}
}

func (e *EncodingBuffer) grow(need int) {
	if e.pos >= need {
		return
	}
	extra := len(e.buf)
	if extra < need {
		extra = need
	}
	newBuf := make([]byte, extra+len(e.buf))
	copy(newBuf[extra+e.pos:], e.buf[e.pos:])
	e.pos += extra
	e.buf = newBuf
}

// PrependBytes writes the specified bytes at the front of the buffer.
func (e *EncodingBuffer) PrependBytes(buf []byte) int {
	e.grow(len(buf))
	e.pos -= len(buf)
	copy(e.buf[e.pos:], buf)
	return len(buf)
}

// PrependVarNum writes a TLV variable-length number at the front of the buffer.
func (e *EncodingBuffer) PrependVarNum(v uint64) int {
	return e.PrependBytes(EncodeVarNum(v))
}

// PrependTypeLength writes a TLV length then a TLV type at the front of the buffer.
func (e *EncodingBuffer) PrependTypeLength(tlvType uint32, length int) int {
	n := e.PrependVarNum(uint64(length))
	n += e.PrependVarNum(uint64(tlvType))
	return n
}

// Size returns the number of bytes written so far.
func (e *EncodingBuffer) Size() int {
	return len(e.buf) - e.pos
}

// Bytes returns the written portion of the buffer.
func (e *EncodingBuffer) Bytes() []byte {
	return e.buf[e.pos:]
}
