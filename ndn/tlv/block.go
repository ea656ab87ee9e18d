/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import (
	"bytes"
	"math"

	"github.com/named-data/ndnwire/ndn/util"
)

// Block contains an encoded TLV element: a type, a value (either raw bytes or parsed
// subelements), and a lazily computed wire encoding.
type Block struct {
	// Contents
	tlvType     uint32
	value       []byte
	subelements []*Block

	// Encoding
	wire    []byte
	hasWire bool
}

///////////////
// Constructors
///////////////

// NewEmptyBlock creates an empty block of the specified type.
func NewEmptyBlock(tlvType uint32) *Block {
	var block Block
	block.tlvType = tlvType
	return &block
}

// NewBlock creates a block containing the specified type and a copy of the specified value.
func NewBlock(tlvType uint32, value []byte) *Block {
	var block Block
	block.tlvType = tlvType
	block.value = make([]byte, len(value))
	copy(block.value, value)
	return &block
}

// NewBlockUnsafe creates a block containing the specified type that adopts value without
// copying. The caller must not modify value afterwards.
func NewBlockUnsafe(tlvType uint32, value []byte) *Block {
	var block Block
	block.tlvType = tlvType
	block.value = value
	return &block
}

//////////
// Getters
//////////

// Type returns the type of the block.
func (b *Block) Type() uint32 {
	return b.tlvType
}

// Value returns the value contained in the block.
func (b *Block) Value() []byte {
	return b.value
}

// Subelements returns the sub-elements of the block.
func (b *Block) Subelements() []*Block {
	return b.subelements
}

//////////
// Setters
//////////

// SetType sets the TLV type of the block.
func (b *Block) SetType(tlvType uint32) {
	if b.tlvType != tlvType {
		b.tlvType = tlvType
		b.hasWire = false
	}
}

// SetValue sets the value of the block to a copy of the specified bytes.
func (b *Block) SetValue(value []byte) {
	if !bytes.Equal(b.value, value) {
		b.value = make([]byte, len(value))
		copy(b.value, value)
		b.hasWire = false
	}
}

//////////////
// Subelements
//////////////

// Append appends a subelement onto the end of the block's value.
func (b *Block) Append(block *Block) {
	b.subelements = append(b.subelements, block.DeepCopy())
	b.hasWire = false
}

// Clear erases all subelements of the block.
func (b *Block) Clear() {
	if len(b.subelements) > 0 {
		b.subelements = []*Block{}
		b.hasWire = false
	}
}

// Find returns the first subelement of the specified type, or nil if none exists.
func (b *Block) Find(tlvType uint32) *Block {
	for _, elem := range b.subelements {
		if elem.Type() == tlvType {
			return elem
		}
	}
	return nil
}

// DeepCopy creates a deep copy of the block.
func (b *Block) DeepCopy() *Block {
	copyB := *b
	copyB.value = make([]byte, len(b.value))
	copy(copyB.value, b.value)
	copyB.subelements = make([]*Block, 0, len(b.subelements))
	for _, subelem := range b.subelements {
		copyB.subelements = append(copyB.subelements, subelem.DeepCopy())
	}
	copyB.wire = make([]byte, len(b.wire))
	copy(copyB.wire, b.wire)
	copyB.hasWire = b.hasWire
	return &copyB
}

// Parse parses the block value into subelements, if possible.
func (b *Block) Parse() bool {
	startPos := uint64(0)
	b.subelements = []*Block{}
	for startPos < uint64(len(b.value)) {
		block, blockLen, err := DecodeBlock(b.value[startPos:])
		if err != nil {
			return false
		}
		b.subelements = append(b.subelements, block)
		startPos += blockLen
	}
	b.value = []byte{}
	return true
}

////////////////////
// Encoding/Decoding
////////////////////

// EncodingLength returns the number of bytes the wire encoding of the block will occupy,
// without performing the encoding.
func (b *Block) EncodingLength() int {
	valueLen := len(b.value)
	if len(b.subelements) > 0 {
		valueLen = 0
		for _, elem := range b.subelements {
			valueLen += elem.EncodingLength()
		}
	}
	return VarNumSize(uint64(b.tlvType)) + VarNumSize(uint64(valueLen)) + valueLen
}

// Wire returns the wire-encoded block, encoding it if necessary.
func (b *Block) Wire() ([]byte, error) {
	if b.hasWire {
		return b.wire, nil
	}

	encodedType := EncodeVarNum(uint64(b.tlvType))
	var buf bytes.Buffer
	if len(b.subelements) > 0 {
		// Wire encode subelements
		var elemSize uint64
		elemWires := make([][]byte, 0, len(b.subelements))
		for _, elem := range b.subelements {
			elemWire, err := elem.Wire()
			if err != nil {
				return nil, err
			}
			elemSize += uint64(len(elemWire))
			elemWires = append(elemWires, elemWire)
		}
		encodedLength := EncodeVarNum(elemSize)

		buf.Grow(len(encodedType) + len(encodedLength) + int(elemSize))
		buf.Write(encodedType)
		buf.Write(encodedLength)
		for _, elemWire := range elemWires {
			buf.Write(elemWire)
		}
	} else {
		encodedLength := EncodeVarNum(uint64(len(b.value)))
		buf.Grow(len(encodedType) + len(encodedLength) + len(b.value))
		buf.Write(encodedType)
		buf.Write(encodedLength)
		buf.Write(b.value)
	}

	b.wire = buf.Bytes()
	b.hasWire = true
	return b.wire, nil
}

// HasWire returns whether the block has a valid wire encoding.
func (b *Block) HasWire() bool {
	return b.hasWire
}

// Size returns the size of the wire encoding.
func (b *Block) Size() int {
	return len(b.wire)
}

// Reset clears the encoded wire buffer, value, and subelements of the block.
func (b *Block) Reset() {
	b.hasWire = false
	b.wire = []byte{}
	b.value = []byte{}
	b.subelements = []*Block{}
}

// DecodeBlock decodes a block from the start of the wire, returning the block and the number of
// bytes consumed.
func DecodeBlock(wire []byte) (*Block, uint64, error) {
	b := new(Block)

	// Decode TLV type
	tlvType, tlvTypeLen, err := DecodeVarNum(wire)
	if err != nil {
		return nil, 0, err
	}
	if tlvType > math.MaxUint32 {
		return nil, 0, util.ErrOutOfRange
	}
	b.tlvType = uint32(tlvType)

	// Decode TLV length (not stored because it is implicit from the value slice length)
	if tlvTypeLen == len(wire) {
		return nil, 0, ErrMissingLength
	}
	tlvLength, tlvLengthLen, err := DecodeVarNum(wire[tlvTypeLen:])
	if err != nil {
		return nil, 0, err
	}

	// Decode TLV value
	tlvSize := uint64(tlvTypeLen) + uint64(tlvLengthLen) + tlvLength
	if uint64(len(wire)) < tlvSize {
		return nil, 0, ErrBufferTooShort
	}
	b.value = make([]byte, tlvLength)
	copy(b.value, wire[uint64(tlvTypeLen)+uint64(tlvLengthLen):tlvSize])

	b.wire = make([]byte, tlvSize)
	copy(b.wire, wire)
	b.hasWire = true

	return b, tlvSize, nil
}
