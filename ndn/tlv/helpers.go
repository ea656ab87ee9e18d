/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import (
	"encoding/binary"
	"math"

	"github.com/named-data/ndnwire/ndn/util"
)

// VarNumSize returns the number of bytes the variable-length number encoding of in will occupy.
func VarNumSize(in uint64) int {
	switch {
	case in <= 0xFC:
		return 1
	case in <= 0xFFFF:
		return 3
	case in <= 0xFFFFFFFF:
		return 5
	default:
		return 9
	}
}

// EncodeVarNum encodes a non-negative integer as a TLV variable-length number.
func EncodeVarNum(in uint64) []byte {
	switch {
	case in <= 0xFC:
		return []byte{byte(in)}
	case in <= 0xFFFF:
		bytes := make([]byte, 3)
		bytes[0] = 0xFD
		binary.BigEndian.PutUint16(bytes[1:], uint16(in))
		return bytes
	case in <= 0xFFFFFFFF:
		bytes := make([]byte, 5)
		bytes[0] = 0xFE
		binary.BigEndian.PutUint32(bytes[1:], uint32(in))
		return bytes
	default:
		bytes := make([]byte, 9)
		bytes[0] = 0xFF
		binary.BigEndian.PutUint64(bytes[1:], in)
		return bytes
	}
}

// DecodeVarNum decodes a TLV variable-length number from a wire value, returning the value and
// the number of bytes consumed.
func DecodeVarNum(in []byte) (uint64, int, error) {
	if len(in) < 1 {
		return 0, 0, util.ErrTooShort
	}

	switch {
	case in[0] <= 0xFC:
		return uint64(in[0]), 1, nil
	case in[0] == 0xFD:
		if len(in) < 3 {
			return 0, 0, util.ErrTooShort
		}
		return uint64(binary.BigEndian.Uint16(in[1:3])), 3, nil
	case in[0] == 0xFE:
		if len(in) < 5 {
			return 0, 0, util.ErrTooShort
		}
		return uint64(binary.BigEndian.Uint32(in[1:5])), 5, nil
	default: // Must be 0xFF
		if len(in) < 9 {
			return 0, 0, util.ErrTooShort
		}
		return binary.BigEndian.Uint64(in[1:9]), 9, nil
	}
}

// EncodeNNI encodes a non-negative integer into a minimal-length TLV value slice.
func EncodeNNI(v uint64) []byte {
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, v)

	switch {
	case v <= math.MaxUint8:
		return value[7:]
	case v <= math.MaxUint16:
		return value[6:]
	case v <= math.MaxUint32:
		return value[4:]
	default:
		return value
	}
}

// DecodeNNI decodes a non-negative integer from a TLV value slice.
func DecodeNNI(value []byte) (uint64, error) {
	if len(value) > 8 {
		return 0, util.ErrTooLong
	} else if len(value) == 0 {
		return 0, util.ErrTooShort
	}

	// Pad buffer
	buf := make([]byte, 8)
	copy(buf[8-len(value):], value)
	return binary.BigEndian.Uint64(buf), nil
}

// EncodeNNIBlock encodes a non-negative integer value in a block of the specified type.
func EncodeNNIBlock(t uint32, v uint64) *Block {
	b := new(Block)
	b.SetType(t)
	b.SetValue(EncodeNNI(v))
	return b
}

// GetNNIBlockSize returns the size that a non-negative integer block will take when encoded.
func GetNNIBlockSize(t uint32, v uint64) int {
	valueLen := len(EncodeNNI(v))
	return VarNumSize(uint64(t)) + VarNumSize(uint64(valueLen)) + valueLen
}

// DecodeNNIBlock decodes a non-negative integer value from a block.
func DecodeNNIBlock(wire *Block) (uint64, error) {
	if wire == nil {
		return 0, util.ErrNonExistent
	}
	return DecodeNNI(wire.Value())
}

// DecodeTypeLength decodes the TLV type, TLV length, and total size of the element starting at
// the beginning of the byte slice.
func DecodeTypeLength(bytes []byte) (uint32, int, int, error) {
	tlvType, tlvTypeSize, err := DecodeVarNum(bytes)
	if err != nil {
		return 0, 0, 0, err
	} else if tlvType > math.MaxUint32 {
		return 0, 0, 0, util.ErrOutOfRange
	}

	tlvLength, tlvLengthSize, err := DecodeVarNum(bytes[tlvTypeSize:])
	if err != nil {
		return 0, 0, 0, err
	}

	return uint32(tlvType), int(tlvLength), tlvTypeSize + tlvLengthSize + int(tlvLength), nil
}
