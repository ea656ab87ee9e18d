/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

// TLV types for NDN.
const (
	// Packet types
	Interest = 0x05
	Data     = 0x06

	// Name and components
	Name                            = 0x07
	ImplicitSha256DigestComponent   = 0x01
	ParametersSha256DigestComponent = 0x02
	GenericNameComponent            = 0x08
	KeywordNameComponent            = 0x20
	SegmentNameComponent            = 0x32
	ByteOffsetNameComponent         = 0x34
	VersionNameComponent            = 0x36
	TimestampNameComponent          = 0x38
	SequenceNumNameComponent        = 0x3A

	// Data packets
	MetaInfo       = 0x14
	Content        = 0x15
	SignatureInfo  = 0x16
	SignatureValue = 0x17

	// Data/MetaInfo
	ContentType     = 0x18
	FreshnessPeriod = 0x19
	FinalBlockID    = 0x1A

	// Data/MetaInfo extensions. Non-critical (even, >= 0x20) so that decoders unaware of them
	// skip the elements instead of rejecting the packet.
	MobilityFlag      = 0x30
	HopLimit          = 0x22
	MetaInfoTimestamp = 0x3C

	// Signature
	SignatureType   = 0x1B
	KeyLocator      = 0x1C
	KeyDigest       = 0x1D
	SignatureNonce  = 0x26
	SignatureTime   = 0x28
	SignatureSeqNum = 0x2A
)

// IsCritical returns whether a TLV type is critical, i.e., whether an unrecognized element of
// that type must cause the enclosing element to fail decoding.
func IsCritical(tlvType uint32) bool {
	if tlvType < 0x20 {
		return true
	}
	return tlvType&0x1 == 1
}
