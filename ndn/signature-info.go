/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"strconv"

	"github.com/named-data/ndnwire/ndn/tlv"
	"github.com/named-data/ndnwire/ndn/util"
)

// Signature types.
const (
	SignatureDigestSha256    uint64 = 0
	SignatureSha256WithRsa   uint64 = 1
	SignatureSha256WithEcdsa uint64 = 3
	SignatureHmacWithSha256  uint64 = 4
	SignatureEd25519         uint64 = 5
	SignatureNull            uint64 = 200
)

// KeyLocator represents the KeyLocator element of a SignatureInfo. At most one of Name and
// KeyDigest is set.
type KeyLocator struct {
	Name      *Name
	KeyDigest []byte
}

// SignatureInfo represents the SignatureInfo of a Data packet.
type SignatureInfo struct {
	signatureType uint64
	keyLocator    *KeyLocator
	wire          *tlv.Block
}

// NewSignatureInfo creates a new SignatureInfo of the specified signature type.
func NewSignatureInfo(signatureType uint64) *SignatureInfo {
	s := new(SignatureInfo)
	s.signatureType = signatureType
	return s
}

// DecodeSignatureInfo decodes a SignatureInfo from the wire.
func DecodeSignatureInfo(wire *tlv.Block) (*SignatureInfo, error) {
	if wire == nil {
		return nil, util.ErrNonExistent
	}
	if wire.Type() != tlv.SignatureInfo {
		return nil, tlv.ErrUnexpected
	}
	if len(wire.Subelements()) == 0 && !wire.Parse() {
		return nil, util.ErrDecodeSignatureInfo
	}

	s := new(SignatureInfo)
	s.wire = wire.DeepCopy()
	s.wire.Wire()

	hasSignatureType := false
	for _, elem := range wire.Subelements() {
		switch elem.Type() {
		case tlv.SignatureType:
			signatureType, err := tlv.DecodeNNIBlock(elem)
			if err != nil {
				return nil, util.ErrDecodeSignatureInfo
			}
			s.signatureType = signatureType
			hasSignatureType = true
		case tlv.KeyLocator:
			if len(elem.Subelements()) == 0 && !elem.Parse() {
				return nil, util.ErrDecodeSignatureInfo
			}
			if len(elem.Subelements()) != 1 {
				return nil, util.ErrDecodeSignatureInfo
			}
			s.keyLocator = new(KeyLocator)
			locator := elem.Subelements()[0]
			switch locator.Type() {
			case tlv.Name:
				name, err := DecodeName(locator)
				if err != nil {
					return nil, util.ErrDecodeSignatureInfo
				}
				s.keyLocator.Name = name
			case tlv.KeyDigest:
				s.keyLocator.KeyDigest = locator.Value()
			default:
				return nil, util.ErrDecodeSignatureInfo
			}
		default:
			if tlv.IsCritical(elem.Type()) {
				return nil, tlv.ErrUnrecognizedCritical
			}
		}
	}

	if !hasSignatureType {
		return nil, util.ErrDecodeSignatureInfo
	}
	return s, nil
}

func (s *SignatureInfo) String() string {
	str := "SignatureInfo(Type=" + strconv.FormatUint(s.signatureType, 10)
	if s.keyLocator != nil && s.keyLocator.Name != nil {
		str += ", KeyLocator=" + s.keyLocator.Name.String()
	} else if s.keyLocator != nil {
		str += ", KeyLocator=Digest(" + util.ToHex(s.keyLocator.KeyDigest, false) + ")"
	}
	return str + ")"
}

// SignatureType returns the signature type of the SignatureInfo.
func (s *SignatureInfo) SignatureType() uint64 {
	return s.signatureType
}

// SetSignatureType sets the signature type of the SignatureInfo.
func (s *SignatureInfo) SetSignatureType(signatureType uint64) {
	s.signatureType = signatureType
	s.wire = nil
}

// KeyLocator returns the KeyLocator of the SignatureInfo, or nil if unset.
func (s *SignatureInfo) KeyLocator() *KeyLocator {
	return s.keyLocator
}

// SetKeyLocatorName sets the KeyLocator of the SignatureInfo to a name.
func (s *SignatureInfo) SetKeyLocatorName(name *Name) {
	s.keyLocator = &KeyLocator{Name: name}
	s.wire = nil
}

// SetKeyLocatorDigest sets the KeyLocator of the SignatureInfo to a key digest.
func (s *SignatureInfo) SetKeyLocatorDigest(digest []byte) {
	s.keyLocator = &KeyLocator{KeyDigest: digest}
	s.wire = nil
}

// UnsetKeyLocator unsets the KeyLocator of the SignatureInfo.
func (s *SignatureInfo) UnsetKeyLocator() {
	s.keyLocator = nil
	s.wire = nil
}

// HasWire returns whether the SignatureInfo has a valid wire encoding.
func (s *SignatureInfo) HasWire() bool {
	return s.wire != nil
}

// Encode encodes the SignatureInfo into a block.
func (s *SignatureInfo) Encode() (*tlv.Block, error) {
	if s.wire == nil {
		s.wire = tlv.NewEmptyBlock(tlv.SignatureInfo)
		s.wire.Append(tlv.EncodeNNIBlock(tlv.SignatureType, s.signatureType))
		if s.keyLocator != nil {
			keyLocatorBlock := tlv.NewEmptyBlock(tlv.KeyLocator)
			if s.keyLocator.Name != nil {
				keyLocatorBlock.Append(s.keyLocator.Name.Encode())
			} else {
				keyLocatorBlock.Append(tlv.NewBlock(tlv.KeyDigest, s.keyLocator.KeyDigest))
			}
			s.wire.Append(keyLocatorBlock)
		}
	}

	if _, err := s.wire.Wire(); err != nil {
		s.wire = nil
		return nil, err
	}
	return s.wire, nil
}

// DeepCopy creates a deep copy of the SignatureInfo.
func (s *SignatureInfo) DeepCopy() *SignatureInfo {
	copyS := new(SignatureInfo)
	copyS.signatureType = s.signatureType
	if s.keyLocator != nil {
		copyS.keyLocator = new(KeyLocator)
		if s.keyLocator.Name != nil {
			copyS.keyLocator.Name = s.keyLocator.Name.DeepCopy()
		}
		if s.keyLocator.KeyDigest != nil {
			copyS.keyLocator.KeyDigest = make([]byte, len(s.keyLocator.KeyDigest))
			copy(copyS.keyLocator.KeyDigest, s.keyLocator.KeyDigest)
		}
	}
	return copyS
}
