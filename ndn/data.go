/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"strconv"
	"time"

	"github.com/named-data/ndnwire/ndn/security"
	"github.com/named-data/ndnwire/ndn/tlv"
	"github.com/named-data/ndnwire/ndn/util"
)

// Data encoding errors.
var (
	ErrStaleSignature    = errors.New("signature no longer covers the signed fields")
	ErrNoUnsignedPortion = errors.New("no pending unsigned portion to finalize")
	ErrNoWire            = errors.New("packet has no wire encoding")
	ErrUnsigned          = errors.New("data packet is not signed")
)

// Data represents an NDN Data packet.
//
// A Data is logically const once signed: mutating any signed field after a signature has been
// attached marks the signature stale, and encoding fails until a new signature is attached.
type Data struct {
	name       *Name
	metaInfo   *MetaInfo
	content    []byte
	hasContent bool
	sigInfo    *SignatureInfo
	sigValue   []byte
	sigStale   bool

	wire     []byte
	fullName *Name

	// Output of EncodeUnsignedPortion, awaiting FinalizeEncoding
	unsignedPortion []byte
}

// NewData creates a new Data packet with the given name and content.
func NewData(name *Name, content []byte) *Data {
	if name == nil {
		return nil
	}

	d := new(Data)
	d.name = name
	d.metaInfo = NewMetaInfo()
	d.content = make([]byte, len(content))
	d.hasContent = true
	d.sigInfo = NewSignatureInfo(SignatureDigestSha256)
	copy(d.content, content)
	return d
}

// DecodeData decodes a Data packet from the wire, optionally validating its signature.
func DecodeData(wire *tlv.Block, shouldValidateSignature bool) (*Data, error) {
	if wire == nil {
		return nil, util.ErrNonExistent
	}
	if wire.Type() != tlv.Data {
		return nil, tlv.ErrUnexpected
	}
	wireBytes, err := wire.Wire()
	if err != nil {
		return nil, err
	}
	if len(wire.Subelements()) == 0 && !wire.Parse() {
		return nil, util.ErrDecodeData
	}

	d := new(Data)
	d.wire = make([]byte, len(wireBytes))
	copy(d.wire, wireBytes)

	// Unlike in MetaInfo, the order of Data elements is fixed
	mostRecentElem := 0
	for _, elem := range wire.Subelements() {
		switch elem.Type() {
		case tlv.Name:
			if mostRecentElem >= 1 {
				return nil, errors.New("Name is duplicate or out-of-order")
			}
			mostRecentElem = 1
			d.name, err = DecodeName(elem)
			if err != nil {
				return nil, util.ErrDecodeData
			}
		case tlv.MetaInfo:
			if mostRecentElem >= 2 {
				return nil, errors.New("MetaInfo is duplicate or out-of-order")
			}
			mostRecentElem = 2
			d.metaInfo, err = DecodeMetaInfo(elem)
			if err != nil {
				return nil, err
			}
		case tlv.Content:
			if mostRecentElem >= 3 {
				return nil, errors.New("Content is duplicate or out-of-order")
			}
			mostRecentElem = 3
			d.content = make([]byte, len(elem.Value()))
			d.hasContent = true
			copy(d.content, elem.Value())
		case tlv.SignatureInfo:
			if mostRecentElem >= 4 {
				return nil, errors.New("SignatureInfo is duplicate or out-of-order")
			}
			mostRecentElem = 4
			d.sigInfo, err = DecodeSignatureInfo(elem)
			if err != nil {
				return nil, err
			}
		case tlv.SignatureValue:
			if mostRecentElem >= 5 {
				return nil, errors.New("SignatureValue is duplicate or out-of-order")
			}
			mostRecentElem = 5
			d.sigValue = make([]byte, len(elem.Value()))
			copy(d.sigValue, elem.Value())
		default:
			if tlv.IsCritical(elem.Type()) {
				return nil, tlv.ErrUnrecognizedCritical
			}
			// If non-critical, ignore
		}
	}

	if d.name == nil || d.sigInfo == nil || len(d.sigValue) == 0 {
		return nil, errors.New("Data missing required field")
	}

	if shouldValidateSignature {
		isSignatureValid, err := d.ValidateSignature()
		if err != nil {
			return nil, err
		}
		if !isSignatureValid {
			return nil, errors.New("Unable to validate signature in decoded Data")
		}
	}

	return d, nil
}

func (d *Data) String() string {
	str := "Data(" + d.name.String()
	if d.metaInfo != nil {
		str += ", " + d.metaInfo.String()
	}
	str += ", ContentLen=" + strconv.FormatInt(int64(len(d.content)), 10) + ")"
	return str
}

//////////
// Getters
//////////

// Name returns the name of the Data packet.
func (d *Data) Name() *Name {
	return d.name
}

// MetaInfo returns the MetaInfo of the Data packet.
func (d *Data) MetaInfo() *MetaInfo {
	return d.metaInfo
}

// Content returns the content of the Data packet.
func (d *Data) Content() []byte {
	return d.content
}

// HasContent returns whether the Data packet has a Content element, which may be empty.
func (d *Data) HasContent() bool {
	return d.hasContent
}

// KeyLocator returns the KeyLocator from the SignatureInfo, or nil if none is set.
func (d *Data) KeyLocator() *KeyLocator {
	if d.sigInfo == nil {
		return nil
	}
	return d.sigInfo.KeyLocator()
}

// SignatureInfo returns the SignatureInfo of the Data packet.
func (d *Data) SignatureInfo() *SignatureInfo {
	return d.sigInfo
}

// SignatureValue returns the SignatureValue of the Data packet, or nil if the packet has not
// been signed.
func (d *Data) SignatureValue() []byte {
	return d.sigValue
}

//////////
// Setters
//////////

// resetWire invalidates the cached encodings after a signed field changes. If a signature is
// attached, it no longer covers the packet.
func (d *Data) resetWire() {
	d.wire = nil
	d.fullName = nil
	d.unsignedPortion = nil
	if len(d.sigValue) > 0 {
		d.sigStale = true
	}
}

// SetName sets the name of the Data packet.
func (d *Data) SetName(name *Name) *Data {
	d.name = name
	d.resetWire()
	return d
}

// SetMetaInfo sets the MetaInfo of the Data packet. A nil MetaInfo omits the element from the
// wire encoding.
func (d *Data) SetMetaInfo(metaInfo *MetaInfo) *Data {
	d.metaInfo = metaInfo
	d.resetWire()
	return d
}

// SetContent sets the content of the Data packet to a copy of the specified bytes.
func (d *Data) SetContent(content []byte) *Data {
	d.content = make([]byte, len(content))
	d.hasContent = true
	copy(d.content, content)
	d.resetWire()
	return d
}

// SetContentBlock sets the content of the Data packet from a block. A Content-typed block
// contributes its value; any other block is nested whole as the content.
func (d *Data) SetContentBlock(block *tlv.Block) *Data {
	if block == nil {
		return d
	}
	if block.Type() == tlv.Content {
		return d.SetContent(block.Value())
	}
	wire, err := block.Wire()
	if err != nil {
		return d
	}
	return d.SetContent(wire)
}

// SetContentFromBuffer sets the content of the Data packet to the contents of the specified
// shared buffer, without copying. The caller must not modify the buffer afterwards. A nil
// buffer is rejected.
func (d *Data) SetContentFromBuffer(buffer *util.SharedBuffer) *Data {
	if buffer == nil {
		return d
	}
	d.content = buffer.Bytes()
	d.hasContent = true
	d.resetWire()
	return d
}

// UnsetContent removes the Content element from the Data packet.
func (d *Data) UnsetContent() *Data {
	d.content = nil
	d.hasContent = false
	d.resetWire()
	return d
}

// SetSignatureInfo sets the SignatureInfo of the Data packet.
func (d *Data) SetSignatureInfo(sigInfo *SignatureInfo) *Data {
	d.sigInfo = sigInfo
	d.resetWire()
	return d
}

// SetSignatureValue attaches a signature computed externally over the unsigned portion. This
// clears any staleness from earlier field changes.
func (d *Data) SetSignatureValue(sigValue []byte) *Data {
	d.sigValue = make([]byte, len(sigValue))
	copy(d.sigValue, sigValue)
	d.sigStale = false
	d.wire = nil
	d.fullName = nil
	return d
}

// SetSignatureValueFromBuffer attaches an externally computed signature held in a shared
// buffer, without copying. A nil buffer is rejected.
func (d *Data) SetSignatureValueFromBuffer(buffer *util.SharedBuffer) *Data {
	if buffer == nil {
		return d
	}
	d.sigValue = buffer.Bytes()
	d.sigStale = false
	d.wire = nil
	d.fullName = nil
	return d
}

// The MetaInfo field setters below are pass-throughs to the embedded MetaInfo that also
// invalidate the Data packet's caches. Mutating the MetaInfo obtained from MetaInfo() directly
// bypasses that invalidation.

func (d *Data) meta() *MetaInfo {
	if d.metaInfo == nil {
		d.metaInfo = NewMetaInfo()
	}
	return d.metaInfo
}

// SetContentType sets the ContentType in the MetaInfo of the Data packet.
func (d *Data) SetContentType(contentType uint64) *Data {
	d.meta().SetContentType(contentType)
	d.resetWire()
	return d
}

// SetFreshnessPeriod sets the FreshnessPeriod in the MetaInfo of the Data packet.
func (d *Data) SetFreshnessPeriod(freshnessPeriod time.Duration) *Data {
	d.meta().SetFreshnessPeriod(freshnessPeriod)
	d.resetWire()
	return d
}

// SetFinalBlockID sets the FinalBlockID in the MetaInfo of the Data packet.
func (d *Data) SetFinalBlockID(finalBlockID NameComponent) *Data {
	d.meta().SetFinalBlockID(finalBlockID)
	d.resetWire()
	return d
}

// SetMobilityFlag sets the producer mobility flag in the MetaInfo of the Data packet.
func (d *Data) SetMobilityFlag(flag bool) *Data {
	d.meta().SetMobilityFlag(flag)
	d.resetWire()
	return d
}

// SetHopLimit sets the hop limit in the MetaInfo of the Data packet. 0 unsets the hop limit.
func (d *Data) SetHopLimit(hopLimit uint8) *Data {
	d.meta().SetHopLimit(hopLimit)
	d.resetWire()
	return d
}

// SetTimestamp sets the timestamp in the MetaInfo of the Data packet.
func (d *Data) SetTimestamp(timestamp time.Time) *Data {
	d.meta().SetTimestamp(timestamp)
	d.resetWire()
	return d
}

///////////
// Encoding
///////////

// encodeValue prepends the value of the Data element, innermost element first.
func (d *Data) encodeValue(enc tlv.Encoder, includeSignatureValue bool) error {
	if includeSignatureValue {
		n := enc.PrependBytes(d.sigValue)
		enc.PrependTypeLength(tlv.SignatureValue, n)
	}

	sigInfoBlock, err := d.sigInfo.Encode()
	if err != nil {
		return err
	}
	sigInfoWire, err := sigInfoBlock.Wire()
	if err != nil {
		return err
	}
	enc.PrependBytes(sigInfoWire)

	if d.hasContent {
		n := enc.PrependBytes(d.content)
		enc.PrependTypeLength(tlv.Content, n)
	}

	if d.metaInfo != nil {
		metaInfoBlock, err := d.metaInfo.Encode()
		if err != nil {
			return err
		}
		metaInfoWire, err := metaInfoBlock.Wire()
		if err != nil {
			return err
		}
		enc.PrependBytes(metaInfoWire)
	}

	nameWire, err := d.name.Encode().Wire()
	if err != nil {
		return err
	}
	enc.PrependBytes(nameWire)
	return nil
}

// EncodeUnsignedPortion encodes the signed fields of the Data packet (Name through
// SignatureInfo) for signing by an external signer. The result remains pending until
// FinalizeEncoding attaches the signature.
func (d *Data) EncodeUnsignedPortion() ([]byte, error) {
	if d.name == nil || d.sigInfo == nil {
		return nil, util.ErrNonExistent
	}

	est := tlv.NewSizeEstimator()
	if err := d.encodeValue(est, false); err != nil {
		return nil, err
	}
	buf := tlv.NewEncodingBuffer(est.Size())
	if err := d.encodeValue(buf, false); err != nil {
		return nil, err
	}
	if buf.Size() != est.Size() {
		return nil, tlv.ErrEstimateMismatch
	}

	d.unsignedPortion = buf.Bytes()
	return d.unsignedPortion, nil
}

// FinalizeEncoding attaches a signature produced over the pending unsigned portion and
// completes the wire encoding.
func (d *Data) FinalizeEncoding(signature []byte) ([]byte, error) {
	if d.unsignedPortion == nil {
		return nil, ErrNoUnsignedPortion
	}

	d.sigValue = make([]byte, len(signature))
	copy(d.sigValue, signature)
	d.sigStale = false
	d.fullName = nil

	encode := func(enc tlv.Encoder) {
		n := enc.PrependBytes(d.sigValue)
		enc.PrependTypeLength(tlv.SignatureValue, n)
		enc.PrependBytes(d.unsignedPortion)
		enc.PrependTypeLength(tlv.Data, enc.Size())
	}

	est := tlv.NewSizeEstimator()
	encode(est)
	buf := tlv.NewEncodingBuffer(est.Size())
	encode(buf)
	if buf.Size() != est.Size() {
		return nil, tlv.ErrEstimateMismatch
	}

	d.wire = buf.Bytes()
	d.unsignedPortion = nil
	return d.wire, nil
}

// Sign signs the Data packet in-process with the signer for its SignatureInfo type and
// completes the wire encoding. Signature types that need external key material must instead
// sign the output of EncodeUnsignedPortion and attach the result with FinalizeEncoding.
func (d *Data) Sign() ([]byte, error) {
	unsignedPortion, err := d.EncodeUnsignedPortion()
	if err != nil {
		return nil, err
	}
	signature, err := security.Sign(security.SignatureType(d.sigInfo.SignatureType()), unsignedPortion)
	if err != nil {
		return nil, err
	}
	return d.FinalizeEncoding(signature)
}

// Encode encodes the Data packet. The packet must already be signed: encoding fails with
// ErrUnsigned if no signature is attached and with ErrStaleSignature if a signed field was
// changed after signing.
func (d *Data) Encode() ([]byte, error) {
	if d.wire != nil {
		return d.wire, nil
	}
	if d.sigStale {
		return nil, ErrStaleSignature
	}
	if d.name == nil || d.sigInfo == nil {
		return nil, util.ErrNonExistent
	}
	if len(d.sigValue) == 0 {
		return nil, ErrUnsigned
	}

	est := tlv.NewSizeEstimator()
	if err := d.encodeValue(est, true); err != nil {
		return nil, err
	}
	valueLen := est.Size()
	est.PrependTypeLength(tlv.Data, valueLen)

	buf := tlv.NewEncodingBuffer(est.Size())
	if err := d.encodeValue(buf, true); err != nil {
		return nil, err
	}
	buf.PrependTypeLength(tlv.Data, valueLen)
	if buf.Size() != est.Size() {
		return nil, tlv.ErrEstimateMismatch
	}

	d.wire = buf.Bytes()
	d.unsignedPortion = nil
	return d.wire, nil
}

// HasWire returns whether the Data packet has an existing valid wire encoding.
func (d *Data) HasWire() bool {
	return d.wire != nil
}

// ExtractSignedRanges returns the portion of the wire encoding covered by the signature: the
// Name through SignatureInfo elements, excluding the outer header and the SignatureValue. If
// the packet has no wire encoding yet, it is encoded on demand.
func (d *Data) ExtractSignedRanges() ([]byte, error) {
	if d.wire == nil {
		if _, err := d.Encode(); err != nil {
			return nil, err
		}
	}

	tlvType, tlvLength, tlvSize, err := tlv.DecodeTypeLength(d.wire)
	if err != nil {
		return nil, err
	}
	if tlvType != tlv.Data {
		return nil, tlv.ErrUnexpected
	}

	// Skip the outer type and length
	start := tlvSize - tlvLength
	pos := start
	for pos < len(d.wire) {
		elemType, _, elemSize, err := tlv.DecodeTypeLength(d.wire[pos:])
		if err != nil {
			return nil, err
		}
		if elemType == tlv.SignatureValue {
			return d.wire[start:pos], nil
		}
		pos += elemSize
	}
	return nil, util.ErrNonExistent
}

// ValidateSignature returns whether the signature on the Data packet is valid.
func (d *Data) ValidateSignature() (bool, error) {
	if d.sigInfo == nil || len(d.sigValue) == 0 {
		return false, util.ErrNonExistent
	}
	signedRanges, err := d.ExtractSignedRanges()
	if err != nil {
		return false, err
	}
	return security.Verify(security.SignatureType(d.sigInfo.SignatureType()), signedRanges, d.sigValue)
}

// FullName returns the name of the Data packet with its implicit SHA-256 digest component
// appended. The digest covers the entire wire encoding, so the packet must already be encoded.
func (d *Data) FullName() (*Name, error) {
	if d.fullName != nil {
		return d.fullName, nil
	}
	if d.wire == nil {
		return nil, ErrNoWire
	}

	digest := sha256.Sum256(d.wire)
	d.fullName = d.name.DeepCopy().Append(NewImplicitSha256DigestComponent(digest[:]))
	return d.fullName, nil
}

// Equals returns whether the wire encodings of the two Data packets are identical.
func (d *Data) Equals(other *Data) bool {
	if other == nil {
		return false
	}
	wire, err := d.Encode()
	if err != nil {
		return false
	}
	otherWire, err := other.Encode()
	if err != nil {
		return false
	}
	return bytes.Equal(wire, otherWire)
}
