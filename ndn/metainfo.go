/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"strconv"
	"time"

	"github.com/named-data/ndnwire/ndn/tlv"
	"github.com/named-data/ndnwire/ndn/util"
)

// MetaInfo represents the MetaInfo of a Data packet.
type MetaInfo struct {
	contentType     *uint64
	freshnessPeriod *time.Duration
	finalBlockID    NameComponent
	mobilityFlag    bool
	hopLimit        uint8 // 0 means unset
	timestamp       time.Time
	wire            *tlv.Block
}

// NewMetaInfo creates a new MetaInfo with a timestamp of the current time.
func NewMetaInfo() *MetaInfo {
	m := new(MetaInfo)
	m.timestamp = time.Now()
	return m
}

// DecodeMetaInfo decodes a MetaInfo from the wire.
func DecodeMetaInfo(wire *tlv.Block) (*MetaInfo, error) {
	if wire == nil {
		return nil, util.ErrNonExistent
	}
	if wire.Type() != tlv.MetaInfo {
		return nil, tlv.ErrUnexpected
	}
	if len(wire.Subelements()) == 0 && !wire.Parse() {
		return nil, util.ErrDecodeMetaInfo
	}

	m := new(MetaInfo)
	m.wire = wire.DeepCopy()
	m.wire.Wire()
	for _, elem := range wire.Subelements() {
		switch elem.Type() {
		case tlv.ContentType:
			contentType, err := tlv.DecodeNNIBlock(elem)
			if err != nil {
				return nil, util.ErrDecodeMetaInfo
			}
			m.contentType = &contentType
		case tlv.FreshnessPeriod:
			freshnessPeriod, err := tlv.DecodeNNIBlock(elem)
			if err != nil {
				return nil, util.ErrDecodeMetaInfo
			}
			freshness := time.Duration(freshnessPeriod) * time.Millisecond
			m.freshnessPeriod = &freshness
		case tlv.FinalBlockID:
			if len(elem.Subelements()) == 0 && !elem.Parse() {
				return nil, util.ErrDecodeMetaInfo
			}
			if len(elem.Subelements()) != 1 {
				return nil, util.ErrDecodeMetaInfo
			}
			finalBlockID, err := DecodeNameComponent(elem.Subelements()[0])
			if err != nil {
				return nil, util.ErrDecodeMetaInfo
			}
			m.finalBlockID = finalBlockID
		case tlv.MobilityFlag:
			flag, err := tlv.DecodeNNIBlock(elem)
			if err != nil {
				return nil, util.ErrDecodeMetaInfo
			}
			m.mobilityFlag = flag != 0
		case tlv.HopLimit:
			hopLimit, err := tlv.DecodeNNIBlock(elem)
			if err != nil || hopLimit > 255 {
				return nil, util.ErrDecodeMetaInfo
			}
			m.hopLimit = uint8(hopLimit)
		case tlv.MetaInfoTimestamp:
			ms, err := tlv.DecodeNNIBlock(elem)
			if err != nil {
				return nil, util.ErrDecodeMetaInfo
			}
			m.timestamp = time.UnixMilli(int64(ms))
		default:
			// Unrecognized elements are skipped regardless of criticality: MetaInfo is
			// designed to be extended without breaking old decoders.
		}
	}

	return m, nil
}

func (m *MetaInfo) String() string {
	str := "MetaInfo("
	isFirst := true

	if m.contentType != nil {
		if !isFirst {
			str += ", "
		}
		str += "ContentType=" + strconv.FormatUint(*m.contentType, 10)
		isFirst = false
	}
	if m.freshnessPeriod != nil {
		if !isFirst {
			str += ", "
		}
		str += "FreshnessPeriod=" + strconv.FormatInt(m.freshnessPeriod.Milliseconds(), 10) + "ms"
		isFirst = false
	}
	if m.finalBlockID != nil {
		if !isFirst {
			str += ", "
		}
		str += "FinalBlockID=" + m.finalBlockID.String()
		isFirst = false
	}
	if m.mobilityFlag {
		if !isFirst {
			str += ", "
		}
		str += "MobilityFlag=true"
		isFirst = false
	}
	if m.hopLimit > 0 {
		if !isFirst {
			str += ", "
		}
		str += "HopLimit=" + strconv.FormatUint(uint64(m.hopLimit), 10)
	}

	str += ")"
	return str
}

//////////
// Getters
//////////

// ContentType returns the ContentType set in the MetaInfo, or nil if unset.
func (m *MetaInfo) ContentType() *uint64 {
	return m.contentType
}

// FreshnessPeriod returns the FreshnessPeriod set in the MetaInfo, or nil if unset.
func (m *MetaInfo) FreshnessPeriod() *time.Duration {
	return m.freshnessPeriod
}

// FinalBlockID returns the FinalBlockID set in the MetaInfo, or nil if unset.
func (m *MetaInfo) FinalBlockID() NameComponent {
	return m.finalBlockID
}

// MobilityFlag returns whether the producer mobility flag is set.
func (m *MetaInfo) MobilityFlag() bool {
	return m.mobilityFlag
}

// HopLimit returns the hop limit, with 0 indicating that no hop limit is set.
func (m *MetaInfo) HopLimit() uint8 {
	return m.hopLimit
}

// Timestamp returns the timestamp of the MetaInfo.
func (m *MetaInfo) Timestamp() time.Time {
	return m.timestamp
}

//////////
// Setters
//////////

// SetContentType sets the ContentType in the MetaInfo.
func (m *MetaInfo) SetContentType(contentType uint64) {
	m.contentType = &contentType
	m.wire = nil
}

// UnsetContentType unsets the ContentType in the MetaInfo.
func (m *MetaInfo) UnsetContentType() {
	m.contentType = nil
	m.wire = nil
}

// SetFreshnessPeriod sets the FreshnessPeriod in the MetaInfo.
func (m *MetaInfo) SetFreshnessPeriod(freshnessPeriod time.Duration) {
	m.freshnessPeriod = new(time.Duration)
	*m.freshnessPeriod = freshnessPeriod
	m.wire = nil
}

// UnsetFreshnessPeriod unsets the FreshnessPeriod in the MetaInfo.
func (m *MetaInfo) UnsetFreshnessPeriod() {
	m.freshnessPeriod = nil
	m.wire = nil
}

// SetFinalBlockID sets the FinalBlockID in the MetaInfo.
func (m *MetaInfo) SetFinalBlockID(finalBlockID NameComponent) {
	m.finalBlockID = finalBlockID
	m.wire = nil
}

// UnsetFinalBlockID unsets the FinalBlockID in the MetaInfo.
func (m *MetaInfo) UnsetFinalBlockID() {
	m.finalBlockID = nil
	m.wire = nil
}

// SetMobilityFlag sets the producer mobility flag in the MetaInfo.
func (m *MetaInfo) SetMobilityFlag(flag bool) {
	m.mobilityFlag = flag
	m.wire = nil
}

// SetHopLimit sets the hop limit in the MetaInfo. Setting 0 unsets the hop limit.
func (m *MetaInfo) SetHopLimit(hopLimit uint8) {
	m.hopLimit = hopLimit
	m.wire = nil
}

// SetTimestamp sets the timestamp of the MetaInfo.
func (m *MetaInfo) SetTimestamp(timestamp time.Time) {
	m.timestamp = timestamp
	m.wire = nil
}

///////////
// Encoding
///////////

// HasWire returns whether the MetaInfo has a valid wire encoding.
func (m *MetaInfo) HasWire() bool {
	return m.wire != nil
}

// Encode encodes the MetaInfo into a block.
func (m *MetaInfo) Encode() (*tlv.Block, error) {
	if m.wire == nil {
		m.wire = tlv.NewEmptyBlock(tlv.MetaInfo)
		if m.contentType != nil {
			m.wire.Append(tlv.EncodeNNIBlock(tlv.ContentType, *m.contentType))
		}
		if m.freshnessPeriod != nil {
			m.wire.Append(tlv.EncodeNNIBlock(tlv.FreshnessPeriod, uint64(m.freshnessPeriod.Milliseconds())))
		}
		if m.finalBlockID != nil {
			finalBlockIDBlock := tlv.NewEmptyBlock(tlv.FinalBlockID)
			finalBlockIDBlock.Append(m.finalBlockID.Encode())
			m.wire.Append(finalBlockIDBlock)
		}
		if m.mobilityFlag {
			m.wire.Append(tlv.EncodeNNIBlock(tlv.MobilityFlag, 1))
		}
		if m.hopLimit > 0 {
			m.wire.Append(tlv.EncodeNNIBlock(tlv.HopLimit, uint64(m.hopLimit)))
		}
		m.wire.Append(tlv.EncodeNNIBlock(tlv.MetaInfoTimestamp, uint64(m.timestamp.UnixMilli())))
	}

	if _, err := m.wire.Wire(); err != nil {
		m.wire = nil
		return nil, err
	}
	return m.wire, nil
}
