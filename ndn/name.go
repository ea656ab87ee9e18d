/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/named-data/ndnwire/ndn/tlv"
	"github.com/named-data/ndnwire/ndn/util"
)

// NameComponent represents an NDN name component.
type NameComponent interface {
	String() string
	DeepCopy() NameComponent
	Type() uint16
	Value() []byte
	Equals(other NameComponent) bool
	Encode() *tlv.Block
}

// DecodeNameComponent decodes a name component from the wire.
func DecodeNameComponent(wire *tlv.Block) (NameComponent, error) {
	if wire == nil {
		return nil, util.ErrNonExistent
	}

	var n NameComponent
	switch wire.Type() {
	case tlv.ImplicitSha256DigestComponent:
		n = NewImplicitSha256DigestComponent(wire.Value())
	case tlv.GenericNameComponent:
		n = NewGenericNameComponent(wire.Value())
	case tlv.KeywordNameComponent:
		n = NewKeywordNameComponent(wire.Value())
	case tlv.SegmentNameComponent:
		n = DecodeSegmentNameComponent(wire.Value())
	case tlv.VersionNameComponent:
		n = DecodeVersionNameComponent(wire.Value())
	default:
		if wire.Type() > math.MaxUint16 {
			return nil, util.ErrOutOfRange
		}
		n = NewBaseNameComponent(uint16(wire.Type()), wire.Value())
	}

	if n == nil {
		return nil, util.ErrDecodeNameComponent
	}
	return n, nil
}

func escapeComponent(in []byte) string {
	out := util.Escape(string(in))
	nPeriods := 0
	for _, b := range in {
		if b == '.' {
			nPeriods++
		}
	}
	if nPeriods == len(in) {
		out += "..."
	}
	return out
}

func unescapeComponent(in string) (string, error) {
	out := make([]byte, 0, len(in))
	for i := 0; i < len(in); i++ {
		if in[i] == '%' {
			if len(in) <= i+2 {
				return "", errors.New("incomplete escape sequence")
			}
			hi := util.FromHexChar(in[i+1])
			lo := util.FromHexChar(in[i+2])
			if hi < 0 || lo < 0 {
				return "", errors.New("could not decode escape sequence")
			}
			out = append(out, byte(hi<<4|lo))
			i += 2
		} else {
			out = append(out, in[i])
		}
	}
	return string(out), nil
}

////////////////////
// BaseNameComponent
////////////////////

// BaseNameComponent represents a name component without a specialized type.
type BaseNameComponent struct {
	tlvType uint16
	value   []byte
	wire    *tlv.Block
}

// NewBaseNameComponent creates a name component of an arbitrary type.
func NewBaseNameComponent(tlvType uint16, value []byte) *BaseNameComponent {
	n := new(BaseNameComponent)
	n.tlvType = tlvType
	n.value = value
	return n
}

func (n *BaseNameComponent) String() string {
	return strconv.FormatUint(uint64(n.tlvType), 10) + "=" + escapeComponent(n.value)
}

// DeepCopy makes a deep copy of the name component.
func (n *BaseNameComponent) DeepCopy() NameComponent {
	newN := new(BaseNameComponent)
	newN.tlvType = n.tlvType
	newN.value = make([]byte, len(n.value))
	copy(newN.value, n.value)
	return newN
}

// Type returns the TLV type of the name component.
func (n *BaseNameComponent) Type() uint16 {
	return n.tlvType
}

// Value returns the TLV value of the name component.
func (n *BaseNameComponent) Value() []byte {
	return n.value
}

// Equals returns whether the two name components match.
func (n *BaseNameComponent) Equals(other NameComponent) bool {
	return n.tlvType == other.Type() && bytes.Equal(n.value, other.Value())
}

// Encode encodes the name component into a block.
func (n *BaseNameComponent) Encode() *tlv.Block {
	if n.wire == nil {
		n.wire = tlv.NewBlock(uint32(n.tlvType), n.value)
		n.wire.Wire()
	}
	return n.wire
}

////////////////////////////////
// ImplicitSha256DigestComponent
////////////////////////////////

// ImplicitSha256DigestComponent represents an implicit SHA-256 digest component.
type ImplicitSha256DigestComponent struct {
	BaseNameComponent
}

// NewImplicitSha256DigestComponent creates a new ImplicitSha256DigestComponent. The value must
// be exactly 32 bytes.
func NewImplicitSha256DigestComponent(value []byte) *ImplicitSha256DigestComponent {
	if len(value) != 32 {
		return nil
	}

	n := new(ImplicitSha256DigestComponent)
	n.tlvType = tlv.ImplicitSha256DigestComponent
	n.value = value
	return n
}

func (n *ImplicitSha256DigestComponent) String() string {
	return "sha256digest=" + util.ToHex(n.value, false)
}

// DeepCopy creates a deep copy of the name component.
func (n *ImplicitSha256DigestComponent) DeepCopy() NameComponent {
	return &ImplicitSha256DigestComponent{BaseNameComponent: *n.BaseNameComponent.DeepCopy().(*BaseNameComponent)}
}

///////////////////////
// GenericNameComponent
///////////////////////

// GenericNameComponent represents a generic NDN name component.
type GenericNameComponent struct {
	BaseNameComponent
}

// NewGenericNameComponent creates a new GenericNameComponent.
func NewGenericNameComponent(value []byte) *GenericNameComponent {
	n := new(GenericNameComponent)
	n.tlvType = tlv.GenericNameComponent
	n.value = value
	return n
}

func (n *GenericNameComponent) String() string {
	return escapeComponent(n.value)
}

// DeepCopy creates a deep copy of the name component.
func (n *GenericNameComponent) DeepCopy() NameComponent {
	return &GenericNameComponent{BaseNameComponent: *n.BaseNameComponent.DeepCopy().(*BaseNameComponent)}
}

///////////////////////
// KeywordNameComponent
///////////////////////

// KeywordNameComponent is a component containing a well-known keyword.
type KeywordNameComponent struct {
	BaseNameComponent
}

// NewKeywordNameComponent creates a new KeywordNameComponent.
func NewKeywordNameComponent(value []byte) *KeywordNameComponent {
	n := new(KeywordNameComponent)
	n.tlvType = tlv.KeywordNameComponent
	n.value = value
	return n
}

func (n *KeywordNameComponent) String() string {
	return escapeComponent(n.value)
}

// DeepCopy creates a deep copy of the name component.
func (n *KeywordNameComponent) DeepCopy() NameComponent {
	return &KeywordNameComponent{BaseNameComponent: *n.BaseNameComponent.DeepCopy().(*BaseNameComponent)}
}

///////////////////////
// SegmentNameComponent
///////////////////////

// SegmentNameComponent is a component containing a segment number.
type SegmentNameComponent struct {
	BaseNameComponent
	rawValue uint64
}

// NewSegmentNameComponent creates a new SegmentNameComponent.
func NewSegmentNameComponent(value uint64) *SegmentNameComponent {
	n := new(SegmentNameComponent)
	n.tlvType = tlv.SegmentNameComponent
	n.rawValue = value
	n.value = tlv.EncodeNNI(n.rawValue)
	return n
}

// DecodeSegmentNameComponent decodes a SegmentNameComponent from a TLV wire value.
func DecodeSegmentNameComponent(value []byte) *SegmentNameComponent {
	rawValue, err := tlv.DecodeNNI(value)
	if err != nil {
		return nil
	}
	n := new(SegmentNameComponent)
	n.tlvType = tlv.SegmentNameComponent
	n.value = value
	n.rawValue = rawValue
	return n
}

func (n *SegmentNameComponent) String() string {
	return "seg=" + strconv.FormatUint(n.rawValue, 10)
}

// DeepCopy creates a deep copy of the name component.
func (n *SegmentNameComponent) DeepCopy() NameComponent {
	return &SegmentNameComponent{BaseNameComponent: *n.BaseNameComponent.DeepCopy().(*BaseNameComponent), rawValue: n.rawValue}
}

///////////////////////
// VersionNameComponent
///////////////////////

// VersionNameComponent is a component containing a version number.
type VersionNameComponent struct {
	BaseNameComponent
	rawValue uint64
}

// NewVersionNameComponent creates a new VersionNameComponent.
func NewVersionNameComponent(value uint64) *VersionNameComponent {
	n := new(VersionNameComponent)
	n.tlvType = tlv.VersionNameComponent
	n.rawValue = value
	n.value = tlv.EncodeNNI(n.rawValue)
	return n
}

// DecodeVersionNameComponent decodes a VersionNameComponent from a TLV wire value.
func DecodeVersionNameComponent(value []byte) *VersionNameComponent {
	rawValue, err := tlv.DecodeNNI(value)
	if err != nil {
		return nil
	}
	n := new(VersionNameComponent)
	n.tlvType = tlv.VersionNameComponent
	n.value = value
	n.rawValue = rawValue
	return n
}

func (n *VersionNameComponent) String() string {
	return "v=" + strconv.FormatUint(n.rawValue, 10)
}

// DeepCopy creates a deep copy of the name component.
func (n *VersionNameComponent) DeepCopy() NameComponent {
	return &VersionNameComponent{BaseNameComponent: *n.BaseNameComponent.DeepCopy().(*BaseNameComponent), rawValue: n.rawValue}
}

// Version returns the version contained in the name component.
func (n *VersionNameComponent) Version() uint64 {
	return n.rawValue
}

///////
// Name
///////

// Name represents an NDN name.
type Name struct {
	components   []NameComponent
	wire         *tlv.Block
	cachedString string
}

// NewName constructs an empty name.
func NewName() *Name {
	return new(Name)
}

// NameFromString decodes a name from its URI representation.
func NameFromString(str string) (*Name, error) {
	n := new(Name)

	if len(str) == 0 {
		// Empty name
		return n, nil
	}

	components := strings.Split(str, "/")[1:] // Skip first since empty
	if len(components[0]) == 0 {
		// Empty name
		return n, nil
	}
	for _, component := range components {
		var c NameComponent
		if strings.Contains(component, "=") {
			componentSplit := strings.Split(component, "=")
			if len(componentSplit) != 2 {
				return nil, errors.New("name component has extraneous =")
			}

			unescapedValue, err := unescapeComponent(componentSplit[1])
			if err != nil {
				return nil, errors.New("error unescaping component value")
			}

			switch componentSplit[0] {
			case "sha256digest":
				digest, err := util.FromHex(unescapedValue)
				if err != nil {
					return nil, errors.New("ImplicitSha256DigestComponent is not a hex string")
				}
				c = NewImplicitSha256DigestComponent(digest)
			case "seg":
				seg, err := strconv.ParseUint(unescapedValue, 10, 64)
				if err != nil {
					return nil, errors.New("SegmentNameComponent is not a decimal string")
				}
				c = NewSegmentNameComponent(seg)
			case "v":
				v, err := strconv.ParseUint(unescapedValue, 10, 64)
				if err != nil {
					return nil, errors.New("VersionNameComponent is not a decimal string")
				}
				c = NewVersionNameComponent(v)
			default:
				t, err := strconv.ParseUint(componentSplit[0], 10, 16)
				if err != nil {
					return nil, errors.New("unable to decode component type \"" + componentSplit[0] + "\"")
				}
				c = NewBaseNameComponent(uint16(t), []byte(unescapedValue))
			}
		} else {
			// Treat as GenericNameComponent
			unescaped, err := unescapeComponent(component)
			if err != nil {
				return nil, errors.New("error unescaping component value")
			}
			c = NewGenericNameComponent([]byte(unescaped))
		}
		if c == nil {
			return nil, util.ErrDecodeNameComponent
		}
		n.Append(c)
	}

	return n, nil
}

// DecodeName decodes a name from wire encoding.
func DecodeName(b *tlv.Block) (*Name, error) {
	if b == nil {
		return nil, util.ErrNonExistent
	}
	if _, err := b.Wire(); err != nil {
		return nil, err
	}
	if b.Type() != tlv.Name {
		return nil, tlv.ErrUnexpected
	}

	if len(b.Subelements()) == 0 && !b.Parse() {
		return nil, util.ErrDecodeName
	}
	n := new(Name)
	n.components = make([]NameComponent, len(b.Subelements()))
	for i, elem := range b.Subelements() {
		component, err := DecodeNameComponent(elem)
		if err != nil {
			return nil, err
		}
		n.components[i] = component
		n.cachedString += "/" + component.String()
	}
	n.wire = b
	return n, nil
}

func (n *Name) String() string {
	if len(n.cachedString) > 0 {
		return n.cachedString
	}

	if n.Size() == 0 {
		return "/"
	}

	var out string
	for _, component := range n.components {
		out += "/" + component.String()
	}
	n.cachedString = out
	return out
}

// Append adds the specified name component to the end of the name.
func (n *Name) Append(component NameComponent) *Name {
	n.components = append(n.components, component)
	n.wire = nil
	n.cachedString += "/" + component.String()
	return n
}

// At returns the name component at the specified index. Negative indices count from the end of
// the name. If out of range, nil is returned.
func (n *Name) At(index int) NameComponent {
	if index < -len(n.components) || index >= len(n.components) {
		return nil
	}

	if index < 0 {
		return n.components[len(n.components)+index]
	}
	return n.components[index]
}

// Size returns the number of components in the name.
func (n *Name) Size() int {
	return len(n.components)
}

// Equals returns whether the specified name is equal to this name.
func (n *Name) Equals(other *Name) bool {
	if other == nil || n.Size() != other.Size() {
		return false
	}

	for i := 0; i < n.Size(); i++ {
		if !n.At(i).Equals(other.At(i)) {
			return false
		}
	}

	return true
}

// PrefixOf returns whether this name is a prefix of the specified name.
func (n *Name) PrefixOf(other *Name) bool {
	if other == nil || n.Size() > other.Size() {
		return false
	}

	for i := 0; i < n.Size(); i++ {
		if !n.At(i).Equals(other.At(i)) {
			return false
		}
	}

	return true
}

// DeepCopy returns a deep copy of the name.
func (n *Name) DeepCopy() *Name {
	name := new(Name)
	name.components = make([]NameComponent, 0, len(n.components))
	for _, component := range n.components {
		name.components = append(name.components, component.DeepCopy())
	}
	return name
}

// HasWire returns whether the name has a wire encoding.
func (n *Name) HasWire() bool {
	return n.wire != nil
}

// Encode encodes the name into a block.
func (n *Name) Encode() *tlv.Block {
	if n.wire == nil {
		n.wire = tlv.NewEmptyBlock(tlv.Name)
		for _, component := range n.components {
			n.wire.Append(component.Encode())
		}
		n.wire.Wire()
	}
	return n.wire
}
