/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package util

import "errors"

// NDN common errors.
var (
	ErrDecodeData          = errors.New("error decoding data packet")
	ErrDecodeMetaInfo      = errors.New("error decoding MetaInfo")
	ErrDecodeName          = errors.New("error decoding name")
	ErrDecodeNameComponent = errors.New("error decoding name component")
	ErrDecodeSignatureInfo = errors.New("error decoding SignatureInfo")
	ErrInvalidHex          = errors.New("invalid hex string")
	ErrNonExistent         = errors.New("required value does not exist")
	ErrOutOfRange          = errors.New("value outside of allowed range")
	ErrTooLong             = errors.New("value too long")
	ErrTooShort            = errors.New("value too short")
)
