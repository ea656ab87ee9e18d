/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package security

import (
	"errors"
)

// SignatureType represents the type of a signature.
type SignatureType uint64

// The various possible values of SignatureType.
const (
	DigestSha256Type             SignatureType = 0
	SignatureSha256WithRsaType   SignatureType = 1
	SignatureSha256WithEcdsaType SignatureType = 3
	SignatureHmacWithSha256Type  SignatureType = 4
	SignatureEd25519Type         SignatureType = 5
)

// Signer represents an implementation of a signature type.
type Signer interface {
	Sign(buffer []byte) ([]byte, error)
	Validate(buffer []byte, signature []byte) bool
}

// Sign signs the provided buffer using the appropriate signer.
func Sign(signatureType SignatureType, buffer []byte) ([]byte, error) {
	signer, err := signerFor(signatureType)
	if err != nil {
		return nil, err
	}
	return signer.Sign(buffer)
}

// Verify verifies the provided signature against the provided buffer using the appropriate signer.
func Verify(signatureType SignatureType, buffer []byte, signature []byte) (bool, error) {
	signer, err := signerFor(signatureType)
	if err != nil {
		return false, err
	}
	return signer.Validate(buffer, signature), nil
}

func signerFor(signatureType SignatureType) (Signer, error) {
	switch signatureType {
	case DigestSha256Type:
		return new(DigestSha256), nil
	case SignatureSha256WithRsaType:
		return nil, errors.New("SignatureSha256WithRsa requires a keychain")
	case SignatureSha256WithEcdsaType:
		return nil, errors.New("SignatureSha256WithEcdsa requires a keychain")
	case SignatureHmacWithSha256Type:
		return nil, errors.New("SignatureHmacWithSha256 requires a shared key")
	case SignatureEd25519Type:
		return nil, errors.New("SignatureEd25519 requires a keychain")
	default:
		return nil, errors.New("Unknown SignatureType")
	}
}
