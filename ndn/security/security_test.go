/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package security_test

import (
	"crypto/sha256"
	"testing"

	"github.com/named-data/ndnwire/ndn/security"
	"github.com/stretchr/testify/assert"
)

func TestDigestSha256(t *testing.T) {
	buf := []byte("the quick brown fox")
	signature, err := security.Sign(security.DigestSha256Type, buf)
	assert.NoError(t, err)

	expected := sha256.Sum256(buf)
	assert.Equal(t, expected[:], signature)

	valid, err := security.Verify(security.DigestSha256Type, buf, signature)
	assert.NoError(t, err)
	assert.True(t, valid)

	valid, err = security.Verify(security.DigestSha256Type, append(buf, 0x00), signature)
	assert.NoError(t, err)
	assert.False(t, valid)
}

func TestHmacSha256(t *testing.T) {
	signer := security.NewHmacSha256([]byte("shared key"))
	buf := []byte("jumps over the lazy dog")

	signature, err := signer.Sign(buf)
	assert.NoError(t, err)
	assert.Len(t, signature, 32)
	assert.True(t, signer.Validate(buf, signature))
	assert.False(t, signer.Validate(buf, make([]byte, 32)))

	// A different key produces a different MAC
	other := security.NewHmacSha256([]byte("other key"))
	assert.False(t, other.Validate(buf, signature))
}

func TestSignUnsupportedTypes(t *testing.T) {
	_, err := security.Sign(security.SignatureSha256WithRsaType, []byte{0x01})
	assert.Error(t, err)
	_, err = security.Sign(security.SignatureType(42), []byte{0x01})
	assert.Error(t, err)
	_, err = security.Verify(security.SignatureEd25519Type, []byte{0x01}, []byte{0x02})
	assert.Error(t, err)
}
