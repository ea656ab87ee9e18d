/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package security

import (
	"crypto/hmac"
	"crypto/sha256"
)

// HmacSha256 represents a signer that computes an HMAC-SHA256 over the packet with a shared key.
type HmacSha256 struct {
	key []byte
}

// NewHmacSha256 creates an HmacSha256 signer with the specified shared key.
func NewHmacSha256(key []byte) *HmacSha256 {
	return &HmacSha256{key: key}
}

// Sign signs a buffer using HMAC-SHA256.
func (h *HmacSha256) Sign(buf []byte) ([]byte, error) {
	mac := hmac.New(sha256.New, h.key)
	mac.Write(buf)
	return mac.Sum(nil), nil
}

// Validate returns whether the provided signature is valid for the provided buffer.
func (h *HmacSha256) Validate(buf []byte, signature []byte) bool {
	newSignature, err := h.Sign(buf)
	if err != nil {
		return false
	}
	return hmac.Equal(newSignature, signature)
}
