/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package util

// SharedBuffer is an immutable byte buffer that may be shared across packets without copying.
// The bytes must not be modified after construction.
type SharedBuffer struct {
	data []byte
}

// NewSharedBuffer creates a SharedBuffer that adopts data without copying. The caller must not
// modify data afterwards.
func NewSharedBuffer(data []byte) *SharedBuffer {
	if data == nil {
		data = []byte{}
	}
	return &SharedBuffer{data: data}
}

// CopyToSharedBuffer creates a SharedBuffer containing a copy of data.
func CopyToSharedBuffer(data []byte) *SharedBuffer {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &SharedBuffer{data: buf}
}

// Bytes returns the underlying bytes. Callers must treat the returned slice as read-only.
func (b *SharedBuffer) Bytes() []byte {
	return b.data
}

// Size returns the number of bytes in the buffer.
func (b *SharedBuffer) Size() int {
	return len(b.data)
}
