// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package binutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siderolabs/go-disklayout/internal/binutil"
)

func TestAccessors(t *testing.T) {
	t.Parallel()

	buf := []byte{0xff, 0x53, 0xef, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	assert.Equal(t, uint16(0xef53), binutil.Uint16LE(buf, 1))
	assert.Equal(t, uint32(0x0201ef53), binutil.Uint32LE(buf, 1))
	assert.Equal(t, uint64(0x0807060504030201), binutil.Uint64LE(buf, 3))

	out := make([]byte, 16)

	binutil.PutUint16LE(out, 0, 0xaa55)
	binutil.PutUint32LE(out, 2, 0xdeadbeef)
	binutil.PutUint64LE(out, 6, 0x1122334455667788)

	assert.Equal(t, []byte{0x55, 0xaa}, out[0:2])
	assert.Equal(t, uint32(0xdeadbeef), binutil.Uint32LE(out, 2))
	assert.Equal(t, uint64(0x1122334455667788), binutil.Uint64LE(out, 6))
}

func TestIsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, binutil.IsZero(nil))
	assert.True(t, binutil.IsZero(make([]byte, 16)))
	assert.False(t, binutil.IsZero([]byte{0, 0, 1, 0}))
}
