// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package checksum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siderolabs/go-disklayout/internal/checksum"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name     string
		input    []byte
		expected uint32
	}{
		{
			name:     "empty",
			input:    nil,
			expected: 0,
		},
		{
			name:     "check value",
			input:    []byte("123456789"),
			expected: 0xcbf43926,
		},
		{
			name:     "single zero byte",
			input:    []byte{0},
			expected: 0xd202ef8d,
		},
		{
			name:     "fox",
			input:    []byte("The quick brown fox jumps over the lazy dog"),
			expected: 0x414fa339,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, test.expected, checksum.Calculate(test.input))
			assert.True(t, checksum.Verify(test.input, test.expected))
			assert.False(t, checksum.Verify(test.input, test.expected^1))
		})
	}
}
