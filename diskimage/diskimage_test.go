// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package diskimage_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/siderolabs/go-disklayout/diskimage"
	"github.com/siderolabs/go-disklayout/disklayout"
	"github.com/siderolabs/go-disklayout/internal/disktest"
	"github.com/siderolabs/go-disklayout/parttype"
)

const MiB = 1024 * 1024

func testImage(t *testing.T) *disktest.Image {
	t.Helper()

	img := disktest.New(8*MiB, 512)

	_, err := img.WriteGPT([]disktest.GPTPartition{
		{
			Name:     "EFI",
			TypeGUID: parttype.EFISystem,
			PartGUID: uuid.MustParse("3C3C5E2A-6F0B-4A39-9C64-9E1D1C7C0A01"),
			FirstLBA: 2048,
			LastLBA:  6143,
		},
		{
			Name:     "root",
			TypeGUID: parttype.LinuxFilesystem,
			PartGUID: uuid.MustParse("3C3C5E2A-6F0B-4A39-9C64-9E1D1C7C0A02"),
			FirstLBA: 6144,
			LastLBA:  14335,
		},
	})
	require.NoError(t, err)

	img.WriteFATBootSector(2048*512, "mkfs.fat")
	img.WriteExtSuperblock(6144 * 512)

	return img
}

func compress(t *testing.T, format diskimage.Format, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer

	var w io.WriteCloser

	switch format {
	case diskimage.FormatZstd:
		enc, err := zstd.NewWriter(&buf)
		require.NoError(t, err)

		w = enc
	case diskimage.FormatGzip:
		w = gzip.NewWriter(&buf)
	case diskimage.FormatBzip2:
		enc, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.BestSpeed})
		require.NoError(t, err)

		w = enc
	default:
		return data
	}

	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func TestOpen(t *testing.T) {
	t.Parallel()

	for _, format := range []diskimage.Format{
		diskimage.FormatRaw,
		diskimage.FormatZstd,
		diskimage.FormatGzip,
		diskimage.FormatBzip2,
	} {
		t.Run(format.String(), func(t *testing.T) {
			t.Parallel()

			src := testImage(t)

			path := filepath.Join(t.TempDir(), "disk.img")
			require.NoError(t, os.WriteFile(path, compress(t, format, src.Bytes()), 0o644))

			img, err := diskimage.Open(path, diskimage.WithLogger(zaptest.NewLogger(t)))
			require.NoError(t, err)

			assert.Equal(t, format, img.Format())
			assert.EqualValues(t, 8*MiB, img.GetSize())
			assert.EqualValues(t, 512, img.GetSectorSize())

			layout, err := disklayout.Create(img)
			require.NoError(t, err)

			assert.Equal(t, disklayout.StyleGPT, layout.Style())

			partitions := layout.Partitions()
			require.Len(t, partitions, 2)

			assert.Equal(t, "FAT32", *partitions[0].Filesystem)
			assert.Equal(t, "ext4", *partitions[1].Filesystem)
		})
	}
}

func TestOpenMaxSize(t *testing.T) {
	t.Parallel()

	src := testImage(t)
	data := compress(t, diskimage.FormatZstd, src.Bytes())

	_, err := diskimage.NewFromReader(bytes.NewReader(data), diskimage.WithMaxSize(4*MiB))
	require.ErrorIs(t, err, diskimage.ErrTooLarge)

	img, err := diskimage.NewFromReader(bytes.NewReader(data), diskimage.WithMaxSize(8*MiB))
	require.NoError(t, err)

	assert.EqualValues(t, 8*MiB, img.GetSize())
}

func TestOpenCorrupt(t *testing.T) {
	t.Parallel()

	data := compress(t, diskimage.FormatGzip, testImage(t).Bytes())

	_, err := diskimage.NewFromReader(bytes.NewReader(data[:len(data)/2]))
	require.Error(t, err)
}

func TestOpenMissing(t *testing.T) {
	t.Parallel()

	_, err := diskimage.Open(filepath.Join(t.TempDir(), "missing.img"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadAt(t *testing.T) {
	t.Parallel()

	img, err := diskimage.NewFromReader(bytes.NewReader([]byte("0123456789")), diskimage.WithSectorSize(4096))
	require.NoError(t, err)

	assert.EqualValues(t, 4096, img.GetSectorSize())

	buf := make([]byte, 4)

	n, err := img.ReadAt(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "2345", string(buf))

	n, err = img.ReadAt(buf, 8)
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 2, n)

	_, err = img.ReadAt(buf, 10)
	require.ErrorIs(t, err, io.EOF)

	_, err = img.ReadAt(buf, -1)
	require.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, diskimage.FormatZstd, diskimage.DetectFormat([]byte{0x28, 0xb5, 0x2f, 0xfd}))
	assert.Equal(t, diskimage.FormatGzip, diskimage.DetectFormat([]byte{0x1f, 0x8b, 0x08, 0x00}))
	assert.Equal(t, diskimage.FormatBzip2, diskimage.DetectFormat([]byte("BZh9")))
	assert.Equal(t, diskimage.FormatRaw, diskimage.DetectFormat([]byte{0xeb, 0x52, 0x90}))
	assert.Equal(t, diskimage.FormatRaw, diskimage.DetectFormat(nil))
}
