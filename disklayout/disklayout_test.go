// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package disklayout_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/siderolabs/gen/xslices"
	"github.com/siderolabs/go-pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/siderolabs/go-disklayout/disklayout"
	"github.com/siderolabs/go-disklayout/internal/binutil"
	"github.com/siderolabs/go-disklayout/internal/disktest"
	"github.com/siderolabs/go-disklayout/parttype"
	"github.com/siderolabs/go-disklayout/partitioning/mbr"
)

const (
	MiB = 1024 * 1024
)

func TestCreateEndToEndNTFS(t *testing.T) {
	t.Parallel()

	img := disktest.New(64*MiB, 512)
	img.SetDiskSignature(0x1234abcd)
	img.WriteMBR(disktest.MBREntry{Status: 0x80, Type: 0x07, StartLBA: 2048, Sectors: 129024})
	img.WriteNTFSBootSector(2048 * 512)

	layout, err := disklayout.Create(img, disklayout.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	assert.Equal(t, disklayout.StyleMBR, layout.Style())
	assert.Equal(t, disklayout.StateValid, layout.State())
	assert.False(t, layout.Partial())
	assert.NoError(t, layout.Fault())
	assert.True(t, layout.Verified())
	assert.EqualValues(t, 512, layout.SectorSize())

	sig, ok := layout.DiskSignature()
	assert.True(t, ok)
	assert.EqualValues(t, 0x1234abcd, sig)

	_, ok = layout.DiskGUID()
	assert.False(t, ok)

	partitions := layout.Partitions()
	require.Len(t, partitions, 1)

	p := partitions[0]
	assert.EqualValues(t, 1, p.Number)
	assert.Equal(t, disklayout.StyleMBR, p.Style)
	assert.Equal(t, pointer.To(mbr.KindPrimary), p.Kind)
	assert.EqualValues(t, 1048576, p.Offset)
	assert.EqualValues(t, 129024*512, p.Size)
	assert.EqualValues(t, 2048, p.StartLBA)
	assert.EqualValues(t, 2048+129024-1, p.EndLBA)
	assert.Equal(t, parttype.LookupMBR(0x07), p.Type)
	assert.Equal(t, pointer.To[byte](0x07), p.TypeCode)
	assert.True(t, p.Bootable)
	assert.Equal(t, pointer.To("NTFS"), p.Filesystem)
	assert.EqualValues(t, 1048576, p.FilesystemOffset)
}

func TestCreateGPT(t *testing.T) {
	t.Parallel()

	diskGUID := uuid.MustParse("9A6D0C4B-8E2A-4F43-8C1C-2B7F35B1F001")

	img := disktest.New(64*MiB, 512)

	_, err := img.WriteGPT([]disktest.GPTPartition{
		{
			Name:     "EFI",
			TypeGUID: parttype.EFISystem,
			PartGUID: uuid.MustParse("9A6D0C4B-8E2A-4F43-8C1C-2B7F35B1F002"),
			FirstLBA: 2048,
			LastLBA:  6143,
		},
		{
			Name:     "root",
			TypeGUID: parttype.LinuxFilesystem,
			PartGUID: uuid.MustParse("9A6D0C4B-8E2A-4F43-8C1C-2B7F35B1F003"),
			FirstLBA: 6144,
			LastLBA:  20479,
		},
	}, disktest.WithDiskGUID(diskGUID), disktest.WithSlots(0, 4))
	require.NoError(t, err)

	img.WriteFATBootSector(2048*512, "mkfs.fat")
	img.WriteExtSuperblock(6144 * 512)

	layout, err := disklayout.Create(img, disklayout.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	// the protective MBR is not reported as an MBR layout
	assert.Equal(t, disklayout.StyleGPT, layout.Style())
	assert.Equal(t, disklayout.StateValid, layout.State())
	assert.True(t, layout.Verified())
	assert.False(t, layout.UsedBackupHeader())

	guid, ok := layout.DiskGUID()
	assert.True(t, ok)
	assert.Equal(t, diskGUID, guid)

	_, ok = layout.DiskSignature()
	assert.False(t, ok)

	partitions := layout.Partitions()
	require.Len(t, partitions, 2)

	// numbered after the entry slot
	assert.Equal(t, []uint{1, 5}, xslices.Map(partitions, func(p disklayout.Partition) uint { return p.Number }))
	assert.Equal(t, []string{"EFI System", "Linux filesystem"}, xslices.Map(partitions, func(p disklayout.Partition) string { return p.Type.Name }))
	assert.Equal(t, []string{"FAT32", "ext4"}, xslices.Map(partitions, func(p disklayout.Partition) string { return *p.Filesystem }))

	root, ok := layout.Find(5)
	require.True(t, ok)
	assert.Equal(t, pointer.To("root"), root.Name)
	assert.Equal(t, pointer.To(parttype.LinuxFilesystem), root.TypeGUID)
	assert.EqualValues(t, 6144*512, root.Offset)
	assert.EqualValues(t, (20479-6144+1)*512, root.Size)
	assert.EqualValues(t, 6144*512+1024, root.FilesystemOffset)
	assert.Nil(t, root.Kind)
	assert.Nil(t, root.TypeCode)

	_, ok = layout.Find(2)
	assert.False(t, ok)
}

func TestCreateRaw(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name  string
		setup func(*disktest.Image)
	}{
		{
			name:  "zeroed",
			setup: func(*disktest.Image) {},
		},
		{
			name: "filesystem without partition table",
			setup: func(img *disktest.Image) {
				img.WriteExtSuperblock(0)
			},
		},
		{
			name: "protective entry without boot signature or header",
			setup: func(img *disktest.Image) {
				img.WriteProtectiveMBR(false)
				img.Bytes()[511] = 0
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			img := disktest.New(4*MiB, 512)
			test.setup(img)

			layout, err := disklayout.Create(img, disklayout.WithLogger(zaptest.NewLogger(t)))
			require.NoError(t, err)

			assert.Equal(t, disklayout.StyleRaw, layout.Style())
			assert.Equal(t, disklayout.StateRaw, layout.State())
			assert.Empty(t, layout.Partitions())
			assert.False(t, layout.Partial())
		})
	}
}

func TestCreateProtectiveMBRWithoutHeader(t *testing.T) {
	t.Parallel()

	img := disktest.New(4*MiB, 512)
	img.WriteProtectiveMBR(false)

	// no GPT header, so the protective entry is reported as a plain MBR partition
	layout, err := disklayout.Create(img)
	require.NoError(t, err)

	assert.Equal(t, disklayout.StyleMBR, layout.Style())

	partitions := layout.Partitions()
	require.Len(t, partitions, 1)
	assert.Equal(t, pointer.To[byte](0xee), partitions[0].TypeCode)
}

func TestCreateCorruptChain(t *testing.T) {
	t.Parallel()

	img := disktest.New(16*MiB, 512)
	img.WriteMBR(
		disktest.MBREntry{Type: 0x83, StartLBA: 63, Sectors: 1000},
		disktest.MBREntry{Type: 0x0f, StartLBA: 2048, Sectors: 20000},
	)

	ebrs := img.WriteExtendedChain(2048,
		disktest.Logical{Type: 0x83, Sectors: 100},
		disktest.Logical{Type: 0x07, Sectors: 100},
	)

	img.WriteNTFSBootSector((ebrs[1] + 63) * 512)

	layout, err := disklayout.Create(img, disklayout.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	require.Len(t, layout.Partitions(), 4)

	p, ok := layout.Find(4)
	require.True(t, ok)
	assert.Equal(t, pointer.To(mbr.KindLogical), p.Kind)
	assert.Equal(t, pointer.To("NTFS"), p.Filesystem)

	// extended containers are not probed
	ext, ok := layout.Find(2)
	require.True(t, ok)
	assert.True(t, ext.Extended())
	assert.Nil(t, ext.Filesystem)

	// make the second EBR link to itself
	second := img.Sector(ebrs[1])
	second[disktest.MBRTableOffset+disktest.MBREntrySize+4] = 0x05
	binutil.PutUint32LE(second, disktest.MBRTableOffset+disktest.MBREntrySize+8, uint32(ebrs[1]-2048))

	layout, err = disklayout.Create(img, disklayout.WithLogger(zaptest.NewLogger(t)))
	require.ErrorIs(t, err, disklayout.ErrCorruptChain)
	require.NotNil(t, layout)

	assert.Equal(t, disklayout.StyleMBR, layout.Style())
	assert.Equal(t, disklayout.StateCorrupt, layout.State())
	assert.True(t, layout.Partial())
	assert.False(t, layout.Verified())
	assert.ErrorIs(t, layout.Fault(), disklayout.ErrCorruptChain)
	assert.Len(t, layout.Partitions(), 4)
}

func TestCreateCorruptGPT(t *testing.T) {
	t.Parallel()

	img := disktest.New(16*MiB, 512)

	geo, err := img.WriteGPT([]disktest.GPTPartition{
		{
			Name:     "data",
			TypeGUID: parttype.MicrosoftBasicData,
			PartGUID: uuid.MustParse("9A6D0C4B-8E2A-4F43-8C1C-2B7F35B1F004"),
			FirstLBA: 2048,
			LastLBA:  4095,
		},
	})
	require.NoError(t, err)

	img.WriteNTFSBootSector(2048 * 512)

	// stale entry array checksum
	img.Sector(geo.PrimaryEntriesLBA)[56] = 'D'

	layout, err := disklayout.Create(img, disklayout.WithLogger(zaptest.NewLogger(t)))
	require.ErrorIs(t, err, disklayout.ErrEntryArrayCorrupt)
	require.NotNil(t, layout)

	assert.Equal(t, disklayout.StyleGPT, layout.Style())
	assert.Equal(t, disklayout.StateCorrupt, layout.State())
	assert.True(t, layout.Partial())

	partitions := layout.Partitions()
	require.Len(t, partitions, 1)
	assert.Equal(t, pointer.To("Data"), partitions[0].Name)
	assert.Equal(t, pointer.To("NTFS"), partitions[0].Filesystem)

	// both headers corrupt: GPT style without partitions, never MBR
	img.Sector(geo.PrimaryHeaderLBA)[20] ^= 0xff
	img.Sector(geo.BackupHeaderLBA)[20] ^= 0xff

	layout, err = disklayout.Create(img)
	require.ErrorIs(t, err, disklayout.ErrHeaderCorrupt)
	require.NotNil(t, layout)

	assert.Equal(t, disklayout.StyleGPT, layout.Style())
	assert.Equal(t, disklayout.StateCorrupt, layout.State())
	assert.Empty(t, layout.Partitions())
}

func TestCreateBackupHeader(t *testing.T) {
	t.Parallel()

	img := disktest.New(16*MiB, 512)

	geo, err := img.WriteGPT([]disktest.GPTPartition{
		{
			Name:     "swap",
			TypeGUID: parttype.LinuxSwap,
			PartGUID: uuid.MustParse("9A6D0C4B-8E2A-4F43-8C1C-2B7F35B1F005"),
			FirstLBA: 2048,
			LastLBA:  4095,
		},
	})
	require.NoError(t, err)

	img.Sector(geo.PrimaryHeaderLBA)[16] ^= 0xff

	layout, err := disklayout.Create(img)
	require.NoError(t, err)
	assert.True(t, layout.UsedBackupHeader())
	assert.Len(t, layout.Partitions(), 1)

	_, err = disklayout.Create(img, disklayout.WithoutBackupHeader())
	require.ErrorIs(t, err, disklayout.ErrHeaderCorrupt)
}

func TestCreateWithoutFilesystemProbe(t *testing.T) {
	t.Parallel()

	img := disktest.New(64*MiB, 512)
	img.WriteMBR(disktest.MBREntry{Type: 0x07, StartLBA: 2048, Sectors: 4096})
	img.WriteNTFSBootSector(2048 * 512)

	r := &disktest.CountingReader{Image: img}

	layout, err := disklayout.Create(r, disklayout.WithoutFilesystemProbe())
	require.NoError(t, err)

	partitions := layout.Partitions()
	require.Len(t, partitions, 1)
	assert.Nil(t, partitions[0].Filesystem)

	// first sector, read once by the dispatcher and once by the MBR parser
	assert.Equal(t, []int64{0, 0}, r.Offsets)
}

func TestCreateSectorSize(t *testing.T) {
	t.Parallel()

	img := disktest.New(64*MiB, 4096)
	img.WriteMBR(disktest.MBREntry{Type: 0x83, StartLBA: 256, Sectors: 1024})
	img.WriteExtSuperblock(256 * 4096)

	layout, err := disklayout.Create(img)
	require.NoError(t, err)

	partitions := layout.Partitions()
	require.Len(t, partitions, 1)
	assert.EqualValues(t, 256*4096, partitions[0].Offset)
	assert.EqualValues(t, 1024*4096, partitions[0].Size)
	assert.Equal(t, pointer.To("ext4"), partitions[0].Filesystem)

	// overriding the sector size moves the partition
	layout, err = disklayout.Create(img, disklayout.WithSectorSize(512))
	require.NoError(t, err)

	partitions = layout.Partitions()
	require.Len(t, partitions, 1)
	assert.EqualValues(t, 256*512, partitions[0].Offset)
	assert.Equal(t, pointer.To("Unknown"), partitions[0].Filesystem)
}

func TestLayoutSnapshot(t *testing.T) {
	t.Parallel()

	img := disktest.New(16*MiB, 512)
	img.WriteMBR(disktest.MBREntry{Type: 0x0c, StartLBA: 2048, Sectors: 4096})

	layout, err := disklayout.Create(img)
	require.NoError(t, err)

	partitions := layout.Partitions()
	partitions[0].Offset = 42
	*partitions[0].Filesystem = "ext4"
	*partitions[0].TypeCode = 0x05
	*partitions[0].Kind = mbr.KindLogical

	assert.EqualValues(t, 2048*512, layout.Partitions()[0].Offset)
	assert.Equal(t, pointer.To("Unknown"), layout.Partitions()[0].Filesystem)
	assert.Equal(t, pointer.To[byte](0x0c), layout.Partitions()[0].TypeCode)
	assert.Equal(t, pointer.To(mbr.KindPrimary), layout.Partitions()[0].Kind)

	found, ok := layout.Find(1)
	require.True(t, ok)
	assert.False(t, found.Extended())

	*found.TypeCode = 0x0f

	found, ok = layout.Find(1)
	require.True(t, ok)
	assert.False(t, found.Extended())

	// the disk changes underneath, the old snapshot doesn't
	img.WriteMBR(
		disktest.MBREntry{Type: 0x0c, StartLBA: 2048, Sectors: 4096},
		disktest.MBREntry{Type: 0x83, StartLBA: 8192, Sectors: 4096},
	)

	reloaded, err := layout.Reload()
	require.NoError(t, err)

	assert.Len(t, layout.Partitions(), 1)
	assert.Len(t, reloaded.Partitions(), 2)
}

func TestLayoutSnapshotGPT(t *testing.T) {
	t.Parallel()

	img := disktest.New(16*MiB, 512)

	_, err := img.WriteGPT([]disktest.GPTPartition{
		{
			Name:     "data",
			TypeGUID: parttype.LinuxFilesystem,
			PartGUID: uuid.MustParse("0B1E4C7A-2D3F-4E5A-9B6C-7D8E9F0A1B2C"),
			FirstLBA: 2048,
			LastLBA:  4095,
		},
	})
	require.NoError(t, err)

	layout, err := disklayout.Create(img)
	require.NoError(t, err)

	p, ok := layout.Find(1)
	require.True(t, ok)

	*p.Name = "renamed"
	*p.TypeGUID = parttype.LinuxSwap
	*p.UniqueGUID = uuid.Nil

	partitions := layout.Partitions()
	require.Len(t, partitions, 1)

	assert.Equal(t, pointer.To("data"), partitions[0].Name)
	assert.Equal(t, pointer.To(parttype.LinuxFilesystem), partitions[0].TypeGUID)
	assert.Equal(t, pointer.To(uuid.MustParse("0B1E4C7A-2D3F-4E5A-9B6C-7D8E9F0A1B2C")), partitions[0].UniqueGUID)
}

func TestCreateIOError(t *testing.T) {
	t.Parallel()

	img := disktest.New(16*MiB, 512)
	img.WriteMBR(disktest.MBREntry{Type: 0x0f, StartLBA: 2048, Sectors: 20000})
	img.WriteExtendedChain(2048, disktest.Logical{Type: 0x83, Sectors: 100})

	ioErr := errors.New("device gone")

	for _, failAt := range []int64{0, 2048 * 512} {
		layout, err := disklayout.Create(&disktest.FailingReader{Image: img, FailFrom: failAt, FailTo: failAt + 512, Err: ioErr})
		require.ErrorIs(t, err, ioErr)
		assert.Nil(t, layout)
	}

	gptImg := disktest.New(16*MiB, 512)

	geo, err := gptImg.WriteGPT(nil)
	require.NoError(t, err)

	entriesOffset := int64(geo.PrimaryEntriesLBA * 512)

	layout, err := disklayout.Create(&disktest.FailingReader{Image: gptImg, FailFrom: entriesOffset, FailTo: entriesOffset + 512, Err: ioErr})
	require.ErrorIs(t, err, ioErr)
	assert.Nil(t, layout)
}

func TestStateStrings(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		state    disklayout.State
		expected string
		terminal bool
	}{
		{disklayout.StateUnread, "Unread", false},
		{disklayout.StateProtectiveSectorRead, "ProtectiveSectorRead", false},
		{disklayout.StateGPTCandidate, "GPTCandidate", false},
		{disklayout.StateMBRCandidate, "MBRCandidate", false},
		{disklayout.StateRaw, "Raw", true},
		{disklayout.StateValid, "Valid", true},
		{disklayout.StateCorrupt, "Corrupt", true},
	} {
		t.Run(test.expected, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, test.expected, test.state.String())
			assert.Equal(t, test.terminal, test.state.Terminal())

			text, err := test.state.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, test.expected, string(text))
		})
	}

	for style, expected := range map[disklayout.Style]string{
		disklayout.StyleRaw: "Raw",
		disklayout.StyleMBR: "MBR",
		disklayout.StyleGPT: "GPT",
	} {
		assert.Equal(t, expected, style.String())
	}
}
