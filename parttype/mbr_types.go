// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package parttype

var mbrTypes = map[byte]Descriptor{
	0x00: {"Empty", "unused partition table slot"},
	0x01: {"FAT12", "FAT12 primary partition"},
	0x02: {"XENIX root", "XENIX root filesystem"},
	0x03: {"XENIX usr", "XENIX /usr filesystem"},
	0x04: {"FAT16 <32M", "FAT16 with fewer than 65536 sectors"},
	0x05: {"Extended", "extended partition (CHS addressing)"},
	0x06: {"FAT16", "FAT16B primary partition"},
	0x07: {"HPFS/NTFS/exFAT", "installable filesystem: NTFS, exFAT or HPFS"},
	0x08: {"AIX", "AIX boot partition"},
	0x09: {"AIX bootable", "AIX data partition"},
	0x0a: {"OS/2 Boot Manager", "OS/2 Boot Manager"},
	0x0b: {"W95 FAT32", "FAT32 with CHS addressing"},
	0x0c: {"W95 FAT32 (LBA)", "FAT32 with LBA addressing"},
	0x0e: {"W95 FAT16 (LBA)", "FAT16B with LBA addressing"},
	0x0f: {"W95 Ext'd (LBA)", "extended partition (LBA addressing)"},
	0x11: {"Hidden FAT12", "hidden FAT12 partition"},
	0x12: {"Compaq diagnostics", "vendor configuration or recovery partition"},
	0x14: {"Hidden FAT16 <32M", "hidden FAT16 with fewer than 65536 sectors"},
	0x16: {"Hidden FAT16", "hidden FAT16B partition"},
	0x17: {"Hidden HPFS/NTFS", "hidden NTFS, exFAT or HPFS partition"},
	0x1b: {"Hidden W95 FAT32", "hidden FAT32 with CHS addressing"},
	0x1c: {"Hidden W95 FAT32 (LBA)", "hidden FAT32 with LBA addressing"},
	0x1e: {"Hidden W95 FAT16 (LBA)", "hidden FAT16B with LBA addressing"},
	0x24: {"NEC DOS", "NEC MS-DOS 3.x"},
	0x27: {"Hidden NTFS WinRE", "Windows recovery environment"},
	0x39: {"Plan 9", "Plan 9 partition"},
	0x3c: {"PartitionMagic recovery", "PartitionMagic recovery partition"},
	0x42: {"SFS", "Windows dynamic disk (LDM) partition"},
	0x44: {"GoBack", "Norton GoBack partition"},
	0x4d: {"QNX4.x", "QNX4 primary partition"},
	0x4e: {"QNX4.x 2nd part", "QNX4 secondary partition"},
	0x4f: {"QNX4.x 3rd part", "QNX4 tertiary partition"},
	0x52: {"CP/M", "CP/M partition"},
	0x63: {"GNU HURD or SysV", "Unix System V or GNU Hurd"},
	0x64: {"Novell Netware 286", "Novell NetWare 286"},
	0x65: {"Novell Netware 386", "Novell NetWare 386"},
	0x80: {"Old Minix", "Minix 1.1 to 1.4a"},
	0x81: {"Minix / old Linux", "Minix 1.4b and later"},
	0x82: {"Linux swap / Solaris", "Linux swap space or Solaris x86"},
	0x83: {"Linux", "Linux native filesystem"},
	0x84: {"OS/2 hidden or Intel hibernation", "hibernation partition"},
	0x85: {"Linux extended", "Linux extended partition"},
	0x86: {"NTFS volume set", "legacy fault-tolerant FAT16 volume set"},
	0x87: {"NTFS volume set", "legacy fault-tolerant NTFS volume set"},
	0x88: {"Linux plaintext", "Linux plaintext partition table"},
	0x8e: {"Linux LVM", "Linux logical volume manager"},
	0x93: {"Amoeba", "Amoeba or hidden Linux"},
	0x9f: {"BSD/OS", "BSD/OS partition"},
	0xa0: {"IBM Thinkpad hibernation", "laptop hibernation partition"},
	0xa5: {"FreeBSD", "FreeBSD slice"},
	0xa6: {"OpenBSD", "OpenBSD slice"},
	0xa8: {"Darwin UFS", "Apple Darwin UFS"},
	0xa9: {"NetBSD", "NetBSD slice"},
	0xab: {"Darwin boot", "Apple Darwin boot partition"},
	0xaf: {"HFS / HFS+", "Apple HFS or HFS+"},
	0xb7: {"BSDI fs", "BSDI native filesystem"},
	0xb8: {"BSDI swap", "BSDI swap"},
	0xbe: {"Solaris boot", "Solaris boot partition"},
	0xbf: {"Solaris", "Solaris x86 partition"},
	0xc1: {"DRDOS/sec (FAT-12)", "DR-DOS secured FAT12"},
	0xc4: {"DRDOS/sec (FAT-16 < 32M)", "DR-DOS secured FAT16"},
	0xc6: {"DRDOS/sec (FAT-16)", "DR-DOS secured FAT16B"},
	0xda: {"Non-FS data", "raw data, no filesystem"},
	0xde: {"Dell Utility", "Dell diagnostics partition"},
	0xeb: {"BeOS fs", "BeOS BFS"},
	0xee: {"GPT", "GPT protective MBR entry"},
	0xef: {"EFI (FAT-12/16/32)", "EFI system partition"},
	0xf0: {"Linux/PA-RISC boot", "Linux PA-RISC boot loader"},
	0xfb: {"VMware VMFS", "VMware ESX VMFS"},
	0xfc: {"VMware VMKCORE", "VMware ESX vmkcore"},
	0xfd: {"Linux raid autodetect", "Linux software RAID with autodetect"},
	0xfe: {"LANstep", "LANstep or IBM PS/2 IML"},
	0xff: {"BBT", "Xenix bad block table"},
}
