// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package parttype

import "github.com/google/uuid"

// Well-known GPT partition type GUIDs.
var (
	EFISystem          = uuid.MustParse("C12A7328-F81F-11D2-BA4B-00A0C93EC93B")
	BIOSBoot           = uuid.MustParse("21686148-6449-6E6F-744E-656564454649")
	MicrosoftReserved  = uuid.MustParse("E3C9E316-0B5C-4DB8-817D-F92DF00215AE")
	MicrosoftBasicData = uuid.MustParse("EBD0A0A2-B9E5-4433-87C0-68B6B72699C7")
	LinuxFilesystem    = uuid.MustParse("0FC63DAF-8483-4772-8E79-3D69D8477DE4")
	LinuxSwap          = uuid.MustParse("0657FD6D-A4AB-43C4-84E5-0933C84B4F4F")
	LinuxLVM           = uuid.MustParse("E6D6D379-F507-44C2-A23C-238F2A3DF928")
)

var gptTypes = map[uuid.UUID]Descriptor{
	EFISystem:          {"EFI System", "EFI system partition"},
	BIOSBoot:           {"BIOS boot", "BIOS boot partition (GRUB core image)"},
	MicrosoftReserved:  {"Microsoft reserved", "Microsoft reserved partition (MSR)"},
	MicrosoftBasicData: {"Microsoft basic data", "basic data partition (FAT, NTFS, exFAT)"},
	LinuxFilesystem:    {"Linux filesystem", "Linux filesystem data"},
	LinuxSwap:          {"Linux swap", "Linux swap space"},
	LinuxLVM:           {"Linux LVM", "Linux logical volume manager"},

	uuid.MustParse("024DEE41-33E7-11D3-9D69-0008C781F39F"): {"MBR partition scheme", "legacy MBR partition scheme"},
	uuid.MustParse("D3BFE2DE-3DAF-11DF-BA40-E3A556D89593"): {"Intel Fast Flash", "Intel Fast Flash (iFFS) partition"},
	uuid.MustParse("F4019732-066E-4E12-8273-346C5641494F"): {"Sony boot partition", "Sony boot partition"},
	uuid.MustParse("BFBFAFE7-A34F-448A-9A5B-6213EB736C22"): {"Lenovo boot partition", "Lenovo boot partition"},
	uuid.MustParse("5808C8AA-7E8F-42E0-85D2-E1E90434CFB3"): {"Microsoft LDM metadata", "logical disk manager metadata"},
	uuid.MustParse("AF9B60A0-1431-4F62-BC68-3311714A69AD"): {"Microsoft LDM data", "logical disk manager data"},
	uuid.MustParse("DE94BBA4-06D1-4D40-A16A-BFD50179D6AC"): {"Windows recovery environment", "Windows recovery environment"},
	uuid.MustParse("37AFFC90-EF7D-4E96-91C3-2D7AE055B174"): {"IBM GPFS", "IBM General Parallel File System"},
	uuid.MustParse("E75CAF8F-F680-4CEE-AFA3-B001E56EFC2D"): {"Microsoft Storage Spaces", "Storage Spaces partition"},
	uuid.MustParse("75894C1E-3AEB-11D3-B7C1-7B03A0000000"): {"HP-UX data", "HP-UX data partition"},
	uuid.MustParse("E2A1E728-32E3-11D6-A682-7B03A0000000"): {"HP-UX service", "HP-UX service partition"},
	uuid.MustParse("A19D880F-05FC-4D3B-A006-743F0F84911E"): {"Linux RAID", "Linux software RAID"},
	uuid.MustParse("933AC7E1-2EB4-4F13-B844-0E14E2AEF915"): {"Linux home", "Linux /home partition"},
	uuid.MustParse("3B8F8425-20E0-4F3B-907F-1A25A76F98E8"): {"Linux server data", "Linux /srv partition"},
	uuid.MustParse("7FFEC5C9-2D00-49B7-8941-3EA10A5586B7"): {"Linux dm-crypt", "plain dm-crypt partition"},
	uuid.MustParse("CA7D7CCB-63ED-4C53-861C-1742536059CC"): {"Linux LUKS", "LUKS encrypted partition"},
	uuid.MustParse("8DA63339-0007-60C0-C436-083AC8230908"): {"Linux reserved", "Linux reserved partition"},
	uuid.MustParse("BC13C2FF-59E6-4262-A352-B275FD6F7172"): {"Linux extended boot", "extended boot loader partition"},
	uuid.MustParse("4D21B016-B534-45C2-A9FB-5C16E091FD2D"): {"Linux variable data", "Linux /var partition"},
	uuid.MustParse("7EC6F557-3BC5-4ACA-B293-16EF5DF639D1"): {"Linux temporary data", "Linux /var/tmp partition"},
	uuid.MustParse("44479540-F297-41B2-9AF7-D131D5F0458A"): {"Linux root (x86)", "Linux root partition for x86"},
	uuid.MustParse("4F68BCE3-E8CD-4DB1-96E7-FBCAF984B709"): {"Linux root (x86-64)", "Linux root partition for x86-64"},
	uuid.MustParse("69DAD710-2CE4-4E3C-B16C-21A1D49ABED3"): {"Linux root (ARM)", "Linux root partition for 32-bit ARM"},
	uuid.MustParse("B921B045-1DF0-41C3-AF44-4C6F280D3FAE"): {"Linux root (ARM-64)", "Linux root partition for 64-bit ARM"},
	uuid.MustParse("72EC70A6-CF74-40E6-BD49-4BDA08E8F224"): {"Linux root (RISC-V-64)", "Linux root partition for 64-bit RISC-V"},
	uuid.MustParse("83BD6B9D-7F41-11DC-BE0B-001560B84F0F"): {"FreeBSD boot", "FreeBSD boot partition"},
	uuid.MustParse("516E7CB4-6ECF-11D6-8FF8-00022D09712B"): {"FreeBSD data", "FreeBSD disklabel partition"},
	uuid.MustParse("516E7CB5-6ECF-11D6-8FF8-00022D09712B"): {"FreeBSD swap", "FreeBSD swap partition"},
	uuid.MustParse("516E7CB6-6ECF-11D6-8FF8-00022D09712B"): {"FreeBSD UFS", "FreeBSD UFS partition"},
	uuid.MustParse("516E7CB8-6ECF-11D6-8FF8-00022D09712B"): {"FreeBSD Vinum", "FreeBSD Vinum volume manager"},
	uuid.MustParse("516E7CBA-6ECF-11D6-8FF8-00022D09712B"): {"FreeBSD ZFS", "FreeBSD ZFS partition"},
	uuid.MustParse("48465300-0000-11AA-AA11-00306543ECAC"): {"Apple HFS/HFS+", "Apple Hierarchical File System"},
	uuid.MustParse("7C3457EF-0000-11AA-AA11-00306543ECAC"): {"Apple APFS", "Apple APFS container"},
	uuid.MustParse("55465300-0000-11AA-AA11-00306543ECAC"): {"Apple UFS", "Apple UFS container"},
	uuid.MustParse("52414944-0000-11AA-AA11-00306543ECAC"): {"Apple RAID", "Apple RAID partition"},
	uuid.MustParse("52414944-5F4F-11AA-AA11-00306543ECAC"): {"Apple RAID offline", "Apple RAID partition, offline"},
	uuid.MustParse("426F6F74-0000-11AA-AA11-00306543ECAC"): {"Apple boot", "Apple boot (recovery HD) partition"},
	uuid.MustParse("4C616265-6C00-11AA-AA11-00306543ECAC"): {"Apple label", "Apple label"},
	uuid.MustParse("5265636F-7665-11AA-AA11-00306543ECAC"): {"Apple TV recovery", "Apple TV recovery partition"},
	uuid.MustParse("53746F72-6167-11AA-AA11-00306543ECAC"): {"Apple Core Storage", "Apple Core Storage container"},
	uuid.MustParse("6A898CC3-1DD2-11B2-99A6-080020736631"): {"Solaris /usr & Apple ZFS", "Solaris /usr or Apple ZFS"},
	uuid.MustParse("6A82CB45-1DD2-11B2-99A6-080020736631"): {"Solaris boot", "Solaris boot partition"},
	uuid.MustParse("6A85CF4D-1DD2-11B2-99A6-080020736631"): {"Solaris root", "Solaris root partition"},
	uuid.MustParse("6A87C46F-1DD2-11B2-99A6-080020736631"): {"Solaris swap", "Solaris swap partition"},
	uuid.MustParse("49F48D32-B10E-11DC-B99B-0019D1879648"): {"NetBSD swap", "NetBSD swap partition"},
	uuid.MustParse("49F48D5A-B10E-11DC-B99B-0019D1879648"): {"NetBSD FFS", "NetBSD FFS partition"},
	uuid.MustParse("49F48D82-B10E-11DC-B99B-0019D1879648"): {"NetBSD LFS", "NetBSD LFS partition"},
	uuid.MustParse("49F48DAA-B10E-11DC-B99B-0019D1879648"): {"NetBSD RAID", "NetBSD RAID partition"},
	uuid.MustParse("2DB519C4-B10F-11DC-B99B-0019D1879648"): {"NetBSD concatenated", "NetBSD concatenated partition"},
	uuid.MustParse("2DB519EC-B10F-11DC-B99B-0019D1879648"): {"NetBSD encrypted", "NetBSD encrypted partition"},
	uuid.MustParse("824CC7A0-36A8-11E3-890A-952519AD3F61"): {"OpenBSD data", "OpenBSD disklabel partition"},
	uuid.MustParse("FE3A2A5D-4F32-41A7-B725-ACCC3285A309"): {"ChromeOS kernel", "ChromeOS kernel partition"},
	uuid.MustParse("3CB8E202-3B7E-47DD-8A3C-7FF2A13CFCEC"): {"ChromeOS root fs", "ChromeOS root filesystem"},
	uuid.MustParse("2E0A753D-9E48-43B0-8337-B15192CB1B5E"): {"ChromeOS reserved", "ChromeOS reserved for future use"},
	uuid.MustParse("42465331-3BA3-10F1-802A-4861696B7521"): {"Haiku BFS", "Haiku BFS partition"},
	uuid.MustParse("AA31E02A-400F-11DB-9590-000C2911D1B8"): {"VMware VMFS", "VMware ESX VMFS"},
	uuid.MustParse("9D275380-40AD-11DB-BF97-000C2911D1B8"): {"VMware vmkcore", "VMware ESX vmkcore"},
	uuid.MustParse("4FBD7E29-9D25-41B8-AFD0-062C0CEFF05D"): {"Ceph OSD", "Ceph object storage daemon"},
	uuid.MustParse("45B0969E-9B03-4F30-B4C6-B4B80CEFF106"): {"Ceph journal", "Ceph write-ahead journal"},
}
