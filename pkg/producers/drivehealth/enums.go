// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package drivehealth

// BusType is the storage bus the enumeration source reports for a drive.
// The numeric codes are fixed by the source's schema.
type BusType uint16

const (
	BusUnknown       BusType = 0
	BusSCSI          BusType = 1
	BusATAPI         BusType = 2
	BusATA           BusType = 3
	BusFireWire      BusType = 4
	BusSSA           BusType = 5
	BusFibreChannel  BusType = 6
	BusUSB           BusType = 7
	BusRAID          BusType = 8
	BusISCSI         BusType = 9
	BusSAS           BusType = 10
	BusSATA          BusType = 11
	BusSD            BusType = 12
	BusMMC           BusType = 13
	BusVirtual       BusType = 14
	BusFileBacked    BusType = 15
	BusStorageSpaces BusType = 16
	BusNVMe          BusType = 17
)

var busTypeNames = map[BusType]string{
	BusUnknown:       "unknown",
	BusSCSI:          "scsi",
	BusATAPI:         "atapi",
	BusATA:           "ata",
	BusFireWire:      "firewire",
	BusSSA:           "ssa",
	BusFibreChannel:  "fibre_channel",
	BusUSB:           "usb",
	BusRAID:          "raid",
	BusISCSI:         "iscsi",
	BusSAS:           "sas",
	BusSATA:          "sata",
	BusSD:            "sd",
	BusMMC:           "mmc",
	BusVirtual:       "virtual",
	BusFileBacked:    "file_backed",
	BusStorageSpaces: "storage_spaces",
	BusNVMe:          "nvme",
}

func (b BusType) String() string {
	if name, ok := busTypeNames[b]; ok {
		return name
	}
	return "unknown"
}

// MediaType is the physical media kind the enumeration source reports.
type MediaType uint16

const (
	MediaUnspecified MediaType = 0
	MediaHDD         MediaType = 3
	MediaSSD         MediaType = 4
	MediaSCM         MediaType = 5
)

func (m MediaType) String() string {
	switch m {
	case MediaHDD:
		return "hdd"
	case MediaSSD:
		return "ssd"
	case MediaSCM:
		return "scm"
	default:
		return "unspecified"
	}
}
