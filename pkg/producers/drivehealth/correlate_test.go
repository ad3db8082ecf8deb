// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package drivehealth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPrimary() RawRecord {
	return RawRecord{
		"DeviceId":          "0",
		"FriendlyName":      "Samsung SSD 870 EVO 1TB",
		"SerialNumber":      "S5Y1NG0N123456",
		"FirmwareVersion":   "SVT02B6Q",
		"UniqueId":          "eui.0025385B91500123",
		"UniqueIdFormat":    8,
		"BusType":           11,
		"MediaType":         4,
		"Size":              uint64(1000204886016),
		"LogicalSectorSize": uint64(512),
		"PhysicalLocation":  "Integrated : Adapter 0 : Port 0",
	}
}

func testSecondary() RawRecord {
	return RawRecord{
		"Index":            uint64(0),
		"Name":             `\\.\PHYSICALDRIVE0`,
		"Caption":          "Samsung SSD 870 EVO 1TB",
		"Model":            "Samsung SSD 870 EVO 1TB",
		"PNPDeviceID":      `SCSI\Disk&Ven_Samsung&Prod_SSD\4&123abc&0&000000`,
		"SerialNumber":     "S5Y1NG0N123456  ",
		"FirmwareRevision": "SVT02B6Q",
		"Size":             uint64(1000202273280),
		"BytesPerSector":   uint64(512),
	}
}

func TestCorrelateDriveIdentity(t *testing.T) {
	drive, matched, err := CorrelateDriveIdentity(testPrimary(), []RawRecord{testSecondary()})

	assert.NoError(t, err)
	assert.NotNil(t, matched)
	assert.Equal(t, "0", drive.DeviceIndex)
	assert.Equal(t, "Samsung SSD 870 EVO 1TB", drive.Model)
	assert.Equal(t, "S5Y1NG0N123456", drive.SerialNumber)
	assert.Equal(t, "SVT02B6Q", drive.FirmwareVersion)
	assert.Equal(t, "eui.0025385B91500123", drive.UniqueID)
	assert.Equal(t, uint16(8), drive.UniqueIDFormat)
	assert.Equal(t, BusSATA, drive.Bus)
	assert.Equal(t, MediaSSD, drive.Media)
	assert.Equal(t, uint64(1000204886016), drive.Size)
	assert.Equal(t, uint64(512), drive.BytesPerSector)
	assert.Equal(t, `\\.\PHYSICALDRIVE0`, drive.DeviceName)
	assert.Equal(t, `SCSI\Disk&Ven_Samsung&Prod_SSD\4&123abc&0&000000`, drive.PNPDeviceID)
	assert.Nil(t, drive.FailurePredicted)
}

func TestCorrelateMissingKey(t *testing.T) {
	primary := testPrimary()
	delete(primary, "DeviceId")

	_, _, err := CorrelateDriveIdentity(primary, []RawRecord{testSecondary()})
	assert.True(t, IsKind(err, ErrIdentityKeyMissing))

	primary = testPrimary()
	primary["DeviceId"] = ""
	_, _, err = CorrelateDriveIdentity(primary, []RawRecord{testSecondary()})
	assert.True(t, IsKind(err, ErrIdentityKeyMissing))
}

func TestCorrelateNoMatchAndMultipleMatchesSameKind(t *testing.T) {
	// zero matches
	_, _, errNone := CorrelateDriveIdentity(testPrimary(), nil)
	assert.True(t, IsKind(errNone, ErrAmbiguousOrMissingMatch))

	// two matches for the same index: the system never guesses among
	// candidates, so this is the same error as no match at all
	_, _, errMany := CorrelateDriveIdentity(testPrimary(), []RawRecord{testSecondary(), testSecondary()})
	assert.True(t, IsKind(errMany, ErrAmbiguousOrMissingMatch))
}

func TestCorrelateSkipsUnrelatedIndexes(t *testing.T) {
	other := testSecondary()
	other["Index"] = uint64(3)

	drive, _, err := CorrelateDriveIdentity(testPrimary(), []RawRecord{other, testSecondary()})
	assert.NoError(t, err)
	assert.Equal(t, "0", drive.DeviceIndex)
}

func TestCorrelateFieldParseFailureCarriesPartialIdentity(t *testing.T) {
	primary := testPrimary()
	primary["Size"] = "not-a-number"

	_, _, err := CorrelateDriveIdentity(primary, []RawRecord{testSecondary()})

	assert.True(t, IsKind(err, ErrFieldParseFailure))
	ce := err.(*CorrelationError)
	if assert.NotNil(t, ce.Drive) {
		// fields assembled before the failure stay available for diagnostics
		assert.Equal(t, "0", ce.Drive.DeviceIndex)
		assert.Equal(t, "S5Y1NG0N123456", ce.Drive.SerialNumber)
	}
}

func TestSmartInstanceKey(t *testing.T) {
	assert.Equal(t, `SCSI\DISK&VEN_X\4&AB&0&00_0`, SmartInstanceKey(`scsi\Disk&Ven_X\4&ab&0&00`))
}

func TestAttachSmartData(t *testing.T) {
	drive := &DriveIdentity{DeviceIndex: "0", PNPDeviceID: `SCSI\DISK\0`}
	key := SmartInstanceKey(drive.PNPDeviceID)

	readings := buildReadings(AttributeReading{ID: 5, Current: 100, Worst: 100, Raw: 7})
	thresholds := buildThresholds([2]byte{5, 36})

	set := &FailurePredictionSet{
		status:     map[string]RawRecord{key: {"InstanceName": key, "PredictFailure": true}},
		data:       map[string]RawRecord{key: {"InstanceName": key, "VendorSpecific": readings}},
		thresholds: map[string]RawRecord{key: {"InstanceName": key, "VendorSpecific": thresholds}},
	}

	err := AttachSmartData(drive, set)

	assert.NoError(t, err)
	if assert.NotNil(t, drive.FailurePredicted) {
		assert.True(t, *drive.FailurePredicted)
	}
	assert.Len(t, drive.Attributes, 1)
	assert.Equal(t, uint8(5), drive.Attributes[0].ID)
	assert.Equal(t, int32(7), drive.Attributes[0].Raw)
	if assert.NotNil(t, drive.Attributes[0].Threshold) {
		assert.Equal(t, uint8(36), *drive.Attributes[0].Threshold)
	}
}

func TestAttachSmartDataMissingSubRecord(t *testing.T) {
	drive := &DriveIdentity{DeviceIndex: "0", PNPDeviceID: `SCSI\DISK\0`}
	key := SmartInstanceKey(drive.PNPDeviceID)

	// thresholds row absent: partial SMART data is never surfaced as success
	set := &FailurePredictionSet{
		status:     map[string]RawRecord{key: {"InstanceName": key, "PredictFailure": false}},
		data:       map[string]RawRecord{key: {"InstanceName": key, "VendorSpecific": buildReadings()}},
		thresholds: map[string]RawRecord{},
	}

	err := AttachSmartData(drive, set)

	assert.True(t, IsKind(err, ErrSmartDataUnavailable))
	assert.Nil(t, drive.FailurePredicted)
	assert.Empty(t, drive.Attributes)
}
