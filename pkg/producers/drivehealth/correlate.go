// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package drivehealth

import (
	"strconv"
	"strings"
)

// Field names fixed by the enumeration sources' schemas.
const (
	// physical-disk source (primary)
	fieldDeviceID         = "DeviceId"
	fieldFriendlyName     = "FriendlyName"
	fieldSerialNumber     = "SerialNumber"
	fieldFirmwareVersion  = "FirmwareVersion"
	fieldUniqueID         = "UniqueId"
	fieldUniqueIDFormat   = "UniqueIdFormat"
	fieldBusType          = "BusType"
	fieldMediaType        = "MediaType"
	fieldSize             = "Size"
	fieldLogicalSector    = "LogicalSectorSize"
	fieldPhysicalLocation = "PhysicalLocation"

	// disk-drive source (secondary)
	fieldIndex            = "Index"
	fieldName             = "Name"
	fieldCaption          = "Caption"
	fieldModel            = "Model"
	fieldPNPDeviceID      = "PNPDeviceID"
	fieldDriveSerial      = "SerialNumber"
	fieldFirmwareRevision = "FirmwareRevision"
	fieldDriveSize        = "Size"
	fieldBytesPerSector   = "BytesPerSector"

	// failure-prediction sources
	fieldInstanceName   = "InstanceName"
	fieldPredictFailure = "PredictFailure"
	fieldVendorSpecific = "VendorSpecific"
)

// smartInstanceSuffix is appended to the uppercased PnP id to form the
// instance name the failure-prediction sources key their rows by.
const smartInstanceSuffix = "_0"

// CorrelateDriveIdentity joins one primary (physical-disk) record against the
// secondary (disk-drive) records describing the same physical device. The
// primary's device index is the canonical key; exactly one secondary record
// must carry the same index. Zero and multiple matches are treated
// identically: the system never guesses among candidates.
//
// On a unique match every identity field is cast out of its source record.
// The matched secondary record is returned alongside the identity so the
// caller can run the consistency check without searching again.
func CorrelateDriveIdentity(primary RawRecord, secondary []RawRecord) (*DriveIdentity, RawRecord, error) {
	index, err := primary.GetString(fieldDeviceID)
	if err != nil || index == "" {
		return nil, nil, newCorrelationError(ErrIdentityKeyMissing, nil, "physical-disk record has no device index")
	}

	drive := &DriveIdentity{DeviceIndex: index}

	var match RawRecord
	matches := 0
	for _, rec := range secondary {
		recIndex, err := rec.GetUint64(fieldIndex)
		if err != nil {
			continue
		}
		if strconv.FormatUint(recIndex, 10) == index {
			match = rec
			matches++
		}
	}
	if matches != 1 {
		return nil, nil, newCorrelationError(ErrAmbiguousOrMissingMatch, drive, "%d disk-drive records match index %s, need exactly 1", matches, index)
	}

	if drive.Model, err = primary.GetString(fieldFriendlyName); err != nil {
		return nil, nil, parseFailure(drive, err)
	}
	if drive.SerialNumber, err = primary.GetString(fieldSerialNumber); err != nil {
		return nil, nil, parseFailure(drive, err)
	}
	if drive.FirmwareVersion, err = primary.GetString(fieldFirmwareVersion); err != nil {
		return nil, nil, parseFailure(drive, err)
	}
	if drive.UniqueID, err = primary.GetString(fieldUniqueID); err != nil {
		return nil, nil, parseFailure(drive, err)
	}
	if drive.UniqueIDFormat, err = primary.GetUint16(fieldUniqueIDFormat); err != nil {
		return nil, nil, parseFailure(drive, err)
	}
	bus, err := primary.GetUint16(fieldBusType)
	if err != nil {
		return nil, nil, parseFailure(drive, err)
	}
	drive.Bus = BusType(bus)
	media, err := primary.GetUint16(fieldMediaType)
	if err != nil {
		return nil, nil, parseFailure(drive, err)
	}
	drive.Media = MediaType(media)
	if drive.Size, err = primary.GetUint64(fieldSize); err != nil {
		return nil, nil, parseFailure(drive, err)
	}
	if drive.BytesPerSector, err = primary.GetUint64(fieldLogicalSector); err != nil {
		return nil, nil, parseFailure(drive, err)
	}
	if drive.PhysicalLocation, err = primary.GetString(fieldPhysicalLocation); err != nil {
		return nil, nil, parseFailure(drive, err)
	}

	if drive.PNPDeviceID, err = match.GetString(fieldPNPDeviceID); err != nil {
		return nil, nil, parseFailure(drive, err)
	}
	if drive.DeviceName, err = match.GetString(fieldName); err != nil {
		return nil, nil, parseFailure(drive, err)
	}

	return drive, match, nil
}

func parseFailure(drive *DriveIdentity, err error) *CorrelationError {
	return newCorrelationError(ErrFieldParseFailure, drive, "%v", err)
}

// SmartInstanceKey derives the failure-prediction instance name for a drive:
// the uppercased plug-and-play id with the fixed instance suffix.
func SmartInstanceKey(pnpDeviceID string) string {
	return strings.ToUpper(pnpDeviceID) + smartInstanceSuffix
}

// FailurePredictionSet holds the rows of the three failure-prediction
// sources, keyed by instance name, for one enumeration pass.
type FailurePredictionSet struct {
	status     map[string]RawRecord
	data       map[string]RawRecord
	thresholds map[string]RawRecord
}

// AttachSmartData runs the second correlation mode for one drive: it looks
// up the drive's status, data, and threshold rows by the PnP-derived key,
// decodes the vendor attribute buffers, and fills the drive's SMART fields
// in place. All three rows must be present; partial SMART data is never
// surfaced as success.
func AttachSmartData(drive *DriveIdentity, set *FailurePredictionSet) error {
	key := SmartInstanceKey(drive.PNPDeviceID)

	status, ok := set.status[key]
	if !ok {
		return newCorrelationError(ErrSmartDataUnavailable, drive, "no failure-prediction status for instance %s", key)
	}
	data, ok := set.data[key]
	if !ok {
		return newCorrelationError(ErrSmartDataUnavailable, drive, "no failure-prediction data for instance %s", key)
	}
	thresholds, ok := set.thresholds[key]
	if !ok {
		return newCorrelationError(ErrSmartDataUnavailable, drive, "no failure-prediction thresholds for instance %s", key)
	}

	predicted, err := status.GetBool(fieldPredictFailure)
	if err != nil {
		return parseFailure(drive, err)
	}
	readings, err := data.GetBytes(fieldVendorSpecific)
	if err != nil {
		return parseFailure(drive, err)
	}
	thresholdBuf, err := thresholds.GetBytes(fieldVendorSpecific)
	if err != nil {
		return parseFailure(drive, err)
	}

	drive.FailurePredicted = &predicted
	drive.Attributes = DecodeAttributes(readings, thresholdBuf)
	return nil
}
