// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package drivehealth

import "strings"

// ValidateConsistency re-derives the redundant fields from the matched
// disk-drive record and checks them against the identity fields set from the
// physical-disk source. A single mismatch fails the whole validation: a
// disagreement between the sources means the record as a whole cannot be
// trusted, so there is no per-field reporting.
//
// Two comparisons are deliberately loose. The disk-drive serial is trimmed
// before comparing because vendors pad it with whitespace, and the disk-drive
// size may be slightly smaller than the physical-disk size because of
// reserved/spare area, so only primary >= secondary is required.
func ValidateConsistency(drive *DriveIdentity, secondary RawRecord) error {
	name, err := secondary.GetString(fieldName)
	if err != nil {
		return parseFailure(drive, err)
	}
	if name != drive.DeviceName {
		return inconsistency(drive, "device name", name, drive.DeviceName)
	}

	model, err := secondary.GetString(fieldModel)
	if err != nil {
		return parseFailure(drive, err)
	}
	if model != drive.Model {
		return inconsistency(drive, "model", model, drive.Model)
	}

	caption, err := secondary.GetString(fieldCaption)
	if err != nil {
		return parseFailure(drive, err)
	}
	if caption != drive.Model {
		return inconsistency(drive, "caption", caption, drive.Model)
	}

	serial, err := secondary.GetString(fieldDriveSerial)
	if err != nil {
		return parseFailure(drive, err)
	}
	if strings.TrimSpace(serial) != drive.SerialNumber {
		return inconsistency(drive, "serial number", strings.TrimSpace(serial), drive.SerialNumber)
	}

	firmware, err := secondary.GetString(fieldFirmwareRevision)
	if err != nil {
		return parseFailure(drive, err)
	}
	if firmware != drive.FirmwareVersion {
		return inconsistency(drive, "firmware revision", firmware, drive.FirmwareVersion)
	}

	size, err := secondary.GetUint64(fieldDriveSize)
	if err != nil {
		return parseFailure(drive, err)
	}
	if size > drive.Size {
		return newCorrelationError(ErrDataInconsistency, drive, "disk-drive size %d exceeds physical-disk size %d", size, drive.Size)
	}

	sectorSize, err := secondary.GetUint64(fieldBytesPerSector)
	if err != nil {
		return parseFailure(drive, err)
	}
	if sectorSize != drive.BytesPerSector {
		return newCorrelationError(ErrDataInconsistency, drive, "bytes per sector %d does not match %d", sectorSize, drive.BytesPerSector)
	}

	return nil
}

func inconsistency(drive *DriveIdentity, field, secondaryValue, primaryValue string) *CorrelationError {
	return newCorrelationError(ErrDataInconsistency, drive, "%s mismatch: disk-drive reports %q, physical-disk reports %q", field, secondaryValue, primaryValue)
}
