// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package drivehealth

import "fmt"

// Assembler orchestrates one snapshot: enumerate both identity sources,
// correlate every physical-disk record against the disk-drive records,
// validate the correlated pairs, and optionally attach SMART data from the
// failure-prediction sources. It holds no state beyond the enumerator, so
// concurrent callers on independent enumerators are fine.
type Assembler struct {
	enum Enumerator
}

func NewAssembler(enum Enumerator) *Assembler {
	return &Assembler{enum: enum}
}

// CollectDrives builds the drive list for one snapshot. The batch is
// all-or-nothing: the first correlation or validation failure aborts the
// whole call, there is no partial-success list.
func (a *Assembler) CollectDrives(includeSmart bool) ([]DriveIdentity, error) {
	primaries, err := a.enum.Query(ClassPhysicalDisk)
	if err != nil {
		return nil, fmt.Errorf("error enumerating physical disks: %w", err)
	}
	secondaries, err := a.enum.Query(ClassDiskDrive)
	if err != nil {
		return nil, fmt.Errorf("error enumerating disk drives: %w", err)
	}

	drives := make([]DriveIdentity, 0, len(primaries))
	for _, primary := range primaries {
		drive, matched, err := CorrelateDriveIdentity(primary, secondaries)
		if err != nil {
			return nil, err
		}
		if err := ValidateConsistency(drive, matched); err != nil {
			return nil, err
		}
		drives = append(drives, *drive)
	}

	if includeSmart {
		set, err := a.QueryFailurePrediction()
		if err != nil {
			return nil, err
		}
		for i := range drives {
			if err := AttachSmartData(&drives[i], set); err != nil {
				return nil, err
			}
		}
	}

	return drives, nil
}

// QueryFailurePrediction enumerates the three failure-prediction sources
// once and indexes their rows by instance name. Rows without an instance
// name are skipped: they cannot be correlated with any drive.
func (a *Assembler) QueryFailurePrediction() (*FailurePredictionSet, error) {
	set := &FailurePredictionSet{}
	for _, q := range []struct {
		class string
		dest  *map[string]RawRecord
	}{
		{ClassFailurePredictStatus, &set.status},
		{ClassFailurePredictData, &set.data},
		{ClassFailurePredictThresholds, &set.thresholds},
	} {
		rows, err := a.enum.Query(q.class)
		if err != nil {
			return nil, fmt.Errorf("error enumerating %s: %w", q.class, err)
		}
		indexed := make(map[string]RawRecord, len(rows))
		for _, row := range rows {
			instance, err := row.GetString(fieldInstanceName)
			if err != nil {
				continue
			}
			indexed[instance] = row
		}
		*q.dest = indexed
	}
	return set, nil
}
