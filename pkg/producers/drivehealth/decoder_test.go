// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package drivehealth

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildReadings builds a readings buffer: 2 header bytes followed by one
// 12-byte record per entry.
func buildReadings(entries ...AttributeReading) []byte {
	buf := []byte{0x01, 0x00}
	for _, e := range entries {
		rec := make([]byte, 12)
		rec[0] = e.ID
		rec[2] = e.Flags
		rec[3] = e.Current
		rec[4] = e.Worst
		binary.LittleEndian.PutUint32(rec[5:9], uint32(e.Raw))
		buf = append(buf, rec...)
	}
	return buf
}

// buildThresholds builds a thresholds buffer: 2 header bytes followed by one
// 12-byte record per id/threshold pair.
func buildThresholds(pairs ...[2]byte) []byte {
	buf := []byte{0x01, 0x00}
	for _, p := range pairs {
		rec := make([]byte, 12)
		rec[0] = p[0]
		rec[1] = p[1]
		buf = append(buf, rec...)
	}
	return buf
}

func TestDecodeAttributesPreservesFields(t *testing.T) {
	readings := buildReadings(
		AttributeReading{ID: 5, Flags: 0x33, Current: 100, Worst: 100, Raw: 0},
		AttributeReading{ID: 9, Flags: 0x32, Current: 98, Worst: 98, Raw: 12345},
		AttributeReading{ID: 194, Flags: 0x22, Current: 64, Worst: 45, Raw: 36},
	)

	attrs := DecodeAttributes(readings, nil)

	assert.Len(t, attrs, 3)
	assert.Equal(t, uint8(5), attrs[0].ID)
	assert.Equal(t, uint8(0x33), attrs[0].Flags)
	assert.Equal(t, uint8(100), attrs[0].Current)
	assert.Equal(t, uint8(100), attrs[0].Worst)
	assert.Equal(t, int32(0), attrs[0].Raw)
	assert.Equal(t, int32(12345), attrs[1].Raw)
	assert.Equal(t, int32(36), attrs[2].Raw)
	for _, a := range attrs {
		assert.Nil(t, a.Threshold)
	}
}

func TestDecodeAttributesSingleRecord(t *testing.T) {
	// 14 bytes: 2-byte header plus exactly one record.
	readings := buildReadings(AttributeReading{ID: 1, Flags: 0, Current: 10, Worst: 90, Raw: 80})
	assert.Len(t, readings, 14)

	attrs := DecodeAttributes(readings, nil)

	assert.Len(t, attrs, 1)
	assert.Equal(t, uint8(1), attrs[0].ID)
	assert.Equal(t, uint8(0), attrs[0].Flags)
	assert.Equal(t, uint8(10), attrs[0].Current)
	assert.Equal(t, uint8(90), attrs[0].Worst)
	assert.Equal(t, int32(80), attrs[0].Raw)
	assert.Nil(t, attrs[0].Threshold)
}

func TestDecodeAttributesStopsAtRepeatedID(t *testing.T) {
	// ids [5, 9, 5, 12]: the second 5 means the stride has walked into
	// garbage, so only the first two records survive.
	readings := buildReadings(
		AttributeReading{ID: 5, Current: 100, Worst: 100},
		AttributeReading{ID: 9, Current: 99, Worst: 99},
		AttributeReading{ID: 5, Current: 1, Worst: 1},
		AttributeReading{ID: 12, Current: 2, Worst: 2},
	)

	attrs := DecodeAttributes(readings, nil)

	assert.Len(t, attrs, 2)
	assert.Equal(t, uint8(5), attrs[0].ID)
	assert.Equal(t, uint8(9), attrs[1].ID)
}

func TestDecodeAttributesStopsAtSentinel(t *testing.T) {
	// ids [7, 0, 3]: id 0 ends the table, the 3 behind it is never read.
	readings := buildReadings(
		AttributeReading{ID: 7, Current: 80, Worst: 70},
		AttributeReading{ID: 0},
		AttributeReading{ID: 3, Current: 90, Worst: 85},
	)

	attrs := DecodeAttributes(readings, nil)

	assert.Len(t, attrs, 1)
	assert.Equal(t, uint8(7), attrs[0].ID)
}

func TestDecodeAttributesThresholdMerge(t *testing.T) {
	readings := buildReadings(
		AttributeReading{ID: 5, Current: 100, Worst: 100},
		AttributeReading{ID: 9, Current: 99, Worst: 99},
	)
	// id 200 has no matching reading and is dropped; id 5 appears twice and
	// the last-seen value wins.
	thresholds := buildThresholds(
		[2]byte{5, 36},
		[2]byte{200, 50},
		[2]byte{9, 0},
		[2]byte{5, 10},
	)

	attrs := DecodeAttributes(readings, thresholds)

	assert.Len(t, attrs, 2)
	if assert.NotNil(t, attrs[0].Threshold) {
		assert.Equal(t, uint8(10), *attrs[0].Threshold)
	}
	if assert.NotNil(t, attrs[1].Threshold) {
		assert.Equal(t, uint8(0), *attrs[1].Threshold)
	}
}

func TestDecodeAttributesSortsByID(t *testing.T) {
	readings := buildReadings(
		AttributeReading{ID: 197},
		AttributeReading{ID: 1},
		AttributeReading{ID: 9},
		AttributeReading{ID: 5},
	)

	attrs := DecodeAttributes(readings, nil)

	assert.Len(t, attrs, 4)
	assert.Equal(t, uint8(1), attrs[0].ID)
	assert.Equal(t, uint8(5), attrs[1].ID)
	assert.Equal(t, uint8(9), attrs[2].ID)
	assert.Equal(t, uint8(197), attrs[3].ID)
}

func TestDecodeAttributesShortBuffers(t *testing.T) {
	assert.Empty(t, DecodeAttributes(nil, nil))
	assert.Empty(t, DecodeAttributes([]byte{0x01}, nil))
	assert.Empty(t, DecodeAttributes([]byte{0x01, 0x00}, nil))
	// header plus 11 bytes: not enough for a full record
	assert.Empty(t, DecodeAttributes(make([]byte, 13), []byte{0x00}))
}

func TestDecodeAttributesTruncatedTrailingRecord(t *testing.T) {
	readings := buildReadings(AttributeReading{ID: 4, Current: 100, Worst: 100, Raw: 512})
	// a trailing partial record is ignored
	readings = append(readings, 9, 0x32, 0x00)

	attrs := DecodeAttributes(readings, nil)

	assert.Len(t, attrs, 1)
	assert.Equal(t, uint8(4), attrs[0].ID)
}

func TestAttributeName(t *testing.T) {
	assert.Equal(t, "Reallocated_Sector_Ct", AttributeName(5))
	assert.Equal(t, "Temperature_Celsius", AttributeName(194))
	assert.Equal(t, "?", AttributeName(6))
	assert.Equal(t, "?", AttributeName(255))
}
