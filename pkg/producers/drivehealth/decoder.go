// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package drivehealth

import (
	"encoding/binary"
	"sort"
)

// Vendor attribute tables are 12-byte records behind a 2-byte header. The
// header is sometimes a count and sometimes not, so it is discarded rather
// than interpreted.
const (
	attrTableHeaderLen = 2
	attrEntryLen       = 12
)

// DecodeAttributes turns the raw readings and thresholds buffers from the
// failure-prediction sources into a sorted attribute table. The buffers are
// vendor-specific blobs with no reliable length prefix or terminator, so the
// decoder never errors: it keeps whatever decoded cleanly and truncates when
// it detects it has run past valid data. A buffer too short to hold a single
// record yields an empty table.
//
// Readings layout per record: byte 0 id, byte 2 flags, byte 3 current value,
// byte 4 worst value, bytes 5-8 raw value (little-endian int32). Bytes 9-11
// are vendor-specific and discarded. Decoding stops at id 0 (end-of-table
// sentinel) or at the first repeated id, which signals the stride has walked
// into padding or garbage.
//
// Thresholds layout per record: byte 0 id, byte 1 threshold. The threshold
// buffer has no defined sentinel, so it is scanned to exhaustion; entries
// with no matching reading id are dropped, duplicate ids overwrite in scan
// order.
func DecodeAttributes(readings, thresholds []byte) []AttributeReading {
	var out []AttributeReading
	seen := make(map[uint8]int)

	buf := readings
	if len(buf) < attrTableHeaderLen {
		buf = nil
	} else {
		buf = buf[attrTableHeaderLen:]
	}
	for len(buf) >= attrEntryLen {
		id := buf[0]
		if id == 0 {
			break
		}
		if _, dup := seen[id]; dup {
			break
		}
		seen[id] = len(out)
		out = append(out, AttributeReading{
			ID:      id,
			Flags:   buf[2],
			Current: buf[3],
			Worst:   buf[4],
			Raw:     int32(binary.LittleEndian.Uint32(buf[5:9])),
		})
		buf = buf[attrEntryLen:]
	}

	buf = thresholds
	if len(buf) < attrTableHeaderLen {
		buf = nil
	} else {
		buf = buf[attrTableHeaderLen:]
	}
	for len(buf) >= attrEntryLen {
		if i, ok := seen[buf[0]]; ok {
			threshold := buf[1]
			out[i].Threshold = &threshold
		}
		buf = buf[attrEntryLen:]
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
