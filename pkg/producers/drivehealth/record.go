// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package drivehealth

import "fmt"

// RawRecord is one row from an enumeration source: a read-only property bag
// mapping field names to dynamically typed values. The enumeration
// collaborator owns the record; this package never mutates it. Field access
// goes through the typed accessors below so every cast is explicit and
// fallible per field.
type RawRecord map[string]interface{}

// GetString returns the named field as a string.
func (r RawRecord) GetString(key string) (string, error) {
	v, ok := r[key]
	if !ok {
		return "", fmt.Errorf("field %q missing", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected string, got %T", key, v)
	}
	return s, nil
}

// GetUint64 returns the named field as a uint64. Enumeration sources deliver
// numbers in whatever width their transport produced (JSON decodes to
// float64, native queries hand back sized integers), so all of them are
// accepted as long as the value fits.
func (r RawRecord) GetUint64(key string) (uint64, error) {
	v, ok := r[key]
	if !ok {
		return 0, fmt.Errorf("field %q missing", key)
	}
	switch n := v.(type) {
	case uint64:
		return n, nil
	case uint32:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case uint:
		return uint64(n), nil
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("field %q: negative value %d", key, n)
		}
		return uint64(n), nil
	case int:
		if n < 0 {
			return 0, fmt.Errorf("field %q: negative value %d", key, n)
		}
		return uint64(n), nil
	case float64:
		if n < 0 || n != float64(uint64(n)) {
			return 0, fmt.Errorf("field %q: value %v is not an unsigned integer", key, n)
		}
		return uint64(n), nil
	default:
		return 0, fmt.Errorf("field %q: expected unsigned integer, got %T", key, v)
	}
}

// GetUint16 returns the named field as a uint16.
func (r RawRecord) GetUint16(key string) (uint16, error) {
	n, err := r.GetUint64(key)
	if err != nil {
		return 0, err
	}
	if n > 0xffff {
		return 0, fmt.Errorf("field %q: value %d overflows uint16", key, n)
	}
	return uint16(n), nil
}

// GetBool returns the named field as a bool.
func (r RawRecord) GetBool(key string) (bool, error) {
	v, ok := r[key]
	if !ok {
		return false, fmt.Errorf("field %q missing", key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("field %q: expected bool, got %T", key, v)
	}
	return b, nil
}

// GetBytes returns the named field as a byte buffer. Native queries deliver
// []byte directly; JSON-decoded rows carry the buffer as an array of
// numbers, which is converted element by element.
func (r RawRecord) GetBytes(key string) ([]byte, error) {
	v, ok := r[key]
	if !ok {
		return nil, fmt.Errorf("field %q missing", key)
	}
	switch b := v.(type) {
	case []byte:
		return b, nil
	case []interface{}:
		out := make([]byte, len(b))
		for i, e := range b {
			n, ok := e.(float64)
			if !ok || n < 0 || n > 255 || n != float64(byte(n)) {
				return nil, fmt.Errorf("field %q: element %d is not a byte value", key, i)
			}
			out[i] = byte(n)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("field %q: expected byte buffer, got %T", key, v)
	}
}
