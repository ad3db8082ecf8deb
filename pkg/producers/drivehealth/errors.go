// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package drivehealth

import "fmt"

// ErrorKind classifies a correlation failure. Every failure path in the
// correlator, validator, and SMART attach produces one of these; none are
// retried because the underlying cause is a data-shape problem, not a
// transient fault.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrIdentityKeyMissing
	ErrAmbiguousOrMissingMatch
	ErrFieldParseFailure
	ErrDataInconsistency
	ErrSmartDataUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case ErrIdentityKeyMissing:
		return "identity_key_missing"
	case ErrAmbiguousOrMissingMatch:
		return "ambiguous_or_missing_match"
	case ErrFieldParseFailure:
		return "field_parse_failure"
	case ErrDataInconsistency:
		return "data_inconsistency"
	case ErrSmartDataUnavailable:
		return "smart_data_unavailable"
	default:
		return "unknown"
	}
}

// CorrelationError carries the failure kind, a human-readable reason, and the
// partially built identity when one exists, so the caller can tell which
// drive broke the batch.
type CorrelationError struct {
	Kind   ErrorKind
	Reason string
	Drive  *DriveIdentity
}

func (e *CorrelationError) Error() string {
	if e.Drive != nil {
		return fmt.Sprintf("%s: %s (device_index=%q serial=%q)", e.Kind, e.Reason, e.Drive.DeviceIndex, e.Drive.SerialNumber)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func newCorrelationError(kind ErrorKind, drive *DriveIdentity, format string, args ...interface{}) *CorrelationError {
	return &CorrelationError{
		Kind:   kind,
		Reason: fmt.Sprintf(format, args...),
		Drive:  drive,
	}
}

// IsKind reports whether err is a CorrelationError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	ce, ok := err.(*CorrelationError)
	return ok && ce.Kind == kind
}
