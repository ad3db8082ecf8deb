// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package drivehealth

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// convertToNatsEvent converts one assembled drive into a NatsEvent
func convertToNatsEvent(drive DriveIdentity, config *DriveHealthConfig) NatsEvent {
	details := map[string]string{
		"Model":        drive.Model,
		"SerialNumber": drive.SerialNumber,
		"BusType":      drive.Bus.String(),
		"MediaType":    drive.Media.String(),
		"SizeBytes":    fmt.Sprintf("%d", drive.Size),
	}

	severity := "info"
	eventType := "health"

	if drive.FailurePredicted != nil {
		details["FailurePredicted"] = fmt.Sprintf("%t", *drive.FailurePredicted)
		if *drive.FailurePredicted {
			severity = "critical"
			eventType = "failure_alert"
		}
	}

	checkAndSetThresholds(details, drive, config, &severity, &eventType)

	for _, attr := range drive.Attributes {
		details[attr.Name()] = fmt.Sprintf("%d", attr.Raw)
	}

	return NatsEvent{
		NodeName:   config.NodeName,
		InstanceID: config.InstanceID,
		Device:     drive.DeviceName,
		EventType:  eventType,
		Severity:   severity,
		Message:    generateMessage(drive, details),
		Details:    details,
	}
}

// checkAndSetThresholds checks the critical attribute readings against the
// configured thresholds and escalates severity without overriding an already
// critical event.
func checkAndSetThresholds(details map[string]string, drive DriveIdentity, config *DriveHealthConfig, severity *string, eventType *string) {
	if pending := findAttributeByID(drive.Attributes, 197); pending != nil && int64(pending.Raw) > config.PendingSectorsThreshold {
		details["PendingSectors"] = fmt.Sprintf("%d (Warning: Exceeds threshold of %d)", pending.Raw, config.PendingSectorsThreshold)
		if *severity == "info" {
			*severity = "warning"
			*eventType = "health_alert"
		}
	}

	if reallocated := findAttributeByID(drive.Attributes, 5); reallocated != nil && int64(reallocated.Raw) > config.ReallocatedSectorsThreshold {
		details["ReallocatedSectors"] = fmt.Sprintf("%d (Warning: Exceeds threshold of %d)", reallocated.Raw, config.ReallocatedSectorsThreshold)
		if *severity == "info" {
			*severity = "warning"
			*eventType = "health_alert"
		}
	}
}

func findAttributeByID(attributes []AttributeReading, id uint8) *AttributeReading {
	for i := range attributes {
		if attributes[i].ID == id {
			return &attributes[i]
		}
	}
	return nil
}

// generateMessage generates a summary message based on the event details.
func generateMessage(drive DriveIdentity, details map[string]string) string {
	if drive.FailurePredicted != nil && *drive.FailurePredicted {
		return "Drive firmware predicts imminent failure."
	}
	if _, found := details["PendingSectors"]; found {
		return "SMART data indicates potential drive issues (pending sectors)."
	}
	if _, found := details["ReallocatedSectors"]; found {
		return "SMART data indicates potential drive issues (reallocated sectors)."
	}
	return "Drive health data collected successfully."
}

func PublishToNATS(drives []DriveIdentity, nc *nats.Conn, subject string, cfg *DriveHealthConfig) error {
	for _, drive := range drives {
		event := convertToNatsEvent(drive, cfg)

		eventJSON, err := json.Marshal(event)
		if err != nil {
			return err
		}

		if err := nc.Publish(subject, eventJSON); err != nil {
			return err
		}
	}

	return nil
}
