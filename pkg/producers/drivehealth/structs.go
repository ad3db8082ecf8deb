// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package drivehealth

// DriveIdentity describes one physical drive, assembled from the physical-disk
// and disk-drive enumeration sources. Every field is populated from exactly
// one of the two sources; nothing is synthesized. The struct is built once per
// snapshot and only the SMART fields are filled in afterwards.
type DriveIdentity struct {
	DeviceIndex      string    `json:"device_index"`       // primary correlation key
	PNPDeviceID      string    `json:"pnp_device_id"`      // from the disk-drive source
	DeviceName       string    `json:"device_name"`        // OS device name, e.g. \\.\PHYSICALDRIVE0
	UniqueID         string    `json:"unique_id"`          // vendor-defined unique id
	UniqueIDFormat   uint16    `json:"unique_id_format"`   // format tag for UniqueID
	Model            string    `json:"model"`
	SerialNumber     string    `json:"serial_number"`
	FirmwareVersion  string    `json:"firmware_version"`
	Bus              BusType   `json:"bus_type"`
	Media            MediaType `json:"media_type"`
	Size             uint64    `json:"size"`               // bytes
	BytesPerSector   uint64    `json:"bytes_per_sector"`
	PhysicalLocation string    `json:"physical_location"`

	// SMART augmentation, set only when the failure-prediction sources are
	// requested. FailurePredicted is nil until then.
	FailurePredicted *bool              `json:"failure_predicted,omitempty"`
	Attributes       []AttributeReading `json:"attributes,omitempty"`
}

// AttributeReading is one decoded SMART attribute slot. Threshold stays nil
// when the thresholds buffer carried no entry for the id.
type AttributeReading struct {
	ID        uint8  `json:"id"`
	Flags     uint8  `json:"flags"`
	Current   uint8  `json:"current"`
	Worst     uint8  `json:"worst"`
	Threshold *uint8 `json:"threshold,omitempty"`
	Raw       int32  `json:"raw"`
}

// Name resolves the attribute id against the static name table.
func (a AttributeReading) Name() string {
	return AttributeName(a.ID)
}

// NatsEvent represents a drive health event to be published to NATS
type NatsEvent struct {
	NodeName   string            `json:"node_name"`   // Name of the node where the drive is located
	InstanceID string            `json:"instance_id"` // ID of the instance (useful in cloud environments)
	Device     string            `json:"device"`      // Device identifier (e.g., \\.\PHYSICALDRIVE0)
	EventType  string            `json:"event_type"`  // e.g., 'health', 'health_alert', 'failure_alert'
	Severity   string            `json:"severity"`    // e.g., 'info', 'warning', 'critical'
	Message    string            `json:"message"`     // Description of the event
	Details    map[string]string `json:"details"`     // Additional details, such as SMART attributes
}

// Snapshot is one full collection pass over all drives on a node.
type Snapshot struct {
	NodeName   string          `json:"node_name"`
	InstanceID string          `json:"instance_id"`
	Drives     []DriveIdentity `json:"drives"`
}
