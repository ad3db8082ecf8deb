// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package drivehealth

import (
	"os"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/host"
)

// DefaultNodeName returns the host's name for use when no node name is
// configured.
func DefaultNodeName() string {
	if info, err := host.Info(); err == nil && info.Hostname != "" {
		return info.Hostname
	}
	hostname, _ := os.Hostname()
	return hostname
}

// NewInstanceID generates a fresh instance id for use when none is
// configured.
func NewInstanceID() string {
	return uuid.NewString()
}
