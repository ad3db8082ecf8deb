// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package drivehealth

type DriveHealthConfig struct {
	NatsURL        string
	NatsSubject    string
	UseNats        bool
	Prometheus     bool
	PrometheusPort int
	SourceDir      string
	IncludeSmart   bool
	Interval       int // in seconds
	NodeName       string
	InstanceID     string

	// NATS event thresholds
	PendingSectorsThreshold     int64
	ReallocatedSectorsThreshold int64

	// S3 snapshot export
	S3Bucket    string
	S3Prefix    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}
