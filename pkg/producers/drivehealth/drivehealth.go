// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package drivehealth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"gitlab.clyso.com/clyso/driveguard/pkg/exporters/s3snapshot"
)

// StartMonitoring runs the collection loop: one snapshot per interval,
// fanned out to the configured sinks. A failed collection pass is logged and
// the tick skipped; the snapshot itself stays all-or-nothing.
func StartMonitoring(cfg DriveHealthConfig, enum Enumerator) {
	assembler := NewAssembler(enum)

	var nc *nats.Conn
	var err error
	if cfg.UseNats {
		nc, err = nats.Connect(cfg.NatsURL)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting to nats")
		}
		defer nc.Close()
	}

	if cfg.Prometheus {
		StartPrometheusServer(cfg.PrometheusPort)
	}

	var uploader *s3snapshot.Uploader
	if cfg.S3Bucket != "" {
		uploader, err = s3snapshot.New(context.Background(), s3snapshot.Config{
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("error setting up s3 snapshot export")
		}
	}

	ticker := time.NewTicker(time.Duration(cfg.Interval) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		drives, err := assembler.CollectDrives(cfg.IncludeSmart)
		if err != nil {
			log.Error().Err(err).Msg("error collecting drive health snapshot")
			continue
		}

		if cfg.Prometheus {
			PublishToPrometheus(drives, cfg)
		}

		if cfg.UseNats {
			if err := PublishToNATS(drives, nc, cfg.NatsSubject, &cfg); err != nil {
				log.Error().Err(err).Msg("error publishing drive health to nats")
			}
		}

		snapshot := Snapshot{
			NodeName:   cfg.NodeName,
			InstanceID: cfg.InstanceID,
			Drives:     drives,
		}
		snapshotJSON, err := json.Marshal(snapshot)
		if err != nil {
			log.Error().Err(err).Msg("error marshalling snapshot to json")
			continue
		}

		if uploader != nil {
			key := fmt.Sprintf("%s-%d.json", cfg.NodeName, time.Now().Unix())
			if err := uploader.Upload(context.Background(), key, snapshotJSON); err != nil {
				log.Error().Err(err).Msg("error uploading snapshot to s3")
			}
		}

		if !cfg.UseNats {
			fmt.Println(string(snapshotJSON))
		}
	}
}
