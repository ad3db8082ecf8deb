// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package drivehealth

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	driveSizeGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "drive_size_bytes",
			Help: "Size of the drive in bytes",
		},
		[]string{"disk", "node", "instance"},
	)

	failurePredictedGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "drive_failure_predicted",
			Help: "1 if the drive firmware predicts failure, 0 otherwise",
		},
		[]string{"disk", "node", "instance"},
	)

	attrCurrentGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "smart_attribute_current",
			Help: "Current normalized value of the SMART attribute",
		},
		[]string{"disk", "attribute", "node", "instance"},
	)

	attrWorstGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "smart_attribute_worst",
			Help: "Worst recorded normalized value of the SMART attribute",
		},
		[]string{"disk", "attribute", "node", "instance"},
	)

	attrThresholdGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "smart_attribute_threshold",
			Help: "Failure threshold of the SMART attribute",
		},
		[]string{"disk", "attribute", "node", "instance"},
	)

	attrRawGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "smart_attribute_raw",
			Help: "Raw value of the SMART attribute",
		},
		[]string{"disk", "attribute", "node", "instance"},
	)
)

func init() {
	// Register all metrics with Prometheus's default registry
	prometheus.MustRegister(driveSizeGauge)
	prometheus.MustRegister(failurePredictedGauge)
	prometheus.MustRegister(attrCurrentGauge)
	prometheus.MustRegister(attrWorstGauge)
	prometheus.MustRegister(attrThresholdGauge)
	prometheus.MustRegister(attrRawGauge)
}

// PublishToPrometheus publishes the assembled drive data to Prometheus
func PublishToPrometheus(drives []DriveIdentity, cfg DriveHealthConfig) {
	for _, drive := range drives {
		labels := prometheus.Labels{
			"disk":     drive.DeviceName,
			"node":     cfg.NodeName,
			"instance": cfg.InstanceID,
		}

		driveSizeGauge.With(labels).Set(float64(drive.Size))

		if drive.FailurePredicted != nil {
			v := 0.0
			if *drive.FailurePredicted {
				v = 1.0
			}
			failurePredictedGauge.With(labels).Set(v)
		}

		for _, attr := range drive.Attributes {
			attrLabels := prometheus.Labels{
				"disk":      drive.DeviceName,
				"attribute": attr.Name(),
				"node":      cfg.NodeName,
				"instance":  cfg.InstanceID,
			}
			attrCurrentGauge.With(attrLabels).Set(float64(attr.Current))
			attrWorstGauge.With(attrLabels).Set(float64(attr.Worst))
			attrRawGauge.With(attrLabels).Set(float64(attr.Raw))
			if attr.Threshold != nil {
				attrThresholdGauge.With(attrLabels).Set(float64(*attr.Threshold))
			}
		}
	}
}

func StartPrometheusServer(port int) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		log.Info().Msgf("starting prometheus metrics server on :%d", port)
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
		if err != nil {
			log.Fatal().Err(err).Msg("error starting prometheus metrics server")
		}
	}()
}
