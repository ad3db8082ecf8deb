// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"gitlab.clyso.com/clyso/driveguard/pkg/config"
	"gitlab.clyso.com/clyso/driveguard/pkg/producers/drivehealth"
)

var (
	dhConfigFile                  string
	dhNatsURL                     string
	dhNatsSubject                 string
	dhPromEnabled                 bool
	dhPromPort                    int
	dhSourceDir                   string
	dhIncludeSmart                bool
	dhInterval                    int
	dhNodeName                    string
	dhInstanceID                  string
	dhPendingSectorsThreshold     int64
	dhReallocatedSectorsThreshold int64
	dhS3Bucket                    string
	dhS3Prefix                    string
	dhS3Region                    string
	dhS3Endpoint                  string
	dhS3AccessKey                 string
	dhS3SecretKey                 string
)

var driveHealthCmd = &cobra.Command{
	Use:   "drive-health",
	Short: "Drive identity and SMART health collector",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := drivehealth.DriveHealthConfig{
			NatsURL:                     dhNatsURL,
			NatsSubject:                 dhNatsSubject,
			Prometheus:                  dhPromEnabled,
			PrometheusPort:              dhPromPort,
			SourceDir:                   dhSourceDir,
			IncludeSmart:                dhIncludeSmart,
			Interval:                    dhInterval,
			NodeName:                    dhNodeName,
			InstanceID:                  dhInstanceID,
			PendingSectorsThreshold:     dhPendingSectorsThreshold,
			ReallocatedSectorsThreshold: dhReallocatedSectorsThreshold,
			S3Bucket:                    dhS3Bucket,
			S3Prefix:                    dhS3Prefix,
			S3Region:                    dhS3Region,
			S3Endpoint:                  dhS3Endpoint,
			S3AccessKey:                 dhS3AccessKey,
			S3SecretKey:                 dhS3SecretKey,
		}

		cfg = mergeDriveHealthConfigWithEnv(cfg)
		cfg = mergeDriveHealthConfigWithFile(cfg)

		cfg.UseNats = cfg.NatsURL != ""

		if cfg.NodeName == "" {
			cfg.NodeName = drivehealth.DefaultNodeName()
		}
		if cfg.InstanceID == "" {
			cfg.InstanceID = drivehealth.NewInstanceID()
		}

		event := log.Info()
		event.Bool("use_nats", cfg.UseNats)
		if cfg.UseNats {
			event.Str("nats_url", cfg.NatsURL)
			event.Str("nats_subject", cfg.NatsSubject)
		}

		event.Bool("prometheus_enabled", cfg.Prometheus)
		if cfg.Prometheus {
			event.Int("prometheus_port", cfg.PrometheusPort)
		}

		event.Str("source_dir", cfg.SourceDir).
			Bool("include_smart", cfg.IncludeSmart).
			Str("node_name", cfg.NodeName).
			Str("instance_id", cfg.InstanceID).
			Int("interval_seconds", cfg.Interval)

		event.Msg("configuration_loaded")

		validateDriveHealthConfig(cfg)

		enum, err := drivehealth.NewFileEnumerator(cfg.SourceDir)
		if err != nil {
			log.Fatal().Err(err).Msg("error opening enumeration source")
		}
		defer enum.Close()

		drivehealth.StartMonitoring(cfg, enum)
	},
}

func mergeDriveHealthConfigWithEnv(cfg drivehealth.DriveHealthConfig) drivehealth.DriveHealthConfig {
	cfg.NatsURL = getEnv("NATS_URL", cfg.NatsURL)
	cfg.NatsSubject = getEnv("NATS_SUBJECT", cfg.NatsSubject)
	cfg.PrometheusPort = getEnvInt("PROMETHEUS_PORT", cfg.PrometheusPort)
	cfg.SourceDir = getEnv("SOURCE_DIR", cfg.SourceDir)
	cfg.IncludeSmart = getEnvBool("INCLUDE_SMART", cfg.IncludeSmart)
	cfg.Interval = getEnvInt("INTERVAL", cfg.Interval)
	cfg.NodeName = getEnv("NODE_NAME", cfg.NodeName)
	cfg.InstanceID = getEnv("INSTANCE_ID", cfg.InstanceID)
	cfg.PendingSectorsThreshold = getEnvInt64("PENDING_SECTORS_THRESHOLD", cfg.PendingSectorsThreshold)
	cfg.ReallocatedSectorsThreshold = getEnvInt64("REALLOCATED_SECTORS_THRESHOLD", cfg.ReallocatedSectorsThreshold)
	cfg.S3Bucket = getEnv("S3_BUCKET", cfg.S3Bucket)
	cfg.S3Prefix = getEnv("S3_PREFIX", cfg.S3Prefix)
	cfg.S3Region = getEnv("S3_REGION", cfg.S3Region)
	cfg.S3Endpoint = getEnv("S3_ENDPOINT", cfg.S3Endpoint)
	cfg.S3AccessKey = getEnv("S3_ACCESS_KEY", cfg.S3AccessKey)
	cfg.S3SecretKey = getEnv("S3_SECRET_KEY", cfg.S3SecretKey)

	return cfg
}

// mergeDriveHealthConfigWithFile fills settings still unset after flags and
// env from the optional config file.
func mergeDriveHealthConfigWithFile(cfg drivehealth.DriveHealthConfig) drivehealth.DriveHealthConfig {
	if dhConfigFile == "" {
		return cfg
	}

	fileCfg, err := config.LoadConfig(dhConfigFile)
	if err != nil {
		log.Fatal().Err(err).Str("config", dhConfigFile).Msg("error loading config file")
	}

	g := fileCfg.Global
	if cfg.NatsURL == "" {
		cfg.NatsURL = g.NatsURL
	}
	if g.NatsSubject != "" && cfg.NatsSubject == defaultNatsSubject {
		cfg.NatsSubject = g.NatsSubject
	}
	if cfg.NodeName == "" {
		cfg.NodeName = g.NodeName
	}
	if cfg.InstanceID == "" {
		cfg.InstanceID = g.InstanceID
	}
	if cfg.SourceDir == "" {
		cfg.SourceDir = g.SourceDir
	}
	if cfg.S3Bucket == "" {
		cfg.S3Bucket = g.S3Bucket
	}
	if cfg.S3Prefix == "" {
		cfg.S3Prefix = g.S3Prefix
	}
	if cfg.S3Region == "" {
		cfg.S3Region = g.S3Region
	}
	if cfg.S3Endpoint == "" {
		cfg.S3Endpoint = g.S3Endpoint
	}
	if cfg.S3AccessKey == "" {
		cfg.S3AccessKey = g.S3AccessKey
	}
	if cfg.S3SecretKey == "" {
		cfg.S3SecretKey = g.S3SecretKey
	}

	return cfg
}

const defaultNatsSubject = "node.drive.health"

func init() {
	driveHealthCmd.Flags().StringVar(&dhConfigFile, "config", "", "Optional YAML config file")
	driveHealthCmd.Flags().StringVar(&dhNatsURL, "nats-url", "", "NATS server URL")
	driveHealthCmd.Flags().StringVar(&dhNatsSubject, "nats-subject", defaultNatsSubject, "NATS subject to publish drive health events")
	driveHealthCmd.Flags().BoolVar(&dhPromEnabled, "prometheus", false, "Enable Prometheus metrics")
	driveHealthCmd.Flags().IntVar(&dhPromPort, "prometheus-port", 8080, "Prometheus metrics port")
	driveHealthCmd.Flags().StringVar(&dhSourceDir, "source-dir", "", "Directory with enumeration dump files (<class>.json)")
	driveHealthCmd.Flags().BoolVar(&dhIncludeSmart, "smart", false, "Attach SMART attribute data from the failure-prediction sources")
	driveHealthCmd.Flags().IntVar(&dhInterval, "interval", 60, "Interval in seconds between collections")
	driveHealthCmd.Flags().StringVar(&dhNodeName, "node-name", "", "Node name (defaults to hostname)")
	driveHealthCmd.Flags().StringVar(&dhInstanceID, "instance-id", "", "Instance ID (defaults to a generated id)")
	driveHealthCmd.Flags().Int64Var(&dhPendingSectorsThreshold, "pending-sectors-threshold", 3, "Threshold for pending sectors to trigger a warning")
	driveHealthCmd.Flags().Int64Var(&dhReallocatedSectorsThreshold, "reallocated-sectors-threshold", 10, "Threshold for reallocated sectors to trigger a warning")
	driveHealthCmd.Flags().StringVar(&dhS3Bucket, "s3-bucket", "", "S3 bucket for snapshot export (disabled when empty)")
	driveHealthCmd.Flags().StringVar(&dhS3Prefix, "s3-prefix", "drive-health", "S3 key prefix for snapshot export")
	driveHealthCmd.Flags().StringVar(&dhS3Region, "s3-region", "", "S3 region for snapshot export")
	driveHealthCmd.Flags().StringVar(&dhS3Endpoint, "s3-endpoint", "", "Custom S3 endpoint (non-AWS stores)")
	driveHealthCmd.Flags().StringVar(&dhS3AccessKey, "s3-access-key", "", "S3 access key (default credential chain when empty)")
	driveHealthCmd.Flags().StringVar(&dhS3SecretKey, "s3-secret-key", "", "S3 secret key")
}

func validateDriveHealthConfig(cfg drivehealth.DriveHealthConfig) {
	missingParams := false

	if cfg.SourceDir == "" {
		fmt.Println("Warning: --source-dir or SOURCE_DIR must be set")
		missingParams = true
	}

	if missingParams {
		fmt.Println("One or more required parameters are missing. Please provide them through flags or environment variables.")
		os.Exit(1)
	}
}
