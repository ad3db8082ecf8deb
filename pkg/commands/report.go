// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"gitlab.clyso.com/clyso/driveguard/pkg/producers/drivehealth"
)

var (
	reportSourceDir string
	reportSmart     bool
)

// reportCmd assembles one snapshot and prints it as JSON, with a progress
// bar over the per-drive SMART attach since decoding many drives' dumps can
// take a moment on large hosts.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "One-shot drive health report",
	Run: func(cmd *cobra.Command, args []string) {
		sourceDir := getEnv("SOURCE_DIR", reportSourceDir)
		if sourceDir == "" {
			fmt.Println("Warning: --source-dir or SOURCE_DIR must be set")
			os.Exit(1)
		}

		enum, err := drivehealth.NewFileEnumerator(sourceDir)
		if err != nil {
			log.Fatal().Err(err).Msg("error opening enumeration source")
		}
		defer enum.Close()

		assembler := drivehealth.NewAssembler(enum)
		drives, err := assembler.CollectDrives(false)
		if err != nil {
			log.Fatal().Err(err).Msg("error assembling drive identities")
		}

		if reportSmart {
			set, err := assembler.QueryFailurePrediction()
			if err != nil {
				log.Fatal().Err(err).Msg("error enumerating failure-prediction sources")
			}

			bar := progressbar.Default(int64(len(drives)), "decoding SMART data")
			for i := range drives {
				if err := drivehealth.AttachSmartData(&drives[i], set); err != nil {
					log.Fatal().Err(err).Msg("error attaching SMART data")
				}
				bar.Add(1)
			}
		}

		out, err := json.MarshalIndent(drives, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("error marshalling report")
		}
		fmt.Println(string(out))
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportSourceDir, "source-dir", "", "Directory with enumeration dump files (<class>.json)")
	reportCmd.Flags().BoolVar(&reportSmart, "smart", false, "Include SMART attribute data")
}
