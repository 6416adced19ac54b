/*
Copyright © 2018-2023 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/WorksButNotTested/binarch2/internal/commands/scan"
	"github.com/WorksButNotTested/binarch2/internal/config"
	"github.com/WorksButNotTested/binarch2/internal/progress"
	"github.com/apex/log"
	"github.com/caarlos0/ctrlc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().Int("chunks", config.DefaultChunks, "Number of windows the input is split into")
	scanCmd.Flags().IntP("workers", "w", 0, "Number of windows scanned at once (0 = one per CPU)")
	scanCmd.Flags().Bool("json", false, "Output as JSON")
	scanCmd.Flags().BoolP("offsets", "o", false, "Show match offsets")
	scanCmd.Flags().IntP("limit", "l", config.DefaultLimit, "Max offsets shown per kind (0 = all)")
	scanCmd.Flags().IntP("dump", "d", 0, "Hexdump the first N matches of every kind")
	scanCmd.Flags().Bool("no-progress", false, "Hide the progress bar")
	scanCmd.Flags().StringP("sigs", "s", "", "Extra signature rules (JSON/YAML file or directory)")
	viper.BindPFlag("scan.chunks", scanCmd.Flags().Lookup("chunks"))
	viper.BindPFlag("scan.workers", scanCmd.Flags().Lookup("workers"))
	viper.BindPFlag("scan.json", scanCmd.Flags().Lookup("json"))
	viper.BindPFlag("scan.offsets", scanCmd.Flags().Lookup("offsets"))
	viper.BindPFlag("scan.limit", scanCmd.Flags().Lookup("limit"))
	viper.BindPFlag("scan.dump", scanCmd.Flags().Lookup("dump"))
	viper.BindPFlag("scan.no-progress", scanCmd.Flags().Lookup("no-progress"))
	viper.BindPFlag("scan.sigs", scanCmd.Flags().Lookup("sigs"))
}

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:           "scan <FILE>...",
	Short:         "Guess the architecture and endianness of files",
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	Example: heredoc.Doc(`
		# Classify a raw firmware dump
		$ binarch scan firmware.bin

		# Show where the evidence was found and dump the first two hits per kind
		$ binarch scan --offsets --dump 2 firmware.bin

		# Add your own signatures and emit JSON
		$ binarch scan --sigs ./rules --json *.bin | jq '.[].classification'
	`),
	RunE: func(cmd *cobra.Command, args []string) error {

		c, err := config.LoadConfig()
		if err != nil {
			return err
		}

		cat, err := loadCatalog(c.Scan.Sigs)
		if err != nil {
			return err
		}

		conf := &scan.Config{
			Catalog:  cat,
			Chunks:   c.Scan.Chunks,
			Workers:  c.Scan.Workers,
			Offsets:  c.Scan.Offsets,
			Limit:    c.Scan.Limit,
			Dump:     c.Scan.Dump,
			Progress: !c.Scan.JSON && progress.Enabled(c.Scan.NoProgress),
			JSON:     c.Scan.JSON,
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := ctrlc.Default.Run(ctx, func() error {
			return scan.Run(ctx, args, conf, os.Stdout)
		}); err != nil {
			if errors.As(err, &ctrlc.ErrorCtrlC{}) {
				log.Warn("Scan interrupted")
			}
			return err
		}

		return nil
	},
}
