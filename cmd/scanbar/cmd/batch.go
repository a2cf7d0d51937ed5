package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/scanbar/internal/batch"
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Scan many images or whole directories",
	Long: `Scan a set of image files or directories with a worker pool and
print an aggregated report.

Examples:
  scanbar batch ./inbox
  scanbar batch ./inbox --recursive --workers 8
  scanbar batch ./scans --include '*.png' --format json`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input paths provided")
		}

		cfg := GetConfig()
		applyScanFlagOverrides(cmd, cfg)

		scanner, err := cfg.BuildScanner()
		if err != nil {
			return fmt.Errorf("failed to build scanner: %w", err)
		}

		bCfg := batch.DefaultConfig()
		if cmd.Flags().Changed("workers") {
			bCfg.Workers, _ = cmd.Flags().GetInt("workers")
		}
		bCfg.Recursive, _ = cmd.Flags().GetBool("recursive")
		bCfg.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
		bCfg.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")
		if failFast, _ := cmd.Flags().GetBool("fail-fast"); failFast {
			bCfg.ContinueOnError = false
		}

		result, err := batch.ProcessBatch(cmd.Context(), scanner, args, bCfg)
		if err != nil {
			return err
		}

		output, err := batch.FormatResults(result, cfg.Output.Format)
		if err != nil {
			return err
		}

		if cfg.Output.File != "" {
			if err := os.WriteFile(cfg.Output.File, []byte(output), 0o600); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", cfg.Output.File)
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), output)
		return err
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("workers", "w", 0, "number of concurrent workers (default: CPU count)")
	batchCmd.Flags().BoolP("recursive", "r", false, "descend into subdirectories")
	batchCmd.Flags().StringSlice("include", nil, "only scan files matching these glob patterns")
	batchCmd.Flags().StringSlice("exclude", nil, "skip files matching these glob patterns")
	batchCmd.Flags().Bool("fail-fast", false, "abort the batch on the first failure")
	addScanFlags(batchCmd)
}
