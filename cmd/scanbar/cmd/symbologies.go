package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/scanbar"
)

// symbologiesCmd lists the supported symbologies and their config keys.
var symbologiesCmd = &cobra.Command{
	Use:   "symbologies",
	Short: "List supported symbologies",
	Long: `List the symbologies the scanner can decode, with the keys accepted
by --symbology and --set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if _, err := fmt.Fprintf(out, "%-12s %s\n", "KEY", "NAME"); err != nil {
			return err
		}
		for _, sym := range scanbar.AllSymbologies() {
			if _, err := fmt.Fprintf(out, "%-12s %s\n", sym.Key(), sym.String()); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(symbologiesCmd)
}
