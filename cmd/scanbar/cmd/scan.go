package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/scanbar"
	"github.com/MeKo-Tech/scanbar/internal/config"
	"github.com/MeKo-Tech/scanbar/internal/utils"
)

const (
	outputFormatText = "text"
	outputFormatJSON = "json"
	outputFormatCSV  = "csv"
	outputFormatXML  = "xml"
)

// scanSymbolJSON is the per-symbol JSON shape of "scanbar scan --format json".
type scanSymbolJSON struct {
	Type    string          `json:"type"`
	Data    string          `json:"data"`
	Quality int             `json:"quality"`
	Count   int             `json:"count"`
	Polygon []scanbar.Point `json:"polygon,omitempty"`
}

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan images for barcodes and QR codes",
	Long: `Scan one or more image files and print the decoded symbols.

Supported formats: JPEG, PNG, GIF, BMP, TIFF

Examples:
  scanbar scan photo.jpg
  scanbar scan *.png --format json
  scanbar scan ticket.png --symbology qrcode --try-harder
  scanbar scan label.jpg --set code128.min-len=6`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
		}

		cfg := GetConfig()
		format := cfg.Output.Format
		outputFile := cfg.Output.File

		validFormats := []string{outputFormatText, outputFormatJSON, outputFormatCSV, outputFormatXML}
		isValidFormat := false
		for _, f := range validFormats {
			if format == f {
				isValidFormat = true
				break
			}
		}
		if !isValidFormat {
			return fmt.Errorf("invalid output format: %s (must be one of: %s)",
				format, strings.Join(validFormats, ", "))
		}

		scanner, err := cfg.BuildScanner()
		if err != nil {
			return fmt.Errorf("failed to build scanner: %w", err)
		}

		var outputs []string
		total := 0
		for _, pth := range args {
			if !utils.IsSupportedImage(pth) {
				return fmt.Errorf("unsupported image format: %s", pth)
			}
			img, err := scanbar.FromPath(pth)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", pth, err)
			}
			set, err := scanner.ScanContext(cmd.Context(), img)
			if err != nil {
				return fmt.Errorf("scan failed for %s: %w", pth, err)
			}
			symbols, err := set.Symbols()
			if err != nil {
				return err
			}
			total += len(symbols)

			s, err := formatSymbols(pth, symbols, format)
			if err != nil {
				return err
			}
			outputs = append(outputs, s)
		}

		final := strings.Join(outputs, "")
		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(final), 0o600); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", outputFile); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprint(cmd.OutOrStdout(), final); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}

		// zbarimg convention: nonzero exit when nothing decoded.
		if total == 0 {
			return errors.New("no symbols detected")
		}
		return nil
	},
}

// formatSymbols renders the symbols of one file in the chosen output format.
func formatSymbols(path string, symbols []*scanbar.Symbol, format string) (string, error) {
	switch format {
	case outputFormatJSON:
		out := make([]scanSymbolJSON, len(symbols))
		for i, sym := range symbols {
			out[i] = scanSymbolJSON{
				Type:    sym.Type().String(),
				Data:    sym.Text(),
				Quality: sym.Quality(),
				Count:   sym.Count(),
				Polygon: sym.Polygon(),
			}
		}
		obj := struct {
			File    string           `json:"file"`
			Symbols []scanSymbolJSON `json:"symbols"`
			Count   int              `json:"count"`
		}{File: path, Symbols: out, Count: len(out)}
		bts, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(bts) + "\n", nil
	case outputFormatCSV:
		var sb strings.Builder
		for _, sym := range symbols {
			fmt.Fprintf(&sb, "%s,%s,%q,%d\n", path, sym.Type(), sym.Text(), sym.Quality())
		}
		return sb.String(), nil
	case outputFormatXML:
		var sb strings.Builder
		fmt.Fprintf(&sb, "<source href='%s'>\n", path)
		for _, sym := range symbols {
			sb.WriteString(sym.XML())
			sb.WriteByte('\n')
		}
		sb.WriteString("</source>\n")
		return sb.String(), nil
	default:
		var sb strings.Builder
		for _, sym := range symbols {
			fmt.Fprintf(&sb, "%s:%s:%s\n", path, sym.Type(), sym.Text())
		}
		return sb.String(), nil
	}
}

func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "text", "output format (text, json, csv, xml)")
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	addScannerFlags(cmd)
}

func addScannerFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("symbology", "s", nil,
		"restrict scanning to the named symbologies (e.g. qrcode, ean13)")
	cmd.Flags().StringArray("set", nil,
		"scanner configuration in zbar notation (e.g. code128.min-len=6)")
	cmd.Flags().Bool("try-harder", false, "spend more effort per image (rotations)")
	cmd.Flags().Bool("cache", false, "enable inter-scan duplicate counting")
}

// applyScanFlagOverrides copies changed scan flags over the loaded
// configuration for commands whose flags are not bound to viper.
func applyScanFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("format") {
		cfg.Output.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.File, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("symbology") {
		cfg.Scanner.Symbologies, _ = cmd.Flags().GetStringSlice("symbology")
	}
	if cmd.Flags().Changed("set") {
		cfg.Scanner.Options, _ = cmd.Flags().GetStringArray("set")
	}
	if cmd.Flags().Changed("try-harder") {
		cfg.Scanner.TryHarder, _ = cmd.Flags().GetBool("try-harder")
	}
	if cmd.Flags().Changed("cache") {
		cfg.Scanner.Cache, _ = cmd.Flags().GetBool("cache")
	}
}

// bindScanFlags binds all flags to viper configuration keys.
func bindScanFlags(cmd *cobra.Command) {
	flagBindings := []struct {
		key  string
		flag string
	}{
		{"output.format", "format"},
		{"output.file", "output"},
		{"scanner.symbologies", "symbology"},
		{"scanner.options", "set"},
		{"scanner.try_harder", "try-harder"},
		{"scanner.cache", "cache"},
	}

	for _, binding := range flagBindings {
		if err := viper.BindPFlag(binding.key, cmd.Flags().Lookup(binding.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", binding.flag, err))
		}
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)

	addScanFlags(scanCmd)
	bindScanFlags(scanCmd)
}

// GetScanCommand returns the scan command for testing purposes.
func GetScanCommand() *cobra.Command {
	return scanCmd
}
