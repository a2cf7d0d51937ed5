package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/scanbar/internal/pdf"
)

// pdfCmd represents the pdf command.
var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Scan PDF documents for barcodes and QR codes",
	Long: `Extract the embedded images of one or more PDF files and scan them
for barcodes.

Examples:
  scanbar pdf invoice.pdf
  scanbar pdf shipping.pdf --pages 1-3 --format json
  scanbar pdf *.pdf --symbology code128`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
		}

		cfg := GetConfig()
		applyScanFlagOverrides(cmd, cfg)
		format := cfg.Output.Format
		outputFile := cfg.Output.File
		pages, _ := cmd.Flags().GetString("pages")

		scanner, err := cfg.BuildScanner()
		if err != nil {
			return fmt.Errorf("failed to build scanner: %w", err)
		}

		var outputs []string
		total := 0
		for _, pth := range args {
			symbols, err := pdf.ScanFile(pth, pages, scanner)
			if err != nil {
				return fmt.Errorf("PDF scan failed for %s: %w", pth, err)
			}
			total += len(symbols)

			s, err := formatPDFSymbols(pth, symbols, format)
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

		if total == 0 {
			return errors.New("no symbols detected")
		}
		return nil
	},
}

// formatPDFSymbols renders the symbols of one document in the chosen format.
func formatPDFSymbols(path string, symbols []pdf.Symbol, format string) (string, error) {
	switch format {
	case outputFormatJSON:
		obj := struct {
			File    string       `json:"file"`
			Symbols []pdf.Symbol `json:"symbols"`
			Count   int          `json:"count"`
		}{File: path, Symbols: symbols, Count: len(symbols)}
		bts, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(bts) + "\n", nil
	case outputFormatCSV:
		var sb strings.Builder
		for _, sym := range symbols {
			fmt.Fprintf(&sb, "%s,%d,%s,%q,%d\n", path, sym.Page, sym.Type, sym.Data, sym.Quality)
		}
		return sb.String(), nil
	default:
		var sb strings.Builder
		for _, sym := range symbols {
			fmt.Fprintf(&sb, "%s:p%d:%s:%s\n", path, sym.Page, sym.Type, sym.Data)
		}
		return sb.String(), nil
	}
}

func init() {
	rootCmd.AddCommand(pdfCmd)

	pdfCmd.Flags().String("pages", "", "page range to scan (e.g. 1-5,8; default: all)")
	addScanFlags(pdfCmd)
}

// GetPdfCommand returns the pdf command for testing purposes.
func GetPdfCommand() *cobra.Command {
	return pdfCmd
}
