package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatResults renders a batch result in the given output format.
func FormatResults(result *Result, format string) (string, error) {
	switch format {
	case "json":
		return formatJSON(result)
	case "csv":
		return formatCSV(result)
	default: // text
		return formatText(result), nil
	}
}

// formatJSON renders the whole result as one JSON document.
func formatJSON(result *Result) (string, error) {
	bts, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bts) + "\n", nil
}

// formatCSV renders one row per decoded symbol.
func formatCSV(result *Result) (string, error) {
	csvData := [][]string{
		{"file", "symbol_index", "type", "data", "quality"},
	}

	for _, fr := range result.Files {
		if fr.Error != "" {
			continue
		}
		for j, sym := range fr.Symbols {
			csvData = append(csvData, []string{
				fr.Path,
				strconv.Itoa(j),
				sym.Type,
				sym.Data,
				strconv.Itoa(sym.Quality),
			})
		}
	}

	var output strings.Builder
	writer := csv.NewWriter(&output)
	for _, row := range csvData {
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	return output.String(), nil
}

// formatText renders the zbarimg-style file:type:data lines, with a trailing
// summary.
func formatText(result *Result) string {
	var output strings.Builder
	for _, fr := range result.Files {
		if fr.Error != "" {
			fmt.Fprintf(&output, "%s: error: %s\n", fr.Path, fr.Error)
			continue
		}
		for _, sym := range fr.Symbols {
			fmt.Fprintf(&output, "%s:%s:%s\n", fr.Path, sym.Type, sym.Data)
		}
	}
	fmt.Fprintf(&output, "scanned %d files, %d symbols, %d failures in %s\n",
		result.TotalFiles, result.TotalFound, result.Failed, result.Duration.Round(time.Millisecond))
	return output.String()
}
