// Package table renders aligned plain-text and JSON tabular output,
// grounded on the teacher's internal/ui/table — trimmed to the plain
// and JSON renderers ("casvc refs" output), dropping the interactive
// TUI viewer the teacher built for ad-hoc SQL result sets, which has
// no equivalent in this engine's command surface.
package table

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// PrintJSON outputs rows as a JSON array of objects keyed by colNames.
func PrintJSON(colNames []string, rows [][]string) error {
	results := make([]map[string]string, len(rows))
	for i, row := range rows {
		obj := make(map[string]string, len(colNames))
		for j, colName := range colNames {
			if j < len(row) {
				obj[colName] = row[j]
			}
		}
		results[i] = obj
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// PrintPlain prints a column-aligned table with full content, no
// truncation.
func PrintPlain(colNames []string, rows [][]string) {
	if len(colNames) == 0 {
		fmt.Println("(0 rows)")
		return
	}

	colWidths := make([]int, len(colNames))
	for i, name := range colNames {
		colWidths[i] = len(name)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(colWidths) && len(val) > colWidths[i] {
				colWidths[i] = len(val)
			}
		}
	}

	for i, name := range colNames {
		if i > 0 {
			fmt.Print("  ")
		}
		fmt.Print(pad(name, colWidths[i]))
	}
	fmt.Println()

	for i, w := range colWidths {
		if i > 0 {
			fmt.Print("  ")
		}
		fmt.Print(strings.Repeat("-", w))
	}
	fmt.Println()

	for _, row := range rows {
		for i, val := range row {
			if i >= len(colWidths) {
				break
			}
			if i > 0 {
				fmt.Print("  ")
			}
			fmt.Print(pad(val, colWidths[i]))
		}
		fmt.Println()
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
