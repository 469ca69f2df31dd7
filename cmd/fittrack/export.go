// ABOUTME: CLI commands for exporting and importing training data.
// ABOUTME: JSON round-trips the whole store; Markdown renders one athlete.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export training data",
	Long: `Export training data in various formats.

FORMATS:

  json       Full JSON export of every athlete (suitable for backup/restore)
  markdown   Markdown tables for the logged-in athlete

OPTIONS:

  --output, -o   Write to file instead of stdout

EXAMPLES:

  fittrack export json                   # Export everything as JSON
  fittrack export json -o backup.json    # Save to file
  fittrack export markdown               # Your history as Markdown`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var data []byte

		switch format {
		case "json":
			raw, err := store.ExportJSON(cmd.Context())
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			data = raw
		case "markdown":
			userID, err := requireUser()
			if err != nil {
				return err
			}
			md, err := store.ExportMarkdown(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json or markdown)", format)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import training data from JSON",
	Long: `Import training data from a JSON backup file.

Rows upsert by id, so importing the same file twice changes nothing.
Imports restore data rather than create it; nothing is queued for sync.

EXAMPLES:

  fittrack import backup.json             # Import from file`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := store.ImportJSON(cmd.Context(), data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
