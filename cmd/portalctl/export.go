package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Fetch the approved closures export feed",
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	client := newClient()

	var entries []exportEntry
	if err := client.getJSON("/api/export/yandex/", &entries); err != nil {
		return fmt.Errorf("failed to fetch export feed: %w", err)
	}

	if outputFmt == "json" || outputFmt == "yaml" {
		return printOutput(entries)
	}

	headers := []string{"ID", "Name", "Latitude", "Longitude", "Start", "End", "Reason"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			truncate(e.Name, 40),
			fmt.Sprintf("%.5f", e.Latitude),
			fmt.Sprintf("%.5f", e.Longitude),
			e.StartDate,
			e.EndDate,
			truncate(e.Reason, 40),
		})
	}
	printTable(headers, rows)
	return nil
}
