package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var crossingsCmd = &cobra.Command{
	Use:   "crossings",
	Short: "Manage the railway crossing registry",
}

var crossingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered crossings",
	RunE:  runCrossingsList,
}

var crossingsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one crossing",
	Args:  cobra.ExactArgs(1),
	RunE:  runCrossingsGet,
}

func init() {
	crossingsCmd.AddCommand(crossingsListCmd)
	crossingsCmd.AddCommand(crossingsGetCmd)
}

func runCrossingsList(cmd *cobra.Command, args []string) error {
	client := newClient()

	var crossings []crossingResponse
	if err := client.getJSON("/api/crossings/", &crossings); err != nil {
		return fmt.Errorf("failed to list crossings: %w", err)
	}

	if outputFmt == "json" || outputFmt == "yaml" {
		return printOutput(crossings)
	}

	headers := []string{"ID", "Name", "Latitude", "Longitude", "Description"}
	rows := make([][]string, 0, len(crossings))
	for _, c := range crossings {
		rows = append(rows, []string{
			c.ID,
			c.Name,
			fmt.Sprintf("%.5f", c.Latitude),
			fmt.Sprintf("%.5f", c.Longitude),
			truncate(c.Description, 40),
		})
	}
	printTable(headers, rows)
	return nil
}

func runCrossingsGet(cmd *cobra.Command, args []string) error {
	client := newClient()

	var c crossingResponse
	if err := client.getJSON("/api/crossings/"+args[0]+"/", &c); err != nil {
		return fmt.Errorf("failed to get crossing: %w", err)
	}
	return printJSON(c)
}
