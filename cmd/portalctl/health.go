package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check portal server health",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	client := &http.Client{Timeout: 10 * time.Second}

	for _, probe := range []string{"/healthz", "/readyz"} {
		resp, err := client.Get(serverURL + probe)
		if err != nil {
			return fmt.Errorf("%s unreachable: %w", probe, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s returned %d", probe, resp.StatusCode)
		}
		fmt.Printf("%s: ok\n", probe)
	}
	return nil
}
