package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	auditClosure string
	auditActor   string
	auditAction  string
	auditLimit   int
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List the closure action audit trail",
	RunE:  runAuditList,
}

type auditEventResponse struct {
	ID         string `json:"id"`
	ClosureID  string `json:"closure,omitempty"`
	Actor      string `json:"actor"`
	ActorRole  string `json:"actor_role,omitempty"`
	Action     string `json:"action"`
	Outcome    string `json:"outcome"`
	StatusCode int    `json:"status_code,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func init() {
	auditCmd.Flags().StringVar(&auditClosure, "closure", "", "Filter by closure ID")
	auditCmd.Flags().StringVar(&auditActor, "actor", "", "Filter by acting user ID")
	auditCmd.Flags().StringVar(&auditAction, "action", "", "Filter by action name")
	auditCmd.Flags().IntVar(&auditLimit, "limit", 50, "Maximum events to return")

	rootCmd.AddCommand(auditCmd)
}

func runAuditList(cmd *cobra.Command, args []string) error {
	client := newClient()

	params := url.Values{}
	if auditClosure != "" {
		params.Set("closure", auditClosure)
	}
	if auditActor != "" {
		params.Set("actor", auditActor)
	}
	if auditAction != "" {
		params.Set("action", auditAction)
	}
	params.Set("limit", fmt.Sprintf("%d", auditLimit))

	var events []auditEventResponse
	if err := client.getJSON("/api/audit/events?"+params.Encode(), &events); err != nil {
		return fmt.Errorf("failed to list audit events: %w", err)
	}

	if outputFmt == "json" || outputFmt == "yaml" {
		return printOutput(events)
	}

	headers := []string{"Time", "Closure", "Actor", "Role", "Action", "Outcome"}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			e.CreatedAt,
			e.ClosureID,
			e.Actor,
			e.ActorRole,
			e.Action,
			e.Outcome,
		})
	}
	printTable(headers, rows)
	return nil
}
