package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	closureStatus    string
	closureCrossing  string
	closureStart     string
	closureEnd       string
	closureReason    string
	closureSignature string
)

var closuresCmd = &cobra.Command{
	Use:   "closures",
	Short: "Manage closure requests",
}

var closuresListCmd = &cobra.Command{
	Use:   "list",
	Short: "List closure requests",
	RunE:  runClosuresList,
}

var closuresGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one closure request with comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runClosuresGet,
}

var closuresCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a draft closure request",
	RunE:  runClosuresCreate,
}

var closuresSignCmd = &cobra.Command{
	Use:   "sign <id>",
	Short: "Sign a draft closure request",
	Args:  cobra.ExactArgs(1),
	RunE:  runClosuresSign,
}

var closuresSubmitCmd = &cobra.Command{
	Use:   "submit <id>",
	Short: "Send a signed draft for approval",
	Args:  cobra.ExactArgs(1),
	RunE:  runClosuresAction("/send_for_approval/"),
}

var closuresApproveAdmCmd = &cobra.Command{
	Use:   "approve-administration <id>",
	Short: "Record the administration's approval vote",
	Args:  cobra.ExactArgs(1),
	RunE:  runClosuresAction("/approve_administration/"),
}

var closuresApproveGibddCmd = &cobra.Command{
	Use:   "approve-gibdd <id>",
	Short: "Record the traffic police approval vote",
	Args:  cobra.ExactArgs(1),
	RunE:  runClosuresAction("/approve_gibdd/"),
}

var closuresRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending closure request",
	Args:  cobra.ExactArgs(1),
	RunE:  runClosuresAction("/reject/"),
}

var closuresCommentCmd = &cobra.Command{
	Use:   "comment <id> <text>",
	Short: "Add a comment to a closure request",
	Args:  cobra.ExactArgs(2),
	RunE:  runClosuresComment,
}

func init() {
	closuresListCmd.Flags().StringVar(&closureStatus, "status", "", "Filter by status: draft, pending, approved, rejected")

	closuresCreateCmd.Flags().StringVar(&closureCrossing, "crossing", "", "Crossing ID (required)")
	closuresCreateCmd.Flags().StringVar(&closureStart, "start", "", "Closure start, RFC 3339 (required)")
	closuresCreateCmd.Flags().StringVar(&closureEnd, "end", "", "Closure end, RFC 3339 (required)")
	closuresCreateCmd.Flags().StringVar(&closureReason, "reason", "", "Closure reason (required)")
	_ = closuresCreateCmd.MarkFlagRequired("crossing")
	_ = closuresCreateCmd.MarkFlagRequired("start")
	_ = closuresCreateCmd.MarkFlagRequired("end")
	_ = closuresCreateCmd.MarkFlagRequired("reason")

	closuresSignCmd.Flags().StringVar(&closureSignature, "signature", "", "Digital signature value (required)")
	_ = closuresSignCmd.MarkFlagRequired("signature")

	closuresCmd.AddCommand(closuresListCmd)
	closuresCmd.AddCommand(closuresGetCmd)
	closuresCmd.AddCommand(closuresCreateCmd)
	closuresCmd.AddCommand(closuresSignCmd)
	closuresCmd.AddCommand(closuresSubmitCmd)
	closuresCmd.AddCommand(closuresApproveAdmCmd)
	closuresCmd.AddCommand(closuresApproveGibddCmd)
	closuresCmd.AddCommand(closuresRejectCmd)
	closuresCmd.AddCommand(closuresCommentCmd)
}

func runClosuresList(cmd *cobra.Command, args []string) error {
	client := newClient()

	path := "/api/closures/"
	if closureStatus != "" {
		path += "?status=" + url.QueryEscape(closureStatus)
	}

	var closures []closureResponse
	if err := client.getJSON(path, &closures); err != nil {
		return fmt.Errorf("failed to list closures: %w", err)
	}

	if outputFmt == "json" || outputFmt == "yaml" {
		return printOutput(closures)
	}

	headers := []string{"ID", "Crossing", "Status", "Adm", "Gibdd", "Start", "End", "Reason"}
	rows := make([][]string, 0, len(closures))
	for _, c := range closures {
		rows = append(rows, []string{
			c.ID,
			c.RailwayCrossing,
			c.Status,
			yesNo(c.AdminApproved),
			yesNo(c.GibddApproved),
			c.StartDate,
			c.EndDate,
			truncate(c.Reason, 40),
		})
	}
	printTable(headers, rows)
	return nil
}

func runClosuresGet(cmd *cobra.Command, args []string) error {
	client := newClient()

	var c closureResponse
	if err := client.getJSON("/api/closures/"+args[0]+"/", &c); err != nil {
		return fmt.Errorf("failed to get closure: %w", err)
	}
	return printJSON(c)
}

func runClosuresCreate(cmd *cobra.Command, args []string) error {
	client := newClient()

	body := map[string]string{
		"railway_crossing": closureCrossing,
		"start_date":       closureStart,
		"end_date":         closureEnd,
		"reason":           closureReason,
	}
	var c closureResponse
	if err := client.postJSON("/api/closures/", body, &c); err != nil {
		return fmt.Errorf("failed to create closure: %w", err)
	}
	fmt.Printf("Created closure %s (status: %s)\n", c.ID, c.Status)
	return nil
}

func runClosuresSign(cmd *cobra.Command, args []string) error {
	client := newClient()

	body := map[string]string{"digital_signature": closureSignature}
	var c closureResponse
	if err := client.postJSON("/api/closures/"+args[0]+"/sign_closure/", body, &c); err != nil {
		return fmt.Errorf("failed to sign closure: %w", err)
	}
	fmt.Printf("Signed closure %s at %s\n", c.ID, c.SignatureDate)
	return nil
}

// runClosuresAction builds a RunE for the body-less lifecycle actions.
func runClosuresAction(action string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client := newClient()

		var c closureResponse
		if err := client.postJSON("/api/closures/"+args[0]+action, nil, &c); err != nil {
			return fmt.Errorf("action failed: %w", err)
		}
		fmt.Printf("Closure %s is now %s (administration: %s, traffic police: %s)\n",
			c.ID, c.Status, yesNo(c.AdminApproved), yesNo(c.GibddApproved))
		return nil
	}
}

func runClosuresComment(cmd *cobra.Command, args []string) error {
	client := newClient()

	body := map[string]string{"text": args[1]}
	var c commentResponse
	if err := client.postJSON("/api/closures/"+args[0]+"/comments/", body, &c); err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	fmt.Printf("Comment %s added\n", c.ID)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
