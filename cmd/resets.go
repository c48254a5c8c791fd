// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var resetsCmd = &cobra.Command{
	Use:   "resets",
	Short: "Review secret reset requests",
}

var listResetsCmd = &cobra.Command{
	Use:   "list",
	Short: "List reset requests routed to the caller",
	RunE: func(cmd *cobra.Command, args []string) error {
		requests, err := getClient().ListResets(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list resets: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tLOGIN_ID\tROLE\tTENANT\tSTATUS\tSUBMITTED_AT")
		for _, r := range requests {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.LoginID, r.Role, r.TenantKey, r.Status, r.SubmittedAt.Format("2006-01-02 15:04"))
		}
		w.Flush()
		return nil
	},
}

var approveResetCmd = &cobra.Command{
	Use:   "approve [id]",
	Short: "Approve a reset and apply the new secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := getClient().ApproveReset(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to approve reset: %w", err)
		}

		fmt.Printf("Reset approved: %s\n", r.LoginID)
		return nil
	},
}

var rejectResetCmd = &cobra.Command{
	Use:   "reject [id]",
	Short: "Reject a reset request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getClient().RejectReset(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to reject reset: %w", err)
		}

		fmt.Printf("Reset rejected: %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetsCmd)
	resetsCmd.AddCommand(listResetsCmd)
	resetsCmd.AddCommand(approveResetCmd)
	resetsCmd.AddCommand(rejectResetCmd)
}
