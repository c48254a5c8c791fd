// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/canonical/tenant-directory/internal/types"
)

var registrationsCmd = &cobra.Command{
	Use:   "registrations",
	Short: "Review pending registrations",
}

var (
	registrationRole   string
	registrationTenant string
	registrationFailed bool
)

var listRegistrationsCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending registrations visible to the caller",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := getClient()
		ctx := context.Background()

		var (
			requests []*types.PendingRequest
			err      error
		)
		if registrationFailed {
			requests, err = client.ListFailedRegistrations(ctx)
		} else {
			requests, err = client.ListRegistrations(ctx, registrationRole, registrationTenant)
		}
		if err != nil {
			return fmt.Errorf("failed to list registrations: %w", err)
		}

		printRegistrations(os.Stdout, requests)
		return nil
	},
}

var approveRegistrationCmd = &cobra.Command{
	Use:   "approve [id]",
	Short: "Approve a registration and provision its account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		account, err := getClient().ApproveRegistration(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to approve registration: %w", err)
		}

		fmt.Printf("Registration approved: %s (%s)\n", account.LoginID, account.Role)
		return nil
	},
}

var rejectRegistrationCmd = &cobra.Command{
	Use:   "reject [id]",
	Short: "Reject a registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getClient().RejectRegistration(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to reject registration: %w", err)
		}

		fmt.Printf("Registration rejected: %s\n", args[0])
		return nil
	},
}

func printRegistrations(out io.Writer, requests []*types.PendingRequest) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tLOGIN_ID\tROLE\tTENANT\tSTATUS\tSUBMITTED_AT")
	for _, p := range requests {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.LoginID, p.RequestedRole, p.TenantKey, p.Status, p.SubmittedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(registrationsCmd)
	registrationsCmd.AddCommand(listRegistrationsCmd)
	registrationsCmd.AddCommand(approveRegistrationCmd)
	registrationsCmd.AddCommand(rejectRegistrationCmd)

	listRegistrationsCmd.Flags().StringVar(&registrationRole, "role", "", "Only show requests for this role")
	listRegistrationsCmd.Flags().StringVar(&registrationTenant, "tenant-key", "", "Only show requests for this tenant")
	listRegistrationsCmd.Flags().BoolVar(&registrationFailed, "failed", false, "Show partially provisioned requests instead")
}
