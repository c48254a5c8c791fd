// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/canonical/tenant-directory/pkg/accounts"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the super approver account",
	Long: `Create the super approver account that approves tenant admin registrations.

The secret is read from the BOOTSTRAP_SECRET environment variable. Running the
command again with an existing super approver login changes nothing.`,
	RunE: runBootstrap,
}

func init() {
	bootstrapCmd.Flags().String("login", "SUPERADMIN", "Login identifier of the super approver")
	bootstrapCmd.Flags().String("display-name", "Super Approver", "Display name of the super approver")

	rootCmd.AddCommand(bootstrapCmd)
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	login, _ := cmd.Flags().GetString("login")
	displayName, _ := cmd.Flags().GetString("display-name")

	deps, err := newDependencies()
	if err != nil {
		return err
	}
	defer deps.Close()

	account, created, err := deps.accounts.Bootstrap(cmd.Context(), &accounts.BootstrapRequest{
		LoginID:     login,
		Secret:      os.Getenv("BOOTSTRAP_SECRET"),
		DisplayName: displayName,
	})
	if err != nil {
		return err
	}

	if !created {
		fmt.Fprintf(cmd.OutOrStdout(), "super approver %s already exists\n", account.LoginID)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "super approver %s created\n", account.LoginID)
	return nil
}
