// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Finish registrations left half provisioned",
	Long: `Replay the tenant write of every registration stuck in provisioning or
failed_partial. Registrations that still fail keep their status and error.`,
	RunE: runRepair,
}

func init() {
	repairCmd.Flags().Bool("dry-run", false, "Only list the registrations that need repair")

	rootCmd.AddCommand(repairCmd)
}

func runRepair(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	deps, err := newDependencies()
	if err != nil {
		return err
	}
	defer deps.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	failed, err := deps.registration.ListFailed(ctx)
	if err != nil {
		return err
	}

	if len(failed) == 0 {
		fmt.Fprintln(out, "nothing to repair")
		return nil
	}

	remaining := 0
	for _, p := range failed {
		if dryRun {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", p.ID, p.LoginID, p.Status, p.LastError)
			continue
		}

		account, err := deps.registration.Repair(ctx, p.ID)
		if err != nil {
			remaining++
			fmt.Fprintf(out, "FAIL\t%s\t%s\t%v\n", p.ID, p.LoginID, err)
			continue
		}

		deps.logger.Security().AdminAction("repair", "repair_registration", account.LoginID)
		fmt.Fprintf(out, "OK\t%s\t%s\n", p.ID, account.LoginID)
	}

	if remaining > 0 {
		return fmt.Errorf("%d registrations still need repair", remaining)
	}

	return nil
}
