// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const loginSecretEnv = "TENANT_DIRECTORY_SECRET"

var loginCmd = &cobra.Command{
	Use:   "login [login-id]",
	Short: "Exchange a login and secret for a bearer token",
	Long:  "Prints a bearer token for the other client commands. The secret is read from $" + loginSecretEnv + ".",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := os.Getenv(loginSecretEnv)
		if secret == "" {
			return fmt.Errorf("%s is not set", loginSecretEnv)
		}

		resp, err := getClient().Login(context.Background(), args[0], secret)
		if err != nil {
			return fmt.Errorf("failed to log in: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Logged in as %s (%s), tenant database %s, expires %s\n",
			resp.Session.LoginID, resp.Session.Role, resp.Session.TenantDB, resp.ExpiresAt.Format("2006-01-02 15:04"))
		fmt.Println(resp.Token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
