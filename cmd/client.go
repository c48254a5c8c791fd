// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"os"
	"strings"
)

var (
	httpEndpoint string
	accessToken  string
)

const tokenEnv = "TENANT_DIRECTORY_TOKEN"

// getClient builds an API client from the --endpoint and --token flags,
// falling back on TENANT_DIRECTORY_TOKEN for the bearer token.
func getClient() *directoryClient {
	token := accessToken
	if token == "" {
		token = os.Getenv(tokenEnv)
	}

	endpoint := httpEndpoint
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "http://" + endpoint
	}

	return newDirectoryClient(strings.TrimSuffix(endpoint, "/"), token)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpEndpoint, "endpoint", "localhost:8080", "Tenant directory HTTP endpoint")
	rootCmd.PersistentFlags().StringVar(&accessToken, "token", "", "Bearer token, defaults to $"+tokenEnv)
}
