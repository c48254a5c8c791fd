// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/tenant-directory/pkg/authentication"
	"github.com/canonical/tenant-directory/pkg/status"
	"github.com/canonical/tenant-directory/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		main()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	deps, err := newDependencies()
	if err != nil {
		return err
	}
	defer deps.Close()

	specs := deps.specs
	logger := deps.logger
	tracer := deps.tracer
	monitor := deps.monitor

	logger.Debugf("env vars: %v", specs)

	signingKey, err := authentication.LoadSigningKey(specs.SessionSigningKeyFile)
	if err != nil {
		return err
	}
	if specs.SessionSigningKeyFile == "" {
		logger.Warn("SESSION_SIGNING_KEY_FILE not set, using an ephemeral signing key")
	}

	issuer := authentication.NewTokenIssuer(signingKey, specs.SessionIssuer, specs.SessionTTL, tracer, monitor, logger)
	verifier := authentication.NewJWTVerifier(&signingKey.PublicKey, specs.SessionIssuer, tracer, monitor, logger)
	guard := authentication.NewMiddleware(verifier, tracer, monitor, logger)

	router := web.NewRouter(
		web.Services{
			Registration:   deps.registration,
			Authentication: authentication.NewService(deps.storage, deps.hasher, specs.LoginLockoutThreshold, tracer, monitor, logger),
			Issuer:         issuer,
			Resets:         deps.resets,
			Accounts:       deps.accounts,
			Dependencies: map[string]status.PingerInterface{
				"directory": deps.directoryDB,
				"tenant":    deps.tenantDB,
			},
		},
		guard,
		specs.CORSAllowedOrigins,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func main() {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
