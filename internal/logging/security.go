// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"

	"go.uber.org/zap"
)

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

// SecurityLogger writes events using the OWASP logging vocabulary, e.g. authn_login_fail:USER.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) event(level string, event string, description string, fields ...zap.Field) {
	fields = append(
		fields,
		zap.String("type", "security"),
		zap.String("event", event),
		zap.String("level", level),
		zap.String("description", description),
	)
	s.l.Info("security event", fields...)
}

func (s *SecurityLogger) SystemStartup() {
	s.event("WARN", "sys_startup", "tenant directory starting")
}

func (s *SecurityLogger) SystemShutdown() {
	s.event("WARN", "sys_shutdown", "tenant directory shutting down")
}

func (s *SecurityLogger) AuthnSuccess(user string) {
	s.event("INFO", fmt.Sprintf("authn_login_success:%s", user), fmt.Sprintf("user %s logged in", user))
}

func (s *SecurityLogger) AuthnFailure(user, reason string) {
	s.event(
		"WARN",
		fmt.Sprintf("authn_login_fail:%s", user),
		fmt.Sprintf("user %s login failed", user),
		zap.String("reason", reason),
	)
}

func (s *SecurityLogger) AuthzFailure(user, resource string) {
	s.event(
		"CRITICAL",
		fmt.Sprintf("authz_fail:%s,%s", user, resource),
		fmt.Sprintf("user %s attempted to access %s without entitlement", user, resource),
	)
}

func (s *SecurityLogger) AdminAction(actor, action, target string) {
	s.event(
		"WARN",
		fmt.Sprintf("%s:%s,%s", action, actor, target),
		fmt.Sprintf("user %s performed %s on %s", actor, action, target),
	)
}
