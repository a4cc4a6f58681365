package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/smallbiznis/valora-web/internal/adapter/cache"
	"github.com/smallbiznis/valora-web/internal/client"
	"github.com/smallbiznis/valora-web/internal/config"
	"github.com/smallbiznis/valora-web/internal/domain"
	"github.com/smallbiznis/valora-web/internal/redirect"
	"github.com/smallbiznis/valora-web/internal/session"
	"github.com/smallbiznis/valora-web/internal/token"
)

var (
	// ErrInvalidToken covers every token-level rejection. The concrete
	// reason is logged for telemetry but never exposed to the client, so
	// responses cannot be used as an oracle on token validity.
	ErrInvalidToken = errors.New("invalid reset token")
	// ErrAccountLookup reports a failed account fetch.
	ErrAccountLookup = errors.New("account lookup failed")
	// ErrPasswordUpdate reports a failed password update.
	ErrPasswordUpdate = errors.New("password update failed")
)

// ResetResult is the terminal response of a completed password reset.
type ResetResult struct {
	RedirectURL string
	Cookie      *http.Cookie
}

// ResetService drives the password-reset confirmation flow: it verifies the
// emailed token, updates the password through the account service, and
// issues the post-reset session and redirect.
type ResetService struct {
	codec     *token.Codec
	accounts  client.AccountClient
	companies client.CompanyClient
	sessions  *session.Issuer
	throttle  cache.ThrottleStore
	cfg       config.Config
	logger    *zap.Logger
	tracer    trace.Tracer
}

// NewResetService wires dependencies.
func NewResetService(codec *token.Codec, accounts client.AccountClient, companies client.CompanyClient, sessions *session.Issuer, throttle cache.ThrottleStore, cfg config.Config, logger *zap.Logger) *ResetService {
	return &ResetService{
		codec:     codec,
		accounts:  accounts,
		companies: companies,
		sessions:  sessions,
		throttle:  throttle,
		cfg:       cfg,
		logger:    logger,
		tracer:    otel.Tracer("github.com/smallbiznis/valora-web/internal/service"),
	}
}

// Confirm verifies the token for the GET half of the flow. The returned
// claims let the page re-embed the original token string, which is the only
// state the subsequent POST carries.
func (s *ResetService) Confirm(ctx context.Context, tokenString string) (token.Claims, error) {
	_, span := s.startSpan(ctx, "ResetService.Confirm")
	defer span.End()

	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		span.RecordError(err)
		s.log().Info("reset token rejected", zap.String("reason", err.Error()))
		return token.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// CompleteReset consumes the token: it re-verifies, updates the account
// password, and only after the update acknowledges does it mint the session
// cookie and compute the role-based redirect. A still-valid token may be
// submitted again; each POST independently re-verifies and re-updates.
func (s *ResetService) CompleteReset(ctx context.Context, tokenString, password string) (*ResetResult, error) {
	ctx, span := s.startSpan(ctx, "ResetService.CompleteReset")
	defer span.End()

	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		span.RecordError(err)
		s.log().Info("reset token rejected", zap.String("reason", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	account, err := s.accounts.GetAccount(ctx, claims.SubjectID)
	if err != nil {
		span.RecordError(err)
		s.log().Error("reset account lookup failed", zap.String("user_id", claims.SubjectID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrAccountLookup, err)
	}

	if err := s.accounts.UpdatePassword(ctx, account.ID, password); err != nil {
		span.RecordError(err)
		s.log().Error("reset password update failed", zap.String("user_id", account.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPasswordUpdate, err)
	}

	summary := s.lookupMemberships(ctx, account.ID)

	sessionToken, err := s.sessions.Issue(account.ID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("issue session: %w", err)
	}

	destination := redirect.Select(summary)
	s.audit("password.reset.success",
		"user_id", account.ID,
		"destination", destination.Subdomain,
	)

	return &ResetResult{
		RedirectURL: destination.URL(s.cfg.Scheme(), s.cfg.ExternalApex),
		Cookie:      s.sessions.Cookie(sessionToken),
	}, nil
}

// RequestReset asks the account service to send a fresh reset link. The
// outcome is intentionally neutral: callers learn nothing about whether the
// email maps to an account, and repeated requests for the same address are
// throttled.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	ctx, span := s.startSpan(ctx, "ResetService.RequestReset")
	defer span.End()

	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, normalized, s.cfg.ResetRequestInterval)
		if err != nil {
			// Redis being down must not block password recovery.
			s.log().Warn("reset throttle unavailable", zap.Error(err))
		} else if !allowed {
			s.log().Info("reset request suppressed", zap.Duration("interval", s.cfg.ResetRequestInterval))
			return nil
		}
	}

	if err := s.accounts.RequestPasswordReset(ctx, normalized); err != nil {
		span.RecordError(err)
		s.log().Error("reset request failed", zap.Error(err))
		return nil
	}

	s.audit("password.reset.requested")
	return nil
}

// lookupMemberships queries the company service for the admin-of and
// worker-of lists. A lookup failure downgrades to "no memberships": the
// password change already committed, so the user still gets a session and a
// safe default destination.
func (s *ResetService) lookupMemberships(ctx context.Context, userID string) domain.MembershipSummary {
	adminOf, err := s.companies.GetAdminOf(ctx, userID)
	if err != nil {
		s.log().Warn("admin membership lookup failed", zap.String("user_id", userID), zap.Error(err))
	}
	workerOf, err := s.companies.GetWorkerOf(ctx, userID)
	if err != nil {
		s.log().Warn("worker membership lookup failed", zap.String("user_id", userID), zap.Error(err))
	}
	return domain.SummarizeMemberships(adminOf, workerOf)
}

func (s *ResetService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if s == nil || s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, name)
}

func (s *ResetService) audit(event string, attrs ...any) {
	logger := s.log()
	if logger == nil {
		return
	}
	fields := make([]zap.Field, 0, len(attrs)/2+2)
	fields = append(fields, zap.String("event", event), zap.Time("timestamp", time.Now().UTC()))
	for i := 0; i+1 < len(attrs); i += 2 {
		key, ok := attrs[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, attrs[i+1]))
	}
	logger.Info("audit", fields...)
}

func (s *ResetService) log() *zap.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return zap.L()
}
