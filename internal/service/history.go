package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"access-denied-lite/internal/apperr"
	"access-denied-lite/internal/logger"
	"access-denied-lite/internal/model"
)

const (
	HistoryWindow = 10 * time.Minute
	HistoryLimit  = 5

	UnknownApp = "Unknown App"
	NoAppID    = "No AppId"

	ReasonGateway = "Gateway"
	ReasonWARP    = "WARP"
	ReasonOther   = "Other"
)

type UserResolver interface {
	ResolveUserDetails(ctx context.Context, assertion string) (*model.UserDetails, error)
}

type LoginSource interface {
	FailedLogins(ctx context.Context, q model.LoginQuery) ([]model.LoginEvent, error)
	AppName(ctx context.Context, appID string) (string, error)
}

// HistoryReporter lists the user's most recent failed logins.
type HistoryReporter struct {
	users  UserResolver
	logins LoginSource
	now    func() time.Time
	log    zerolog.Logger
}

func NewHistoryReporter(users UserResolver, logins LoginSource, log zerolog.Logger) *HistoryReporter {
	return NewHistoryReporterWithNow(users, logins, log, time.Now)
}

func NewHistoryReporterWithNow(users UserResolver, logins LoginSource, log zerolog.Logger, now func() time.Time) *HistoryReporter {
	return &HistoryReporter{
		users:  users,
		logins: logins,
		now:    now,
		log:    logger.Component(log, "history"),
	}
}

func (h *HistoryReporter) FetchLoginHistory(ctx context.Context, assertion string) (history *model.LoginHistory, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Msg("login history panicked")
			history, err = nil, apperr.Internal(fmt.Errorf("%v", r))
		}
	}()

	details, err := h.users.ResolveUserDetails(ctx, assertion)
	if err != nil {
		return nil, apperr.From(err)
	}
	if details.Resolved == nil || details.Resolved.UserUUID == "" {
		return nil, apperr.New(http.StatusBadRequest, "user_uuid not found")
	}

	now := h.now()
	events, err := h.logins.FailedLogins(ctx, model.LoginQuery{
		UserUUID: details.Resolved.UserUUID,
		From:     now.Add(-HistoryWindow),
		To:       now,
		Limit:    HistoryLimit,
	})
	if err != nil {
		return nil, apperr.From(err)
	}

	names := h.resolveAppNames(ctx, events)
	out := make([]model.LoginEvent, len(events))
	for i, ev := range events {
		ev.ApplicationName = names[i]
		ev.Reason = FailureReason(ev.Dimensions)
		out[i] = ev
	}
	return &model.LoginHistory{LoginHistory: out}, nil
}

// resolveAppNames looks up every app id concurrently. names[i] always
// belongs to events[i]; a failed lookup only affects its own slot.
func (h *HistoryReporter) resolveAppNames(ctx context.Context, events []model.LoginEvent) []string {
	names := make([]string, len(events))

	var g errgroup.Group
	for i, ev := range events {
		i := i
		appID := ev.Dimensions.AppID
		if appID == "" {
			names[i] = NoAppID
			continue
		}
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					h.log.Error().Interface("panic", r).Str("app_id", appID).Msg("app name lookup panicked")
					names[i] = UnknownApp
				}
			}()

			name, err := h.logins.AppName(ctx, appID)
			if err != nil {
				h.log.Warn().Err(err).Str("app_id", appID).Msg("app name lookup failed")
				name = UnknownApp
			}
			names[i] = name
			return nil
		})
	}
	_ = g.Wait()

	return names
}

// FailureReason labels a failed login. Gateway is checked before WARP; a flag
// that is absent does not count as disabled.
func FailureReason(d model.LoginDimensions) string {
	switch {
	case d.HasGatewayEnabled != nil && *d.HasGatewayEnabled == 0:
		return ReasonGateway
	case d.HasWarpEnabled != nil && *d.HasWarpEnabled == 0:
		return ReasonWARP
	default:
		return ReasonOther
	}
}
