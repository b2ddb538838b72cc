package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-console/internal/events"
)

// AuditService records who used the terminal and when.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	terminalID string
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, terminalID string) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
		terminalID: terminalID,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventSessionHydrated, a.handleHydrated)
	a.dispatcher.Subscribe(events.EventLoggedIn, a.handleLoggedIn)
	a.dispatcher.Subscribe(events.EventLoggedOut, a.handleLoggedOut)
	a.dispatcher.Subscribe(events.EventForcedLogout, a.handleForcedLogout)
}

func (a *AuditService) handleHydrated(_ context.Context, event events.Event) error {
	if event.Subject == "" {
		a.logger.Info("SessionHydrated", a.fields(event)...)
		return nil
	}
	a.logger.Info("SessionRestored", a.fields(event)...)
	return nil
}

func (a *AuditService) handleLoggedIn(_ context.Context, event events.Event) error {
	a.logger.Info("LoggedIn", a.fields(event)...)
	return nil
}

func (a *AuditService) handleLoggedOut(_ context.Context, event events.Event) error {
	a.logger.Info("LoggedOut", a.fields(event)...)
	return nil
}

func (a *AuditService) handleForcedLogout(_ context.Context, event events.Event) error {
	a.logger.Warn("ForcedLogout", a.fields(event)...)
	return nil
}

func (a *AuditService) fields(event events.Event) []zap.Field {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("terminal_id", a.terminalID),
		zap.Time("at", event.Timestamp),
	}
	if event.Subject != "" {
		fields = append(fields, zap.String("subject", event.Subject), zap.String("role", event.Role.String()))
	}
	if event.Reason != "" {
		fields = append(fields, zap.String("reason", event.Reason))
	}
	return fields
}
