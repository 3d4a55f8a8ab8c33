package events

import (
	"context"
	"log/slog"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
)

// MultiPublisher delivers each event to several publishers. Failures are
// logged and swallowed: a notification problem never fails the status change.
type MultiPublisher struct {
	publishers []portssvc.EventPublisher
	logger     *slog.Logger
}

var _ portssvc.EventPublisher = (*MultiPublisher)(nil)

func NewMultiPublisher(logger *slog.Logger, publishers ...portssvc.EventPublisher) *MultiPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &MultiPublisher{publishers: publishers, logger: logger}
}

func (m *MultiPublisher) Publish(ctx context.Context, event domain.CashRegisterEvent) error {
	for _, p := range m.publishers {
		if err := p.Publish(ctx, event); err != nil {
			m.logger.Error("Failed to publish cash register event",
				slog.String("event_type", string(event.Type)),
				slog.String("cash_register_id", event.CashRegisterID),
				slog.String("error", err.Error()))
		}
	}
	return nil
}
