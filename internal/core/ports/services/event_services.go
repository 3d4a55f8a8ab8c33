package services

import (
	"context"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
)

// EventPublisher delivers cash register events to realtime subscribers and downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.CashRegisterEvent) error
}

// EventSubscriber hands out live event channels.
type EventSubscriber interface {
	Subscribe(ctx context.Context) (<-chan domain.CashRegisterEvent, func())
}
