package service

import (
	"context"

	"ai-rooms-be/internal/pkg/logger"
	"ai-rooms-be/pkg/events"
	pktNats "ai-rooms-be/pkg/nats"
)

// IEventAuditService records every domain event flowing through the bus.
// It gives operators one durable trail of what the rooms and the AI
// teammate did, independent of request logs.
type IEventAuditService interface {
	Start() error
}

type eventAuditService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewEventAuditService(subscriber *pktNats.Subscriber, log logger.ILogger) IEventAuditService {
	return &eventAuditService{
		subscriber: subscriber,
		logger:     log,
	}
}

func (s *eventAuditService) Start() error {
	return s.subscriber.Subscribe("events.>", "event-audit", func(ctx context.Context, event events.Event) error {
		s.logger.Info("EventAudit", event.EventType(), event.Payload())
		return nil
	})
}
