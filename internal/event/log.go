package event

import (
	"context"

	"github.com/sirupsen/logrus"
)

type logPublisher struct {
	logger logrus.FieldLogger
}

// NewLogPublisher builds publisher which only logs events, used when no brokers are configured
func NewLogPublisher(logger logrus.FieldLogger) Publisher {
	return &logPublisher{logger: logger}
}

func (p *logPublisher) Publish(_ context.Context, e Event) error {
	p.logger.WithFields(logrus.Fields{
		"topic":      e.Topic(),
		"type":       e.Type,
		"id":         e.ID,
		"occurredAt": e.OccurredAt,
	}).Info("event emitted")
	return nil
}

func (p *logPublisher) Close() error {
	return nil
}
