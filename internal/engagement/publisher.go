package engagement

import (
	"context"
	"log"
	"time"
)

// Sink delivers a single engagement event.
type Sink interface {
	Send(ctx context.Context, ev Event, who Identity) error
}

// Publisher turns like/share clicks into events. It never returns an error:
// callers only learn whether the sink accepted the event.
type Publisher struct {
	sink   Sink
	logger *log.Logger
	now    func() time.Time
}

func NewPublisher(sink Sink, logger *log.Logger) *Publisher {
	if logger == nil {
		logger = log.Default()
	}

	return &Publisher{
		sink:   sink,
		logger: logger,
		now:    time.Now,
	}
}

// Publish sends an event and reports whether it was accepted.
func (p *Publisher) Publish(ctx context.Context, eventType EventType, articleID string, who Identity) bool {
	ev := NewEvent(eventType, articleID, p.now())

	if err := p.sink.Send(ctx, ev, who); err != nil {
		p.logger.Printf("engagement: %s for article %s failed: %v", eventType, articleID, err)
		return false
	}

	p.logger.Printf("engagement: %s for article %s sent (%s)", eventType, articleID, ev.SessionID)
	return true
}
