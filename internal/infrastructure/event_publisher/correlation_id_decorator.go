package event_publisher

import (
	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/message"
)

// CorrelationPublisherDecorator stamps every outgoing message with the
// correlation id from its context, so an order event and the confirmation
// command it triggers share one id across the log stream.
type CorrelationPublisherDecorator struct {
	message.Publisher
}

// Publish sets the "correlation_id" metadata key read back by the
// subscriber-side correlation middleware.
func (c CorrelationPublisherDecorator) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		msg.Metadata.Set("correlation_id", log.CorrelationIDFromContext(msg.Context()))
	}
	return c.Publisher.Publish(topic, messages...)
}
