package pubsub

import (
	"github.com/google/uuid"
	"github.com/mishabunte/walletcore/internal/core/ports"
)

type subscription struct {
	id     string
	topic  string
	events chan ports.Event
}

func newSubscription(topic string, bufferSize int) *subscription {
	return &subscription{
		id:     uuid.New().String(),
		topic:  topic,
		events: make(chan ports.Event, bufferSize),
	}
}

func (s *subscription) Id() string {
	return s.id
}

func (s *subscription) Topic() string {
	return s.topic
}

func (s *subscription) Events() <-chan ports.Event {
	return s.events
}

// matches tells whether events of the given topic must be delivered to the
// subscription.
func (s *subscription) matches(topic string) bool {
	return s.topic == AnyTopic || s.topic == topic
}
