package pubsub

import (
	"sync"

	"github.com/mishabunte/walletcore/internal/core/ports"
	"github.com/mishabunte/walletcore/pkg/stats"
	log "github.com/sirupsen/logrus"
)

const (
	// AnyTopic subscribes to every published event.
	AnyTopic = "*"

	DefaultBufferSize = 32
)

type service struct {
	lock       *sync.RWMutex
	subs       map[string]*subscription
	bufferSize int
	closed     bool
}

// NewService returns an in-process broker. Each subscription buffers up to
// bufferSize events, further events are dropped until the subscriber drains
// its channel.
func NewService(bufferSize int) ports.PubSub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &service{
		lock:       &sync.RWMutex{},
		subs:       make(map[string]*subscription),
		bufferSize: bufferSize,
	}
}

func (s *service) Subscribe(topic string) ports.Subscription {
	s.lock.Lock()
	defer s.lock.Unlock()

	sub := newSubscription(topic, s.bufferSize)
	if s.closed {
		close(sub.events)
		return sub
	}
	s.subs[sub.id] = sub
	return sub
}

func (s *service) Unsubscribe(id string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	sub, ok := s.subs[id]
	if !ok {
		return
	}
	delete(s.subs, id)
	close(sub.events)
}

func (s *service) Publish(topic string, payload interface{}) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	event := ports.Event{Topic: topic, Payload: payload}
	for _, sub := range s.subs {
		if !sub.matches(topic) {
			continue
		}
		select {
		case sub.events <- event:
			stats.PublishedEvents.WithLabelValues(topic).Inc()
		default:
			stats.DroppedEvents.WithLabelValues(topic).Inc()
			log.Debugf("pubsub: dropped %s event for slow subscriber %s", topic, sub.id)
		}
	}
}

func (s *service) Close() {
	s.lock.Lock()
	defer s.lock.Unlock()

	for id, sub := range s.subs {
		close(sub.events)
		delete(s.subs, id)
	}
	s.closed = true
}
