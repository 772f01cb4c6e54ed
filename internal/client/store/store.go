// Package store is a small publish-subscribe state container. It replaces
// ad-hoc cross-component event broadcasting with explicit subscriptions:
// interested components register a handler per topic and get called
// synchronously on publish.
package store

import "sync"

// Topic names a stream of change notifications.
type Topic string

const (
	// TopicFavoritesChanged fires after a favourite toggle settles.
	TopicFavoritesChanged Topic = "favorites.changed"

	// TopicAdsUpdated fires after the user's listings view-models change.
	TopicAdsUpdated Topic = "ads.updated"
)

// Store dispatches published payloads to subscribers of the same topic.
// Dispatch is synchronous and runs in the publisher's goroutine; handlers
// should return quickly. No ordering is guaranteed across topics.
type Store struct {
	mu     sync.Mutex
	nextID int
	subs   map[Topic]map[int]func(payload any)
}

func New() *Store {
	return &Store{subs: make(map[Topic]map[int]func(any))}
}

// Subscribe registers fn for topic and returns an unsubscribe function.
// Unsubscribing twice is a no-op.
func (s *Store) Subscribe(topic Topic, fn func(payload any)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs[topic] == nil {
		s.subs[topic] = make(map[int]func(any))
	}
	id := s.nextID
	s.nextID++
	s.subs[topic][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[topic], id)
	}
}

// Publish delivers payload to every current subscriber of topic.
func (s *Store) Publish(topic Topic, payload any) {
	s.mu.Lock()
	handlers := make([]func(any), 0, len(s.subs[topic]))
	for _, fn := range s.subs[topic] {
		handlers = append(handlers, fn)
	}
	s.mu.Unlock()

	for _, fn := range handlers {
		fn(payload)
	}
}
