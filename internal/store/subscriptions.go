package store

import "github.com/krishnanpiyer/DF-Giving-Tree/internal/model"

// UpsertSubscription creates or replaces a subscription keyed by its
// endpoint.
func (s *memoryStore) UpsertSubscription(sub model.PushSubscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub.Endpoint] = sub
}

// Subscription returns the subscription registered for an endpoint.
func (s *memoryStore) Subscription(endpoint string) (model.PushSubscription, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subs[endpoint]
	return sub, ok
}

// DeleteSubscription removes a subscription. Unknown endpoints are a no-op.
func (s *memoryStore) DeleteSubscription(endpoint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, endpoint)
}

// SubscriptionsForDeviceType returns every subscription interested in the
// given device type.
func (s *memoryStore) SubscriptionsForDeviceType(deviceType string) []model.PushSubscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.PushSubscription
	for _, sub := range s.subs {
		for _, dt := range sub.DeviceTypes {
			if dt == deviceType {
				out = append(out, sub)
				break
			}
		}
	}
	return out
}
