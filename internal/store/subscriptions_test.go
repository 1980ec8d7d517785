package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishnanpiyer/DF-Giving-Tree/internal/model"
)

func TestSubscriptionLifecycle(t *testing.T) {
	s := NewMemoryStore()

	sub := model.PushSubscription{
		Endpoint:    "https://push.example.com/abc",
		P256DH:      "p256dh-key",
		Auth:        "auth-secret",
		DeviceTypes: []string{"Laptop"},
	}
	s.UpsertSubscription(sub)

	got, ok := s.Subscription(sub.Endpoint)
	require.True(t, ok)
	assert.Equal(t, sub, got)

	// Upsert replaces by endpoint.
	sub.DeviceTypes = []string{"Laptop", "Tablet"}
	s.UpsertSubscription(sub)
	got, _ = s.Subscription(sub.Endpoint)
	assert.Equal(t, []string{"Laptop", "Tablet"}, got.DeviceTypes)

	s.DeleteSubscription(sub.Endpoint)
	_, ok = s.Subscription(sub.Endpoint)
	assert.False(t, ok)
}

func TestSubscriptionsForDeviceType(t *testing.T) {
	s := NewMemoryStore()

	s.UpsertSubscription(model.PushSubscription{
		Endpoint:    "https://push.example.com/laptops",
		DeviceTypes: []string{"Laptop"},
	})
	s.UpsertSubscription(model.PushSubscription{
		Endpoint:    "https://push.example.com/both",
		DeviceTypes: []string{"Laptop", "Tablet"},
	})

	laptops := s.SubscriptionsForDeviceType("Laptop")
	assert.Len(t, laptops, 2)

	tablets := s.SubscriptionsForDeviceType("Tablet")
	require.Len(t, tablets, 1)
	assert.Equal(t, "https://push.example.com/both", tablets[0].Endpoint)

	assert.Empty(t, s.SubscriptionsForDeviceType("Phone"))
}
