package store

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/krishnanpiyer/DF-Giving-Tree/internal/model"
)

// Validation and lookup failures surfaced to callers. These are user-facing
// rejections, not system faults; no state changes when one is returned.
var (
	ErrItemNotFound    = errors.New("inventory item not found")
	ErrMissingField    = errors.New("shelter name and client id are required")
	ErrInvalidRank     = errors.New("preference rank must be 1, 2 or 3")
	ErrPreferenceLimit = errors.New("preference limit reached for this device type")
)

// Store defines the interface for all reservation state operations.
type Store interface {
	SetItems(items []model.InventoryItem)
	Items() []model.InventoryItem
	Item(itemID int) (model.InventoryItem, bool)
	Search(term string) []model.InventoryItem

	Reserve(itemID int, shelterName, clientID string, rank int) error
	ChangeSeed(itemID int) (model.ReservationSeed, error)
	RemoveReservation(itemID int) (bool, error)

	UpsertSubscription(sub model.PushSubscription)
	Subscription(endpoint string) (model.PushSubscription, bool)
	DeleteSubscription(endpoint string)
	SubscriptionsForDeviceType(deviceType string) []model.PushSubscription
}

// memoryStore implements Store over plain in-memory state. Reservations do
// not survive a restart; that is a deliberate property of the system.
//
// The item slice is replaced wholesale on every mutation, so readers holding
// a snapshot never observe a half-applied operation.
type memoryStore struct {
	mu    sync.RWMutex
	items []model.InventoryItem

	// index maps "shelter-client" -> device type -> claimed item ids. It
	// exists only to enforce the two-items-per-device-type limit. Ids are
	// deduplicated on append so re-reserving the same item cannot inflate
	// the count. Emptied lists are left in place.
	index map[string]map[string][]string

	subs map[string]model.PushSubscription
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() Store {
	return &memoryStore{
		index: make(map[string]map[string][]string),
		subs:  make(map[string]model.PushSubscription),
	}
}

// reservationKey is the composite identity of a shelter+client pair.
func reservationKey(shelterName, clientID string) string {
	return shelterName + "-" + clientID
}

// SetItems replaces the whole collection. Called once by the loader at
// startup; the reservation index is reset alongside since item ids are
// positional and tied to a single load.
func (s *memoryStore) SetItems(items []model.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]model.InventoryItem, len(items))
	copy(s.items, items)
	s.index = make(map[string]map[string][]string)
}

// Items returns a snapshot copy of the collection.
func (s *memoryStore) Items() []model.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.InventoryItem, len(s.items))
	copy(out, s.items)
	return out
}

// Item returns the item with the given id.
func (s *memoryStore) Item(itemID int) (model.InventoryItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.indexOf(itemID)
	if !ok {
		return model.InventoryItem{}, false
	}
	return s.items[i], true
}

// searchFields is the explicit list of fields a text search runs over. Keep
// it in sync with the InventoryItem schema; new fields are not searchable
// until added here.
var searchFields = []func(model.InventoryItem) string{
	func(it model.InventoryItem) string { return strconv.Itoa(it.ID) },
	func(it model.InventoryItem) string { return it.AssetName },
	func(it model.InventoryItem) string { return it.DeviceType },
	func(it model.InventoryItem) string { return it.Make },
	func(it model.InventoryItem) string { return it.Model },
	func(it model.InventoryItem) string { return it.Year },
	func(it model.InventoryItem) string { return it.Specs },
	func(it model.InventoryItem) string { return it.ShelterName },
	func(it model.InventoryItem) string { return it.ClientPreference1 },
	func(it model.InventoryItem) string { return it.ClientPreference2 },
	func(it model.InventoryItem) string { return it.ClientPreference3 },
	func(it model.InventoryItem) string { return string(it.Availability) },
}

// Search returns the items whose fields contain the term, case-insensitively.
// An empty term matches everything.
func (s *memoryStore) Search(term string) []model.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term = strings.ToLower(term)
	out := make([]model.InventoryItem, 0, len(s.items))
	for _, it := range s.items {
		for _, f := range searchFields {
			if strings.Contains(strings.ToLower(f(it)), term) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Reserve records a ranked client preference on an item on behalf of a
// shelter. A 1st-choice reservation marks the item unavailable; 2nd and 3rd
// choices never touch availability. A shelter+client pair may claim at most
// two items of the same device type, cumulatively across ranks.
func (s *memoryStore) Reserve(itemID int, shelterName, clientID string, rank int) error {
	if shelterName == "" || clientID == "" {
		return ErrMissingField
	}
	if rank < 1 || rank > 3 {
		return ErrInvalidRank
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(itemID)
	if !ok {
		return ErrItemNotFound
	}
	item := s.items[i]

	key := reservationKey(shelterName, clientID)
	claimed := s.index[key][item.DeviceType]
	if len(claimed) >= 2 {
		return ErrPreferenceLimit
	}

	item.ShelterName = shelterName
	switch rank {
	case 1:
		item.ClientPreference1 = clientID
		item.Availability = model.Unavailable
	case 2:
		item.ClientPreference2 = clientID
	case 3:
		item.ClientPreference3 = clientID
	}

	next := make([]model.InventoryItem, len(s.items))
	copy(next, s.items)
	next[i] = item
	s.items = next

	if s.index[key] == nil {
		s.index[key] = make(map[string][]string)
	}
	id := strconv.Itoa(itemID)
	if !contains(claimed, id) {
		s.index[key][item.DeviceType] = append(claimed, id)
	}
	return nil
}

// ChangeSeed returns the current 1st-choice occupant of an item as seed
// values for an edit form. Pure read; the seed is empty when the item has no
// 1st-choice reservation.
func (s *memoryStore) ChangeSeed(itemID int) (model.ReservationSeed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.indexOf(itemID)
	if !ok {
		return model.ReservationSeed{}, ErrItemNotFound
	}
	item := s.items[i]
	return model.ReservationSeed{
		ShelterName: item.ShelterName,
		ClientID:    item.ClientPreference1,
		Preference:  1,
	}, nil
}

// RemoveReservation wipes the whole reservation state of an item. Removal is
// all-or-nothing: even when only a 2nd or 3rd choice was set, every
// reservation field is cleared and the item becomes available again.
//
// The index entry is located from the item's stored shelter and 1st-choice
// client, not from whoever triggered the removal. When no 1st choice was set
// the computed key matches nothing and the index is left untouched.
//
// The returned bool reports whether the item transitioned back to available,
// which drives push notifications.
func (s *memoryStore) RemoveReservation(itemID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(itemID)
	if !ok {
		return false, ErrItemNotFound
	}
	prev := s.items[i]

	item := prev
	item.ShelterName = ""
	item.ClientPreference1 = ""
	item.ClientPreference2 = ""
	item.ClientPreference3 = ""
	item.Availability = model.Available

	next := make([]model.InventoryItem, len(s.items))
	copy(next, s.items)
	next[i] = item
	s.items = next

	key := reservationKey(prev.ShelterName, prev.ClientPreference1)
	if byType, ok := s.index[key]; ok {
		byType[prev.DeviceType] = remove(byType[prev.DeviceType], strconv.Itoa(itemID))
	}

	return prev.Availability == model.Unavailable, nil
}

// indexOf returns the slice position of the item with the given id. Ids are
// assigned positionally at load time, but a lookup must not trust id ==
// position, so the slice is scanned.
func (s *memoryStore) indexOf(itemID int) (int, bool) {
	for i := range s.items {
		if s.items[i].ID == itemID {
			return i, true
		}
	}
	return 0, false
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
