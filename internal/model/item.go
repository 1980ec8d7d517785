package model

// Availability is the derived reservation flag of an item. It is unavailable
// exactly while a 1st-choice reservation exists on the item.
type Availability string

const (
	Available   Availability = "available"
	Unavailable Availability = "unavailable"
)

// InventoryItem represents one physical device from the donation inventory.
// Descriptive fields are carried verbatim from the source CSV; reservation
// fields start empty and are mutated in the store.
type InventoryItem struct {
	ID                int          `json:"id"` // ordinal position at load time, not stable across reloads
	AssetName         string       `json:"assetName"`
	DeviceType        string       `json:"deviceType"`
	Make              string       `json:"make"`
	Model             string       `json:"model"`
	Year              string       `json:"year"`
	Specs             string       `json:"specs"`
	ShelterName       string       `json:"shelterName"`
	ClientPreference1 string       `json:"clientPreference1"`
	ClientPreference2 string       `json:"clientPreference2"`
	ClientPreference3 string       `json:"clientPreference3"`
	Availability      Availability `json:"availability"`
}

// ReservationSeed carries the current 1st-choice occupant of an item, used to
// pre-fill an edit form when a reservation is being changed.
type ReservationSeed struct {
	ShelterName string `json:"shelterName"`
	ClientID    string `json:"clientId"`
	Preference  int    `json:"preference"`
}
