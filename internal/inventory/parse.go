package inventory

import (
	"strings"

	"github.com/krishnanpiyer/DF-Giving-Tree/internal/model"
)

// Column positions in the source CSV. Column 2 is an internal tag the
// inventory sheet carries that we do not surface.
const (
	colAssetName = iota
	colDeviceType
	_ // skipped
	colMake
	colModel
	colYear
	colSpecs
	colAvailability
)

// ParseCSV turns the raw inventory document into inventory items. The first
// line is a banner and the second a header row; both are skipped. Every later
// line is one record, split on commas and mapped by fixed column index.
//
// Item ids are the zero-based position within the record lines, so reordering
// the source document changes identities. Lines with fewer columns than
// expected yield empty fields rather than an error; a stricter parser can be
// substituted upstream if the sheet ever needs validation.
func ParseCSV(raw string) []model.InventoryItem {
	lines := strings.Split(raw, "\n")
	if len(lines) <= 2 {
		return nil
	}

	records := lines[2:]
	items := make([]model.InventoryItem, 0, len(records))
	for i, line := range records {
		values := strings.Split(line, ",")

		availability := model.Available
		if strings.EqualFold(strings.TrimSpace(field(values, colAvailability)), "unavailable") {
			availability = model.Unavailable
		}

		items = append(items, model.InventoryItem{
			ID:           i,
			AssetName:    field(values, colAssetName),
			DeviceType:   field(values, colDeviceType),
			Make:         field(values, colMake),
			Model:        field(values, colModel),
			Year:         field(values, colYear),
			Specs:        field(values, colSpecs),
			Availability: availability,
		})
	}
	return items
}

// field returns the column at idx, or "" when the line is short.
func field(values []string, idx int) string {
	if idx >= len(values) {
		return ""
	}
	return values[idx]
}
