package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"github.com/krishnanpiyer/DF-Giving-Tree/internal/store"
)

// Notifier dispatches an availability notification job for an item.
type Notifier interface {
	Dispatch(itemID int)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	webpush  *webpush.Options
	notifier Notifier
}

// NewHandler creates a new API handler. The notifier may be nil when push
// notifications are not configured.
func NewHandler(s store.Store, webpushOptions *webpush.Options, notifier Notifier) *Handler {
	return &Handler{
		store:    s,
		webpush:  webpushOptions,
		notifier: notifier,
	}
}
