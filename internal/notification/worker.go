package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"github.com/krishnanpiyer/DF-Giving-Tree/internal/model"
	"github.com/krishnanpiyer/DF-Giving-Tree/internal/store"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers notifying subscribers when a device
// becomes available again after its reservation is removed.
type WorkerPool struct {
	size    int
	jobs    chan int
	store   store.Store
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, s store.Store, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int, size), // Buffered channel
		store:   s,
		webpush: webpushOptions,
		sender:  &WebPushSender{}, // Use the real sender by default
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case itemID := <-wp.jobs:
			log.Printf("Worker %d processing item %d", id, itemID)
			wp.sendNotificationsForItem(ctx, itemID)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch sends a job to the worker pool.
func (wp *WorkerPool) Dispatch(itemID int) {
	wp.jobs <- itemID
}

// sendNotificationsForItem looks up the device-type subscriptions for an item
// and sends an availability notice to each.
func (wp *WorkerPool) sendNotificationsForItem(ctx context.Context, itemID int) {
	item, ok := wp.store.Item(itemID)
	if !ok {
		log.Printf("Item %d not found, skipping notifications", itemID)
		return
	}

	subscriptions := wp.store.SubscriptionsForDeviceType(item.DeviceType)
	if len(subscriptions) == 0 {
		return
	}

	log.Printf("Sending %d notifications for item %d", len(subscriptions), itemID)

	label := item.AssetName
	if label == "" {
		label = fmt.Sprintf("item %d", itemID)
	}

	message := fmt.Sprintf("%s (%s) is available again!", label, item.DeviceType)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Expired or revoked subscriptions are dropped from the registry.
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		log.Printf("Subscription %s is gone (status %d), removing", sub.Endpoint, resp.StatusCode)
		wp.store.DeleteSubscription(sub.Endpoint)
		return
	}

	if resp.StatusCode >= 400 {
		log.Printf("Push service returned status %d for %s", resp.StatusCode, sub.Endpoint)
	}
}
