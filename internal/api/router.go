package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/krishnanpiyer/DF-Giving-Tree/config"
	"github.com/krishnanpiyer/DF-Giving-Tree/internal/mw"
	"github.com/krishnanpiyer/DF-Giving-Tree/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, s store.Store, webpushOptions *webpush.Options, notifier Notifier) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, webpushOptions, notifier)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	// Listings are cached briefly; every successful mutation flushes the
	// cache so the next listing reflects the new reservation state.
	cacheStore := cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	caching := mw.Cache(cacheStore, cfg.CacheTTL)
	invalidating := mw.Invalidate(cacheStore)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// GET /api/inventory?search=
		api.GET("/inventory", caching, handler.GetInventory)

		// GET /api/shelters
		api.GET("/shelters", caching, handler.GetShelters)

		// Reservation operations on a single item
		api.GET("/inventory/:item_id/reservation", handler.GetReservationSeed)
		api.POST("/inventory/:item_id/reservation", invalidating, handler.PostReservation)
		api.DELETE("/inventory/:item_id/reservation", invalidating, handler.DeleteReservation)

		// Availability notifications
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
