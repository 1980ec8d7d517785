package inventory

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/krishnanpiyer/DF-Giving-Tree/config"
	"github.com/krishnanpiyer/DF-Giving-Tree/internal/store"
)

// Service fetches the remote inventory document and seeds the store with the
// parsed items. The fetch happens once at startup; there is no refresh loop
// because item identities are positional and a reload would orphan any
// reservations taken against the previous load.
type Service struct {
	cfg    *config.Config
	store  store.Store
	client *http.Client
}

// NewService creates and initializes a new inventory loader service.
func NewService(cfg *config.Config, s store.Store) *Service {
	return &Service{
		cfg:   cfg,
		store: s,
		client: &http.Client{
			Timeout: cfg.Inventory.Timeout,
		},
	}
}

// Load performs the startup fetch and populates the store. A transport
// failure is logged and leaves the store empty; the service keeps running in
// a degraded state rather than exiting.
func (s *Service) Load(ctx context.Context) {
	if !s.cfg.Inventory.Enabled {
		log.Println("Inventory loader is disabled. Store will stay empty.")
		return
	}

	raw, err := s.fetch(ctx)
	if err != nil {
		log.Printf("Error fetching inventory: %v. Continuing with an empty inventory.", err)
		return
	}

	items := ParseCSV(raw)
	s.store.SetItems(items)
	log.Printf("Inventory loaded: %d items", len(items))
}

// fetch retrieves the raw CSV document from the configured source.
func (s *Service) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.Inventory.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}
