package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishnanpiyer/DF-Giving-Tree/internal/model"
	"github.com/krishnanpiyer/DF-Giving-Tree/internal/store"
)

// recordingNotifier captures dispatched item ids.
type recordingNotifier struct {
	dispatched []int
}

func (n *recordingNotifier) Dispatch(itemID int) {
	n.dispatched = append(n.dispatched, itemID)
}

func seedItems() []model.InventoryItem {
	return []model.InventoryItem{
		{ID: 0, AssetName: "Dell Latitude", DeviceType: "Laptop", Make: "Dell", Model: "Latitude 5400", Year: "2020", Specs: "8GB RAM", Availability: model.Available},
		{ID: 1, AssetName: "HP EliteBook", DeviceType: "Laptop", Make: "HP", Model: "EliteBook 840", Year: "2021", Specs: "16GB RAM", Availability: model.Available},
		{ID: 2, AssetName: "Lenovo ThinkPad", DeviceType: "Laptop", Make: "Lenovo", Model: "T480", Year: "2019", Specs: "8GB RAM", Availability: model.Available},
	}
}

func setupReservationRouter(s store.Store, notifier Notifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	handler := NewHandler(s, nil, notifier)
	r.GET("/api/inventory", handler.GetInventory)
	r.GET("/api/inventory/:item_id/reservation", handler.GetReservationSeed)
	r.POST("/api/inventory/:item_id/reservation", handler.PostReservation)
	r.DELETE("/api/inventory/:item_id/reservation", handler.DeleteReservation)
	return r
}

func reserveBody(shelter, client string, pref int) string {
	b, _ := json.Marshal(gin.H{"shelterName": shelter, "clientId": client, "preference": pref})
	return string(b)
}

func TestPostReservation(t *testing.T) {
	s := store.NewMemoryStore()
	s.SetItems(seedItems())
	router := setupReservationRouter(s, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/inventory/0/reservation",
		strings.NewReader(reserveBody("FOY - Youth Shelter", "J.Doe", 1)))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	item, ok := s.Item(0)
	require.True(t, ok)
	assert.Equal(t, "J.Doe", item.ClientPreference1)
	assert.Equal(t, model.Unavailable, item.Availability)
}

func TestPostReservation_Rejections(t *testing.T) {
	s := store.NewMemoryStore()
	s.SetItems(seedItems())
	router := setupReservationRouter(s, nil)

	reserve := func(path, body string) int {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", path, strings.NewReader(body))
		router.ServeHTTP(w, req)
		return w.Code
	}

	// Missing fields fail binding.
	assert.Equal(t, http.StatusBadRequest, reserve("/api/inventory/0/reservation", `{"clientId":"J.Doe"}`))

	// Invalid rank.
	assert.Equal(t, http.StatusBadRequest,
		reserve("/api/inventory/0/reservation", reserveBody("FOY - Youth Shelter", "J.Doe", 4)))

	// Non-numeric and unknown item ids.
	assert.Equal(t, http.StatusBadRequest,
		reserve("/api/inventory/abc/reservation", reserveBody("FOY - Youth Shelter", "J.Doe", 1)))
	assert.Equal(t, http.StatusNotFound,
		reserve("/api/inventory/42/reservation", reserveBody("FOY - Youth Shelter", "J.Doe", 1)))

	// Two laptops claimed, the third hits the preference limit.
	assert.Equal(t, http.StatusCreated,
		reserve("/api/inventory/0/reservation", reserveBody("FOY - Youth Shelter", "J.Doe", 1)))
	assert.Equal(t, http.StatusCreated,
		reserve("/api/inventory/1/reservation", reserveBody("FOY - Youth Shelter", "J.Doe", 2)))
	assert.Equal(t, http.StatusUnprocessableEntity,
		reserve("/api/inventory/2/reservation", reserveBody("FOY - Youth Shelter", "J.Doe", 3)))
}

func TestGetReservationSeed(t *testing.T) {
	s := store.NewMemoryStore()
	s.SetItems(seedItems())
	require.NoError(t, s.Reserve(0, "FOY - Youth Shelter", "J.Doe", 1))
	router := setupReservationRouter(s, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/inventory/0/reservation", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"shelterName":"FOY - Youth Shelter","clientId":"J.Doe","preference":1}`, w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/inventory/42/reservation", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteReservation_NotifiesWhenItemFreed(t *testing.T) {
	s := store.NewMemoryStore()
	s.SetItems(seedItems())
	require.NoError(t, s.Reserve(0, "FOY - Youth Shelter", "J.Doe", 1))
	require.NoError(t, s.Reserve(1, "FOY - Youth Shelter", "J.Doe", 2))

	notifier := &recordingNotifier{}
	router := setupReservationRouter(s, notifier)

	// Item 0 was unavailable; removing its reservation dispatches a job.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/inventory/0/reservation", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []int{0}, notifier.dispatched)

	// Item 1 only held a 2nd choice and never left the available state, so
	// no notification goes out for it.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/api/inventory/1/reservation", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []int{0}, notifier.dispatched)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/api/inventory/42/reservation", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetInventory_SearchFilter(t *testing.T) {
	s := store.NewMemoryStore()
	s.SetItems(seedItems())
	router := setupReservationRouter(s, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/inventory?search=elitebook", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total    int                   `json:"total"`
		Filtered int                   `json:"filtered"`
		Items    []model.InventoryItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Filtered)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "HP EliteBook", resp.Items[0].AssetName)
}
