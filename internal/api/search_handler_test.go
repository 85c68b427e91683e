package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/limosin/flight-search/internal/config"
	"github.com/limosin/flight-search/internal/constants"
	"github.com/limosin/flight-search/internal/metrics"
	"github.com/limosin/flight-search/internal/models/dtos"
	"github.com/limosin/flight-search/internal/models/entities"
	"github.com/limosin/flight-search/internal/services"
)

// Shared across tests: the metrics registry registers with the global
// Prometheus registry and must only be built once per test binary.
var testMetrics = metrics.NewMetricsRegistry()

type mockRouteGraph struct {
	findChainsFunc func(ctx context.Context, origin, destination string, hops int) ([]entities.RouteChain, error)
}

func (m *mockRouteGraph) FindChains(ctx context.Context, origin, destination string, hops int) ([]entities.RouteChain, error) {
	return m.findChainsFunc(ctx, origin, destination, hops)
}

type mockInstanceStore struct {
	fetchBulkFunc func(ctx context.Context, routeIDs []string, serviceDate time.Time, minDeparture *time.Time) ([]entities.FlightLegRow, error)
}

func (m *mockInstanceStore) FetchBulk(ctx context.Context, routeIDs []string, serviceDate time.Time, minDeparture *time.Time) ([]entities.FlightLegRow, error) {
	return m.fetchBulkFunc(ctx, routeIDs, serviceDate, minDeparture)
}

type mockFareResolver struct{}

func (mockFareResolver) PriceFor(ctx context.Context, legs []entities.FlightLegRow) (float64, bool, error) {
	return 4500, true, nil
}

func testConfig() *config.SearchConfig {
	return &config.SearchConfig{
		MCTDomesticMinutes:      45,
		MCTInternationalMinutes: 90,
		MaxLayoverMinutes:       720,
		DefaultMaxHops:          2,
		DefaultMaxResults:       50,
		MaxResultsCeiling:       250,
		RoutePairLimit:          100,
		RouteTripletLimit:       50,
		UnknownDurationPenalty:  10000,
		DefaultCurrency:         "INR",
	}
}

func searchServiceWithOneDirect(t *testing.T) *services.SearchService {
	t.Helper()

	routes := &mockRouteGraph{
		findChainsFunc: func(ctx context.Context, origin, destination string, hops int) ([]entities.RouteChain, error) {
			if hops == 0 && origin == "DEL" && destination == "BOM" {
				return []entities.RouteChain{{entities.RouteHop{ID: "r1", SourceCode: "DEL", DestinationCode: "BOM"}}}, nil
			}
			return nil, nil
		},
	}
	store := &mockInstanceStore{
		fetchBulkFunc: func(ctx context.Context, routeIDs []string, serviceDate time.Time, minDeparture *time.Time) ([]entities.FlightLegRow, error) {
			departure := time.Date(2026, 9, 15, 6, 0, 0, 0, time.UTC)
			return []entities.FlightLegRow{{
				InstanceID:       "i1",
				RouteID:          "r1",
				CarrierCode:      "6E",
				FlightNumber:     "6E201",
				SourceCode:       "DEL",
				DestinationCode:  "BOM",
				DepartureTimeUTC: departure,
				ArrivalTimeUTC:   departure.Add(135 * time.Minute),
				DurationMinutes:  135,
			}}, nil
		},
	}

	return services.NewSearchService(testConfig(), routes, store, mockFareResolver{}, services.FixedPriceEstimator{Base: 5000})
}

func postSearch(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/v1/search", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestSearchHandler_Success(t *testing.T) {
	handler := SearchHandler(searchServiceWithOneDirect(t), testConfig(), testMetrics)

	rr := postSearch(t, handler, map[string]interface{}{
		"origin":      "DEL",
		"destination": "BOM",
		"date":        "2026-09-15",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var response dtos.SearchResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.SearchID == "" {
		t.Error("Expected a search id")
	}
	if response.Origin != "DEL" || response.Destination != "BOM" {
		t.Errorf("Unexpected endpoints: %s-%s", response.Origin, response.Destination)
	}
	if len(response.Itineraries) != 1 {
		t.Fatalf("Expected 1 itinerary, got %d", len(response.Itineraries))
	}
	if response.Itineraries[0].Price.Amount != 4500 {
		t.Errorf("Expected stored fare 4500, got %v", response.Itineraries[0].Price.Amount)
	}
	if response.Meta.Returned != 1 || response.Meta.MaxResults != 50 {
		t.Errorf("Unexpected meta: %+v", response.Meta)
	}
}

func TestSearchHandler_LowercaseCodesNormalized(t *testing.T) {
	handler := SearchHandler(searchServiceWithOneDirect(t), testConfig(), testMetrics)

	rr := postSearch(t, handler, map[string]interface{}{
		"origin":      "del",
		"destination": "bom",
		"date":        "2026-09-15",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200 after normalization, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestSearchHandler_ValidationFailures(t *testing.T) {
	handler := SearchHandler(searchServiceWithOneDirect(t), testConfig(), testMetrics)

	tests := []struct {
		name        string
		body        map[string]interface{}
		failedField string
	}{
		{
			"bad origin",
			map[string]interface{}{"origin": "DELHI", "destination": "BOM", "date": "2026-09-15"},
			"origin",
		},
		{
			"same endpoints",
			map[string]interface{}{"origin": "DEL", "destination": "DEL", "date": "2026-09-15"},
			"destination",
		},
		{
			"bad date",
			map[string]interface{}{"origin": "DEL", "destination": "BOM", "date": "15-09-2026"},
			"date",
		},
		{
			"hops out of range",
			map[string]interface{}{"origin": "DEL", "destination": "BOM", "date": "2026-09-15", "max_hops": 3},
			"max_hops",
		},
		{
			"results above ceiling",
			map[string]interface{}{"origin": "DEL", "destination": "BOM", "date": "2026-09-15", "max_results": 251},
			"max_results",
		},
		{
			"bad sort",
			map[string]interface{}{"origin": "DEL", "destination": "BOM", "date": "2026-09-15", "sort": "cheapness"},
			"sort",
		},
		{
			"bad window",
			map[string]interface{}{
				"origin": "DEL", "destination": "BOM", "date": "2026-09-15",
				"preferred_departure_time_window": map[string]string{"start": "6am", "end": "12:00"},
			},
			"preferred_departure_time_window",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postSearch(t, handler, tt.body)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d: %s", rr.Code, rr.Body.String())
			}

			var response dtos.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if response.Error != constants.ErrCodeValidation {
				t.Errorf("Expected %s, got %s", constants.ErrCodeValidation, response.Error)
			}
			if _, ok := response.Details[tt.failedField]; !ok {
				t.Errorf("Expected details for field %s, got %v", tt.failedField, response.Details)
			}
		})
	}
}

func TestSearchHandler_MalformedJSON(t *testing.T) {
	handler := SearchHandler(searchServiceWithOneDirect(t), testConfig(), testMetrics)

	req := httptest.NewRequest("POST", "/api/v1/search", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestSearchHandler_NoResults(t *testing.T) {
	routes := &mockRouteGraph{
		findChainsFunc: func(ctx context.Context, origin, destination string, hops int) ([]entities.RouteChain, error) {
			return nil, nil
		},
	}
	store := &mockInstanceStore{
		fetchBulkFunc: func(ctx context.Context, routeIDs []string, serviceDate time.Time, minDeparture *time.Time) ([]entities.FlightLegRow, error) {
			return nil, nil
		},
	}
	service := services.NewSearchService(testConfig(), routes, store, mockFareResolver{}, services.FixedPriceEstimator{Base: 5000})
	handler := SearchHandler(service, testConfig(), testMetrics)

	rr := postSearch(t, handler, map[string]interface{}{
		"origin":      "DEL",
		"destination": "IXB",
		"date":        "2026-09-15",
	})

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d: %s", rr.Code, rr.Body.String())
	}

	var response dtos.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Error != constants.ErrCodeNoResults {
		t.Errorf("Expected %s, got %s", constants.ErrCodeNoResults, response.Error)
	}
	if response.Details["origin"] != "DEL" || response.Details["date"] != "2026-09-15" {
		t.Errorf("Expected request echo in details, got %v", response.Details)
	}
}
