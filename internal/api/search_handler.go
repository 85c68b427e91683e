package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/limosin/flight-search/internal/config"
	"github.com/limosin/flight-search/internal/constants"
	"github.com/limosin/flight-search/internal/logging"
	"github.com/limosin/flight-search/internal/metrics"
	"github.com/limosin/flight-search/internal/models/dtos"
	"github.com/limosin/flight-search/internal/services"

	"github.com/google/uuid"
)

// SearchHandler handles POST /api/v1/search. Validation failures are
// rejected here; the search core never sees a malformed request. An empty
// result set is surfaced as 422 NO_RESULTS per the API contract.
func SearchHandler(searchSvc *services.SearchService, searchCfg *config.SearchConfig, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		var req dtos.SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			metricsReg.SearchesTotal.WithLabelValues("invalid").Inc()
			writeJSON(w, http.StatusBadRequest, dtos.ErrorResponse{
				Error:   constants.ErrCodeValidation,
				Message: "request body is not valid JSON",
			})
			return
		}

		req.Normalize(searchCfg.DefaultMaxHops, searchCfg.DefaultMaxResults)

		serviceDate, err := req.Validate(searchCfg.MaxResultsCeiling)
		if err != nil {
			metricsReg.SearchesTotal.WithLabelValues("invalid").Inc()

			var validationErr *dtos.ValidationError
			details := map[string]string{}
			if errors.As(err, &validationErr) {
				details[validationErr.Field] = validationErr.Message
			}
			writeJSON(w, http.StatusBadRequest, dtos.ErrorResponse{
				Error:   constants.ErrCodeValidation,
				Message: err.Error(),
				Details: details,
			})
			return
		}

		criteria := services.SearchCriteria{
			Origin:      req.Origin,
			Destination: req.Destination,
			Date:        serviceDate,
			MaxHops:     *req.MaxHops,
			MaxResults:  *req.MaxResults,
			Sort:        req.Sort,
			Window:      req.Window,
		}

		itineraries, err := searchSvc.Search(r.Context(), criteria)
		if err != nil {
			metricsReg.SearchesTotal.WithLabelValues("error").Inc()
			logging.Error("search failed",
				"origin", criteria.Origin,
				"destination", criteria.Destination,
				"error", err.Error(),
			)
			writeJSON(w, http.StatusInternalServerError, dtos.ErrorResponse{
				Error:   constants.ErrCodeInternal,
				Message: "an internal error occurred while processing the search",
			})
			return
		}

		metricsReg.SearchDuration.
			WithLabelValues(strconv.Itoa(criteria.MaxHops)).
			Observe(time.Since(start).Seconds())
		metricsReg.ItinerariesReturned.Observe(float64(len(itineraries)))

		if len(itineraries) == 0 {
			metricsReg.SearchesTotal.WithLabelValues("empty").Inc()
			writeJSON(w, http.StatusUnprocessableEntity, dtos.ErrorResponse{
				Error:   constants.ErrCodeNoResults,
				Message: fmt.Sprintf("no itineraries found for %s to %s on %s", req.Origin, req.Destination, req.Date),
				Details: map[string]string{
					"origin":      req.Origin,
					"destination": req.Destination,
					"date":        req.Date,
				},
			})
			return
		}

		metricsReg.SearchesTotal.WithLabelValues("ok").Inc()

		searchID := uuid.NewString()
		logging.WithSearch(searchID, req.Origin, req.Destination).Infow("search completed",
			"returned", len(itineraries),
			"max_results", *req.MaxResults,
			"duration_ms", time.Since(start).Milliseconds(),
		)

		writeJSON(w, http.StatusOK, dtos.SearchResponse{
			SearchID:    searchID,
			Origin:      req.Origin,
			Destination: req.Destination,
			Itineraries: itineraries,
			Meta: dtos.SearchMeta{
				Returned:   len(itineraries),
				MaxResults: *req.MaxResults,
			},
		})
	}
}
