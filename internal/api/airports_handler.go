package api

import (
	"net/http"

	"github.com/limosin/flight-search/internal/db/repositories"
	gormModels "github.com/limosin/flight-search/internal/models/gorm"

	"github.com/go-chi/chi/v5"
)

// GetAirportHandler handles GET /api/v1/airports/{code}
func GetAirportHandler(airports *repositories.AirportRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		if code == "" {
			respondWithError(w, http.StatusBadRequest, "airport code is required")
			return
		}

		airport, err := airports.FindByCode(r.Context(), code)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to look up airport: "+err.Error())
			return
		}
		if airport == nil {
			respondWithError(w, http.StatusNotFound, "airport not found: "+code)
			return
		}

		respondWithSuccess(w, http.StatusOK, airport)
	}
}

// ListAirportsHandler handles GET /api/v1/airports
func ListAirportsHandler(airports *repositories.AirportRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := airports.List(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list airports: "+err.Error())
			return
		}

		payload := struct {
			Airports []gormModels.Airport `json:"airports"`
			Count    int                  `json:"count"`
		}{Airports: list, Count: len(list)}

		respondWithSuccess(w, http.StatusOK, &payload)
	}
}
