package dtos

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Sort options for search results
const (
	SortPrice         = "price"
	SortDuration      = "duration"
	SortDepartureTime = "departure_time"
)

// Cabin classes accepted by the API. The search core does not consume
// cabin class; it is carried for API-contract parity.
const (
	CabinEconomy        = "economy"
	CabinPremiumEconomy = "premium_economy"
	CabinBusiness       = "business"
	CabinFirst          = "first"
)

var (
	iataCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	clockPattern    = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)
)

// TimeWindow is a same-day preferred departure window, inclusive at both
// ends, compared by minute-of-day against the first leg's departure.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SearchRequest is the body of POST /api/v1/search
type SearchRequest struct {
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	Date        string      `json:"date"`
	Passengers  int         `json:"passengers"`
	Cabin       string      `json:"cabin"`
	MaxHops     *int        `json:"max_hops"`
	MaxResults  *int        `json:"max_results"`
	Window      *TimeWindow `json:"preferred_departure_time_window"`
	Sort        string      `json:"sort"`
}

// ValidationError reports a malformed request field. Requests failing
// validation are rejected before the search core runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Normalize applies defaults and uppercases airport codes in place.
func (r *SearchRequest) Normalize(defaultHops, defaultResults int) {
	r.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	r.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))
	if r.Passengers == 0 {
		r.Passengers = 1
	}
	if r.Cabin == "" {
		r.Cabin = CabinEconomy
	}
	if r.MaxHops == nil {
		h := defaultHops
		r.MaxHops = &h
	}
	if r.MaxResults == nil {
		n := defaultResults
		r.MaxResults = &n
	}
	if r.Sort == "" {
		r.Sort = SortPrice
	}
}

// Validate checks the normalized request and returns the parsed service
// date on success.
func (r *SearchRequest) Validate(maxResultsCeiling int) (time.Time, error) {
	if !iataCodePattern.MatchString(r.Origin) {
		return time.Time{}, &ValidationError{Field: "origin", Message: "must be a 3-letter IATA code"}
	}
	if !iataCodePattern.MatchString(r.Destination) {
		return time.Time{}, &ValidationError{Field: "destination", Message: "must be a 3-letter IATA code"}
	}
	if r.Origin == r.Destination {
		return time.Time{}, &ValidationError{Field: "destination", Message: "origin and destination must be different"}
	}
	serviceDate, err := time.ParseInLocation("2006-01-02", r.Date, time.UTC)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Message: "must be an ISO 8601 date (YYYY-MM-DD)"}
	}
	if r.Passengers < 1 || r.Passengers > 9 {
		return time.Time{}, &ValidationError{Field: "passengers", Message: "must be between 1 and 9"}
	}
	switch r.Cabin {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
	default:
		return time.Time{}, &ValidationError{Field: "cabin", Message: "unknown cabin class"}
	}
	if *r.MaxHops < 0 || *r.MaxHops > 2 {
		return time.Time{}, &ValidationError{Field: "max_hops", Message: "must be between 0 and 2"}
	}
	if *r.MaxResults < 1 || *r.MaxResults > maxResultsCeiling {
		return time.Time{}, &ValidationError{
			Field:   "max_results",
			Message: fmt.Sprintf("must be between 1 and %d", maxResultsCeiling),
		}
	}
	switch r.Sort {
	case SortPrice, SortDuration, SortDepartureTime:
	default:
		return time.Time{}, &ValidationError{Field: "sort", Message: "must be one of price, duration, departure_time"}
	}
	if r.Window != nil {
		if !clockPattern.MatchString(r.Window.Start) || !clockPattern.MatchString(r.Window.End) {
			return time.Time{}, &ValidationError{Field: "preferred_departure_time_window", Message: "start and end must be HH:MM"}
		}
	}
	return serviceDate, nil
}

// FlightLeg is one segment of an itinerary
type FlightLeg struct {
	Carrier          string    `json:"carrier"`
	FlightNumber     string    `json:"flight_number"`
	Origin           string    `json:"origin"`
	Destination      string    `json:"destination"`
	DepartureTimeUTC time.Time `json:"departure_time_utc"`
	ArrivalTimeUTC   time.Time `json:"arrival_time_utc"`
	DurationMinutes  int       `json:"duration_minutes"`
}

// Price is an amount in a single currency
type Price struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// Itinerary is an ordered sequence of 1-3 legs with pricing. Built fresh per
// search; never persisted.
type Itinerary struct {
	ID                   string      `json:"id"`
	Legs                 []FlightLeg `json:"legs"`
	Stops                int         `json:"stops"`
	TotalDurationMinutes int         `json:"total_duration_minutes"`
	Price                Price       `json:"price"`
	FareKey              string      `json:"fare_key"`
}

// SearchMeta reports result counts
type SearchMeta struct {
	Returned   int `json:"returned"`
	MaxResults int `json:"max_results"`
}

// SearchResponse is the body of a successful search
type SearchResponse struct {
	SearchID    string      `json:"search_id"`
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	Itineraries []Itinerary `json:"itineraries"`
	Meta        SearchMeta  `json:"meta"`
}

// ErrorResponse is the body of a failed request
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}
