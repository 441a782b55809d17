// Package domain contains the core entities of the offer sweep: itinerary legs,
// the flight-offer search payload, sweep tuples and cached results.
// These types carry no I/O and are shared by the sweep driver and its adapters.
package domain

import "strconv"

// Values used by the flight-offer search schema.
const (
	TravelerTypeAdult = "ADULT"

	CabinEconomy        = "ECONOMY"
	CabinPremiumEconomy = "PREMIUM_ECONOMY"
	CabinBusiness       = "BUSINESS"
	CabinFirst          = "FIRST"

	CoverageMostSegments = "MOST_SEGMENTS"
	CoverageAtLeastOne   = "AT_LEAST_ONE_SEGMENT"
	CoverageAllSegments  = "ALL_SEGMENTS"

	SourceGDS = "GDS"
)

// Leg ids inside every search payload. The sweep always builds four legs.
const (
	FirstLegID  = "1"
	SecondLegID = "2"
	ThirdLegID  = "3"
	FourthLegID = "4"
)

// LegIDs lists the leg ids in payload order.
var LegIDs = []string{FirstLegID, SecondLegID, ThirdLegID, FourthLegID}

// SearchRequest is the flight-offer search body sent upstream.
type SearchRequest struct {
	CurrencyCode       string              `json:"currencyCode"`
	OriginDestinations []OriginDestination `json:"originDestinations"`
	Travelers          []Traveler          `json:"travelers"`
	Sources            []string            `json:"sources"`
	SearchCriteria     SearchCriteria      `json:"searchCriteria"`
}

// OriginDestination is one directional leg of the itinerary.
type OriginDestination struct {
	ID                      string        `json:"id"`
	OriginLocationCode      string        `json:"originLocationCode"`
	DestinationLocationCode string        `json:"destinationLocationCode"`
	DepartureDateTimeRange  DateTimeRange `json:"departureDateTimeRange"`
}

// DateTimeRange holds the departure date of a leg (YYYY-MM-DD).
type DateTimeRange struct {
	Date string `json:"date"`
}

// Traveler is a single passenger entry.
type Traveler struct {
	ID           string `json:"id"`
	TravelerType string `json:"travelerType"`
}

// SearchCriteria limits the number of offers and filters them.
type SearchCriteria struct {
	MaxFlightOffers int           `json:"maxFlightOffers"`
	FlightFilters   FlightFilters `json:"flightFilters"`
}

// FlightFilters restricts cabin, connections and carriers.
type FlightFilters struct {
	CabinRestrictions     []CabinRestriction    `json:"cabinRestrictions"`
	ConnectionRestriction ConnectionRestriction `json:"connectionRestriction"`
	CarrierRestrictions   CarrierRestrictions   `json:"carrierRestrictions"`
}

// CabinRestriction applies a cabin to a set of legs.
type CabinRestriction struct {
	Cabin                string   `json:"cabin"`
	Coverage             string   `json:"coverage"`
	OriginDestinationIDs []string `json:"originDestinationIds"`
}

// ConnectionRestriction caps connections per leg.
type ConnectionRestriction struct {
	MaxNumberOfConnections int `json:"maxNumberOfConnections"`
}

// CarrierRestrictions is the carrier allow-list.
type CarrierRestrictions struct {
	IncludedCarrierCodes []string `json:"includedCarrierCodes"`
}

// Leg is an itinerary leg before it gets an id in the payload.
type Leg struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

// originDestination converts the leg to its payload form.
func (l Leg) originDestination(id string) OriginDestination {
	return OriginDestination{
		ID:                      id,
		OriginLocationCode:      l.Origin,
		DestinationLocationCode: l.Destination,
		DepartureDateTimeRange:  DateTimeRange{Date: l.Date},
	}
}

// Itinerary holds the parts of the trip that stay constant across the sweep.
// The first leg flies origin -> Hub and the fourth leg flies Hub -> destination.
type Itinerary struct {
	Hub       string `json:"hub"`
	SecondLeg Leg    `json:"secondLeg"`
	ThirdLeg  Leg    `json:"thirdLeg"`
}

// SearchOptions holds the request fields that are not legs.
type SearchOptions struct {
	Currency       string
	Adults         int
	Sources        []string
	MaxOffers      int
	Cabin          string
	CabinCoverage  string
	MaxConnections int
	Carriers       []string
}

// DefaultSearchOptions returns two adults in economy on BR, CI and JX, priced in TWD.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Currency:       "TWD",
		Adults:         2,
		Sources:        []string{SourceGDS},
		MaxOffers:      250,
		Cabin:          CabinEconomy,
		CabinCoverage:  CoverageMostSegments,
		MaxConnections: 0,
		Carriers:       []string{"BR", "CI", "JX"},
	}
}

// BuildSearchRequest builds the four-leg payload for one sweep tuple.
// Legs 2 and 3 come from the itinerary, legs 1 and 4 from the tuple.
func BuildSearchRequest(t Tuple, it Itinerary, opts SearchOptions) SearchRequest {
	first := Leg{Origin: t.Origin, Destination: it.Hub, Date: t.FirstDate}
	last := Leg{Origin: it.Hub, Destination: t.Destination, Date: t.LastDate}

	travelers := make([]Traveler, 0, opts.Adults)
	for i := 1; i <= opts.Adults; i++ {
		travelers = append(travelers, Traveler{
			ID:           strconv.Itoa(i),
			TravelerType: TravelerTypeAdult,
		})
	}

	return SearchRequest{
		CurrencyCode: opts.Currency,
		OriginDestinations: []OriginDestination{
			first.originDestination(FirstLegID),
			it.SecondLeg.originDestination(SecondLegID),
			it.ThirdLeg.originDestination(ThirdLegID),
			last.originDestination(FourthLegID),
		},
		Travelers: travelers,
		Sources:   cloneStrings(opts.Sources),
		SearchCriteria: SearchCriteria{
			MaxFlightOffers: opts.MaxOffers,
			FlightFilters: FlightFilters{
				CabinRestrictions: []CabinRestriction{{
					Cabin:                opts.Cabin,
					Coverage:             opts.CabinCoverage,
					OriginDestinationIDs: cloneStrings(LegIDs),
				}},
				ConnectionRestriction: ConnectionRestriction{
					MaxNumberOfConnections: opts.MaxConnections,
				},
				CarrierRestrictions: CarrierRestrictions{
					IncludedCarrierCodes: cloneStrings(opts.Carriers),
				},
			},
		},
	}
}

// Tuple recovers the sweep tuple a payload was built from.
// It returns false when the payload does not have four legs.
func (r SearchRequest) Tuple() (Tuple, bool) {
	if len(r.OriginDestinations) != len(LegIDs) {
		return Tuple{}, false
	}
	first := r.OriginDestinations[0]
	last := r.OriginDestinations[3]
	return Tuple{
		Origin:      first.OriginLocationCode,
		FirstDate:   first.DepartureDateTimeRange.Date,
		Destination: last.DestinationLocationCode,
		LastDate:    last.DepartureDateTimeRange.Date,
	}, true
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
