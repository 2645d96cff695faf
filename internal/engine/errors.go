package engine

import "errors"

var (
	// ErrInvalidInput marks missing or out-of-range user parameters.
	// The pipeline never leaves Idle when Run returns it.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCityNotFound marks a city the geocoder could not resolve.
	ErrCityNotFound = errors.New("city not found")

	// ErrItineraryFailed marks a failed or non-conforming final
	// synthesis call. A single failed attempt is terminal.
	ErrItineraryFailed = errors.New("itinerary generation failed")

	// errNoReviews marks a candidate whose details carried no review
	// text. It is a skip, not a failure.
	errNoReviews = errors.New("no reviews found")
)
