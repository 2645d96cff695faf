package model

import "fmt"

// Candidate is one discovered place that survived the inverse filter.
// MapURL and Vibe are attached during vibe scoring; a Candidate either
// has no Vibe or a fully validated one.
type Candidate struct {
	Name        string        `json:"name"`
	PlaceID     string        `json:"place_id"`
	Rating      float64       `json:"rating"`
	ReviewCount int           `json:"review_count"`
	MapURL      string        `json:"map_url,omitempty"`
	Vibe        *VibeAnalysis `json:"vibe_analysis,omitempty"`
}

// VibeAnalysis is the model's structured judgment of one candidate's
// atmosphere against the user's requested vibe.
type VibeAnalysis struct {
	VibeAdjectives     []string `json:"vibe_adjectives"`
	UniqueFeatures     []string `json:"unique_features"`
	MatchScore         int      `json:"vibe_match_score"`
	MatchJustification string   `json:"vibe_match_justification"`
}

// Validate enforces the schema constraints the model is held to.
func (v *VibeAnalysis) Validate() error {
	if n := len(v.VibeAdjectives); n < 3 || n > 5 {
		return fmt.Errorf("vibe_adjectives must have 3-5 entries, got %d", n)
	}
	if v.MatchScore < 1 || v.MatchScore > 10 {
		return fmt.Errorf("vibe_match_score must be in [1,10], got %d", v.MatchScore)
	}
	if v.MatchJustification == "" {
		return fmt.Errorf("vibe_match_justification is empty")
	}
	return nil
}

// ItinerarySpot is one entry in the final narrated shortlist.
type ItinerarySpot struct {
	PlaceName      string `json:"place_name"`
	PitchNarrative string `json:"pitch_narrative"`
	GoogleMapsLink string `json:"google_maps_link"`
}

// Itinerary is the final deliverable of a pipeline run.
type Itinerary struct {
	Title string          `json:"itinerary_title"`
	Spots []ItinerarySpot `json:"itinerary_spots"`
}

// Validate checks the fields the model filled in. The expected spot
// count depends on the input and is checked by the composer.
func (it *Itinerary) Validate() error {
	if it.Title == "" {
		return fmt.Errorf("itinerary_title is empty")
	}
	for i, s := range it.Spots {
		if s.PlaceName == "" {
			return fmt.Errorf("spot %d: place_name is empty", i)
		}
		if s.PitchNarrative == "" {
			return fmt.Errorf("spot %d: pitch_narrative is empty", i)
		}
	}
	return nil
}
