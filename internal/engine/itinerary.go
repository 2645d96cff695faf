package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Pruthvi695/Unseen-Spots/internal/logger"
	"github.com/Pruthvi695/Unseen-Spots/internal/model"
)

// spotSummary is the research record handed to the final prompt, one
// per top candidate. Rating and review count travel with it so the
// model understands the "unseen" framing, but the prompt forbids them
// from appearing in the generated prose.
type spotSummary struct {
	Name              string   `json:"name"`
	PlaceID           string   `json:"place_id"`
	URL               string   `json:"url"`
	Rating            float64  `json:"rating"`
	ReviewCount       int      `json:"review_count"`
	VibeAdjectives    []string `json:"vibe_adjectives"`
	UniqueFeatures    []string `json:"unique_features"`
	VibeJustification string   `json:"vibe_justification"`
}

// Compose turns the top candidates into a titled, narrated itinerary
// with exactly one pitch per candidate. An empty input returns nil
// without a model call; any model failure is terminal for the stage.
func (e *Engine) Compose(ctx context.Context, top []model.Candidate, city, vibe string) (*model.Itinerary, error) {
	if len(top) == 0 {
		return nil, nil
	}
	logger.Log.Infof("composing itinerary for %d spots", len(top))

	summaries := make([]spotSummary, len(top))
	for i, c := range top {
		summaries[i] = spotSummary{
			Name:              c.Name,
			PlaceID:           c.PlaceID,
			URL:               c.MapURL,
			Rating:            c.Rating,
			ReviewCount:       c.ReviewCount,
			VibeAdjectives:    c.Vibe.VibeAdjectives,
			UniqueFeatures:    c.Vibe.UniqueFeatures,
			VibeJustification: c.Vibe.MatchJustification,
		}
	}
	payload, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: marshal research data: %v", ErrItineraryFailed, err)
	}

	prompt := fmt.Sprintf(`You are a world-class travel journalist for a luxury magazine, known for finding "secret spots".
A traveler wants a curated list of %d hidden gems in %s with the vibe: %q.

You have the research data below. Your job is to act as the final editor.
Do NOT mention the review count or rating anywhere in the prose. Focus on
atmosphere and the "unseen" quality. Create a catchy title and write a
compelling, 3-4 sentence pitch narrative for each spot. Copy each spot's
url field verbatim into google_maps_link.

Respond strictly as a JSON object in this shape, with exactly %d spots:
{
	"itinerary_title": "A catchy title for the curated list",
	"itinerary_spots": [
		{
			"place_name": "The full name of the establishment",
			"pitch_narrative": "3-4 sentences on why the traveler should visit.",
			"google_maps_link": "the url field, copied verbatim"
		}
	]
}

RESEARCH DATA:
---
%s
---
Now generate the final itinerary.`, len(top), city, vibe, len(top), payload)

	itinerary := new(model.Itinerary)
	if err := e.llm.GenerateStructured(ctx, jsonOnlySystem, prompt, itinerary); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrItineraryFailed, err)
	}
	if len(itinerary.Spots) != len(top) {
		return nil, fmt.Errorf("%w: got %d spots, want %d", ErrItineraryFailed, len(itinerary.Spots), len(top))
	}

	rejoinLinks(itinerary, top)
	return itinerary, nil
}

// rejoinLinks re-anchors every spot's map link to its source candidate.
// The model is asked to echo the link verbatim; when it paraphrases the
// name and mangles the link, fall back to name matching, then to
// position, so a spot never ships with an invented URL.
func rejoinLinks(it *model.Itinerary, top []model.Candidate) {
	byURL := make(map[string]*model.Candidate, len(top))
	byName := make(map[string]*model.Candidate, len(top))
	for i := range top {
		c := &top[i]
		if c.MapURL != "" {
			byURL[c.MapURL] = c
		}
		byName[strings.ToLower(c.Name)] = c
	}

	for i := range it.Spots {
		spot := &it.Spots[i]
		if _, ok := byURL[spot.GoogleMapsLink]; ok {
			continue
		}
		if c, ok := byName[strings.ToLower(spot.PlaceName)]; ok {
			logger.Log.Warnf("itinerary: relinked %q by name match", spot.PlaceName)
			spot.GoogleMapsLink = c.MapURL
			continue
		}
		logger.Log.Warnf("itinerary: %q matched no candidate, relinked by position", spot.PlaceName)
		spot.GoogleMapsLink = top[i].MapURL
	}
}
