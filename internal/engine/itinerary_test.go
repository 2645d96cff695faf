package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Pruthvi695/Unseen-Spots/internal/model"
)

func scoredTop() []model.Candidate {
	return []model.Candidate{
		{
			Name: "Livraria do Simão", PlaceID: "p1", Rating: 4.8, ReviewCount: 87,
			MapURL: "https://maps.google.com/?cid=1",
			Vibe: &model.VibeAnalysis{
				VibeAdjectives:     []string{"cozy", "cramped", "literary"},
				UniqueFeatures:     []string{"one-person shop"},
				MatchScore:         9,
				MatchJustification: "reviews mention stacks of vintage books",
			},
		},
		{
			Name: "Jardim Secreto", PlaceID: "p3", Rating: 4.9, ReviewCount: 40,
			MapURL: "https://maps.google.com/?cid=3",
			Vibe: &model.VibeAnalysis{
				VibeAdjectives:     []string{"lush", "quiet", "hidden"},
				UniqueFeatures:     nil,
				MatchScore:         8,
				MatchJustification: "a courtyard garden few reviews locate",
			},
		},
		{
			Name: "Tasca Antiga", PlaceID: "p4", Rating: 4.5, ReviewCount: 300,
			MapURL: "https://maps.google.com/?cid=4",
			Vibe: &model.VibeAnalysis{
				VibeAdjectives:     []string{"warm", "familiar", "loud"},
				UniqueFeatures:     []string{"cash only"},
				MatchScore:         7,
				MatchJustification: "regulars describe a living-room feel",
			},
		},
	}
}

func TestComposeEmptyInputSkipsModel(t *testing.T) {
	fc := &fakeCaller{}
	eng := New(&fakePlaces{}, fc, nil, 0)

	it, err := eng.Compose(context.Background(), nil, "Lisbon", "cozy")
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if it != nil {
		t.Errorf("Compose(empty) = %v, want nil", it)
	}
	if fc.callCount() != 0 {
		t.Errorf("model called %d times for empty input, want 0", fc.callCount())
	}
}

func TestComposeSpotPerCandidate(t *testing.T) {
	fc := &fakeCaller{}
	eng := New(&fakePlaces{}, fc, nil, 0)

	top := scoredTop()
	it, err := eng.Compose(context.Background(), top, "Lisbon", "cozy")
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if len(it.Spots) != len(top) {
		t.Fatalf("got %d spots, want %d", len(it.Spots), len(top))
	}
	if it.Title == "" {
		t.Errorf("itinerary title is empty")
	}
	for i, spot := range it.Spots {
		if spot.GoogleMapsLink != top[i].MapURL {
			t.Errorf("spot %d link = %q, want %q", i, spot.GoogleMapsLink, top[i].MapURL)
		}
	}
	if fc.callCount() != 1 {
		t.Errorf("model called %d times, want exactly 1", fc.callCount())
	}
}

func TestComposePromptCarriesResearch(t *testing.T) {
	fc := &fakeCaller{}
	eng := New(&fakePlaces{}, fc, nil, 0)

	if _, err := eng.Compose(context.Background(), scoredTop(), "Lisbon", "cozy"); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	prompt := fc.prompts[0]
	for _, want := range []string{"p1", "p3", "p4", "Do NOT mention the review count or rating", "Lisbon"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestComposeModelFailure(t *testing.T) {
	fc := &fakeCaller{composeErr: errors.New("declined")}
	eng := New(&fakePlaces{}, fc, nil, 0)

	it, err := eng.Compose(context.Background(), scoredTop(), "Lisbon", "cozy")
	if !errors.Is(err, ErrItineraryFailed) {
		t.Errorf("error = %v, want ErrItineraryFailed", err)
	}
	if it != nil {
		t.Errorf("itinerary should be nil on failure")
	}
}

func TestComposeSpotCountMismatch(t *testing.T) {
	fc := &fakeCaller{spotsHook: func(it *model.Itinerary) {
		it.Spots = it.Spots[:2]
	}}
	eng := New(&fakePlaces{}, fc, nil, 0)

	if _, err := eng.Compose(context.Background(), scoredTop(), "Lisbon", "cozy"); !errors.Is(err, ErrItineraryFailed) {
		t.Errorf("error = %v, want ErrItineraryFailed on wrong spot count", err)
	}
}

func TestComposeRelinksByName(t *testing.T) {
	fc := &fakeCaller{spotsHook: func(it *model.Itinerary) {
		it.Spots[1].GoogleMapsLink = "https://example.com/made-up"
	}}
	eng := New(&fakePlaces{}, fc, nil, 0)

	it, err := eng.Compose(context.Background(), scoredTop(), "Lisbon", "cozy")
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if it.Spots[1].GoogleMapsLink != "https://maps.google.com/?cid=3" {
		t.Errorf("link = %q, want relink to source candidate", it.Spots[1].GoogleMapsLink)
	}
}

func TestComposeRelinksByPosition(t *testing.T) {
	fc := &fakeCaller{spotsHook: func(it *model.Itinerary) {
		it.Spots[2].PlaceName = "A Paraphrased Name"
		it.Spots[2].GoogleMapsLink = ""
	}}
	eng := New(&fakePlaces{}, fc, nil, 0)

	it, err := eng.Compose(context.Background(), scoredTop(), "Lisbon", "cozy")
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if it.Spots[2].GoogleMapsLink != "https://maps.google.com/?cid=4" {
		t.Errorf("link = %q, want positional relink", it.Spots[2].GoogleMapsLink)
	}
}
