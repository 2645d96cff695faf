package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Pruthvi695/Unseen-Spots/internal/logger"
	"github.com/Pruthvi695/Unseen-Spots/internal/model"
)

// reviewCharBudget bounds the concatenated review text handed to the
// model. Truncation happens after concatenation, not per review.
const reviewCharBudget = 3000

// maxParallelScores caps concurrent per-candidate work; the shared
// rate limiter still gates the model calls themselves.
const maxParallelScores = 4

const jsonOnlySystem = "You are a JSON generator. Output only a JSON object, nothing else."

// ScoreVibes fetches reviews for each candidate, asks the model for a
// structured vibe analysis and returns the successfully scored subset
// sorted by match score descending. Ties keep the original relative
// order. One candidate's failure never aborts the rest; an all-failed
// input yields an empty slice, not an error.
func (e *Engine) ScoreVibes(ctx context.Context, candidates []model.Candidate, vibe string) []model.Candidate {
	logger.Log.Infof("vibe scoring: analyzing %d candidates", len(candidates))

	// Results land in input-index slots so execution order cannot
	// affect output order.
	scored := make([]*model.Candidate, len(candidates))
	sem := make(chan struct{}, maxParallelScores)
	var wg sync.WaitGroup

	for i := range candidates {
		wg.Add(1)
		go func(i int, c model.Candidate) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := e.scoreOne(ctx, &c, vibe); err != nil {
				if errors.Is(err, errNoReviews) {
					logger.Log.Infof("skipping %s: %v", c.Name, err)
				} else {
					logger.Log.Warnf("skipping %s: %v", c.Name, err)
				}
				return
			}
			logger.Log.Infof("analyzed %s: vibe score %d/10", c.Name, c.Vibe.MatchScore)
			scored[i] = &c
		}(i, candidates[i])
	}
	wg.Wait()

	out := make([]model.Candidate, 0, len(candidates))
	for _, c := range scored {
		if c != nil {
			out = append(out, *c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Vibe.MatchScore > out[j].Vibe.MatchScore
	})

	if len(out) > 0 {
		logger.Log.Infof("vibe scoring: %d scored, top spot %s", len(out), out[0].Name)
	} else {
		logger.Log.Warnf("vibe scoring: no candidate could be scored")
	}
	return out
}

// scoreOne attaches the map URL and a validated vibe analysis to c, or
// reports why c must be skipped.
func (e *Engine) scoreOne(ctx context.Context, c *model.Candidate, vibe string) error {
	det, err := e.places.Details(ctx, c.PlaceID, []string{"reviews", "url"})
	if err != nil {
		return fmt.Errorf("place details: %w", err)
	}
	c.MapURL = det.URL

	if len(det.Reviews) == 0 {
		return errNoReviews
	}

	var sb strings.Builder
	for i, r := range det.Reviews {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(r.Text)
	}
	snippets := sb.String()
	if len(snippets) > reviewCharBudget {
		snippets = snippets[:reviewCharBudget]
	}

	prompt := fmt.Sprintf(`You are a meticulous, native-speaking travel curator.
Analyze the following customer reviews for a spot named %q.
The user is looking for a spot with this specific vibe: %q.

Based only on the reviews, determine the spot's atmosphere, unique features,
and how well it matches the user's vibe on a scale of 1-10.

Respond strictly as a JSON object in this shape:
{
	"vibe_adjectives": ["cozy", "minimalist", "bustling"],
	"unique_features": ["cash only", "hidden courtyard"],
	"vibe_match_score": 7,
	"vibe_match_justification": "A brief explanation for the given score."
}
vibe_adjectives must contain 3 to 5 adjectives. unique_features lists
non-obvious features and may be empty. vibe_match_score is an integer
from 1 (poor match) to 10 (perfect match).

REVIEWS:
---
%s
---
End of reviews. Now provide your analysis.`, c.Name, vibe, snippets)

	analysis := new(model.VibeAnalysis)
	if err := e.llm.GenerateStructured(ctx, jsonOnlySystem, prompt, analysis); err != nil {
		return fmt.Errorf("vibe analysis: %w", err)
	}
	c.Vibe = analysis
	return nil
}
