package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Pruthvi695/Unseen-Spots/internal/cache"
	"github.com/Pruthvi695/Unseen-Spots/internal/llm"
	"github.com/Pruthvi695/Unseen-Spots/internal/logger"
	"github.com/Pruthvi695/Unseen-Spots/internal/model"
	"github.com/Pruthvi695/Unseen-Spots/internal/places"
)

// State is one step of the pipeline state machine.
type State int

const (
	StateIdle State = iota
	StateDiscovering
	StateScoring
	StateComposing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDiscovering:
		return "discovering"
	case StateScoring:
		return "scoring"
	case StateComposing:
		return "composing"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Params are the user inputs for one pipeline run.
type Params struct {
	City         string
	Vibe         string
	Query        string // defaults to Vibe when empty
	MinRating    float64
	MaxReviews   int
	RadiusMeters int
	TopK         int
}

// Validate normalizes defaults and rejects inputs no stage can work
// with. Violations are reported before any stage runs.
func (p *Params) Validate() error {
	if p.City == "" {
		return fmt.Errorf("%w: city is required", ErrInvalidInput)
	}
	if p.Vibe == "" {
		return fmt.Errorf("%w: vibe is required", ErrInvalidInput)
	}
	if p.MinRating < 4.0 || p.MinRating > 5.0 {
		return fmt.Errorf("%w: min rating %.1f outside [4.0, 5.0]", ErrInvalidInput, p.MinRating)
	}
	if p.MaxReviews < 50 || p.MaxReviews > 1000 {
		return fmt.Errorf("%w: max reviews %d outside [50, 1000]", ErrInvalidInput, p.MaxReviews)
	}
	if p.Query == "" {
		p.Query = p.Vibe
	}
	if p.RadiusMeters == 0 {
		p.RadiusMeters = 3000
	}
	if p.TopK == 0 {
		p.TopK = 3
	}
	return nil
}

// Result is everything a finished run produced. Message carries the
// user-facing outcome; it is always set when Itinerary is nil so an
// empty run is never mistaken for a silent success.
type Result struct {
	RunID      string
	State      State
	Candidates []model.Candidate // discovery output
	Scored     []model.Candidate // vibe-scored, sorted by match score desc
	Top        []model.Candidate // prefix handed to the composer
	Itinerary  *model.Itinerary
	Message    string
}

// Engine sequences the three stages over long-lived clients.
type Engine struct {
	places   places.Client
	llm      llm.Caller
	store    cache.Store
	cacheTTL time.Duration
}

// New creates an engine. store may be nil to disable memoization.
func New(pc places.Client, caller llm.Caller, store cache.Store, cacheTTL time.Duration) *Engine {
	return &Engine{
		places:   pc,
		llm:      caller,
		store:    store,
		cacheTTL: cacheTTL,
	}
}

// Run executes Discovery, vibe scoring and itinerary composition in
// order, exiting early when a stage yields nothing. Run only returns
// an error for invalid inputs; every downstream failure surfaces as a
// Result with a message.
func (e *Engine) Run(ctx context.Context, p Params) (*Result, error) {
	state := StateIdle
	if err := p.Validate(); err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.NewString()}
	logger.Log.Infof("run %s: %q in %q (min rating %.1f, max reviews %d)",
		res.RunID, p.Vibe, p.City, p.MinRating, p.MaxReviews)

	e.transition(&state, StateDiscovering)
	candidates, err := e.cachedDiscover(ctx, p)
	if err != nil {
		logger.Log.Errorf("discovery failed: %v", err)
		e.transition(&state, StateDone)
		res.State = state
		res.Message = discoveryMessage(err, p)
		return res, nil
	}
	res.Candidates = candidates
	if len(candidates) == 0 {
		e.transition(&state, StateDone)
		res.State = state
		res.Message = "no spots matched the inverse filter — try raising the review ceiling"
		return res, nil
	}

	e.transition(&state, StateScoring)
	scored := e.cachedScore(ctx, candidates, p.Vibe)
	res.Scored = scored
	if len(scored) == 0 {
		e.transition(&state, StateDone)
		res.State = state
		res.Message = "no spots could be scored against the requested vibe"
		return res, nil
	}

	top := scored
	if len(top) > p.TopK {
		top = top[:p.TopK]
	}
	res.Top = top

	e.transition(&state, StateComposing)
	itinerary, err := e.cachedCompose(ctx, top, p.City, p.Vibe)
	e.transition(&state, StateDone)
	res.State = state
	if err != nil {
		logger.Log.Errorf("composition failed: %v", err)
		res.Message = "itinerary generation failed"
		return res, nil
	}
	res.Itinerary = itinerary
	logger.Log.Infof("run %s complete: %q with %d spots", res.RunID, itinerary.Title, len(itinerary.Spots))
	return res, nil
}

func (e *Engine) transition(state *State, next State) {
	logger.Log.Debugf("pipeline: %s -> %s", *state, next)
	*state = next
}

func discoveryMessage(err error, p Params) string {
	if errors.Is(err, ErrCityNotFound) {
		return fmt.Sprintf("city not found: %q — check the spelling or add a country", p.City)
	}
	return fmt.Sprintf("search failed: %v", err)
}

// cachedDiscover memoizes Discover on its full parameter tuple.
func (e *Engine) cachedDiscover(ctx context.Context, p Params) ([]model.Candidate, error) {
	key := cache.Key("discover", p.City, p.Query, p.MinRating, p.MaxReviews, p.RadiusMeters)
	if v, ok := e.cacheGet(key); ok {
		if cands, ok := v.([]model.Candidate); ok {
			logger.Log.Debugf("discovery served from cache")
			return cands, nil
		}
	}
	cands, err := e.Discover(ctx, p)
	if err != nil {
		return nil, err
	}
	e.cachePut(key, cands)
	return cands, nil
}

func (e *Engine) cachedScore(ctx context.Context, candidates []model.Candidate, vibe string) []model.Candidate {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.PlaceID
	}
	key := cache.Key("score", vibe, cache.Key(toAnySlice(ids)...))
	if v, ok := e.cacheGet(key); ok {
		if scored, ok := v.([]model.Candidate); ok {
			logger.Log.Debugf("vibe scores served from cache")
			return scored
		}
	}
	scored := e.ScoreVibes(ctx, candidates, vibe)
	e.cachePut(key, scored)
	return scored
}

func (e *Engine) cachedCompose(ctx context.Context, top []model.Candidate, city, vibe string) (*model.Itinerary, error) {
	ids := make([]string, len(top))
	for i, c := range top {
		ids[i] = c.PlaceID
	}
	key := cache.Key("compose", city, vibe, cache.Key(toAnySlice(ids)...))
	if v, ok := e.cacheGet(key); ok {
		if it, ok := v.(*model.Itinerary); ok {
			logger.Log.Debugf("itinerary served from cache")
			return it, nil
		}
	}
	it, err := e.Compose(ctx, top, city, vibe)
	if err != nil {
		return nil, err
	}
	e.cachePut(key, it)
	return it, nil
}

func (e *Engine) cacheGet(key string) (any, bool) {
	if e.store == nil {
		return nil, false
	}
	return e.store.Get(key)
}

func (e *Engine) cachePut(key string, v any) {
	if e.store == nil {
		return
	}
	e.store.Put(key, v, e.cacheTTL)
}

func toAnySlice(strs []string) []any {
	out := make([]any, len(strs))
	for i, s := range strs {
		out[i] = s
	}
	return out
}
