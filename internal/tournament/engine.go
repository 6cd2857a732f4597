// Package tournament implements the session state machine that drives a
// pairwise name-ranking tournament: it sequences matches out of the
// preference sorter, applies votes through the rating updater, keeps the
// append-only vote history, and supports exact rollback of the most
// recent decision. Sessions persist through a pluggable store keyed by a
// session fingerprint and survive restarts.
package tournament

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/guitarbeat/my-cat-folio-sub002/internal/logger"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/models"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/rating"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/sorter"
)

// Phase is the engine's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInitializing
	PhaseInProgress
	PhaseUndoing
	PhaseComplete
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInitializing:
		return "initializing"
	case PhaseInProgress:
		return "in_progress"
	case PhaseUndoing:
		return "undoing"
	case PhaseComplete:
		return "complete"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// Preference value jitter half-widths for ambiguous answers. The jitter
// keeps the sorter from ever seeing two non-answers as exactly equal.
// Tuning values, not correctness constraints.
const (
	bothValueJitter = 0.05
	noneValueJitter = 0.03
)

// Store persists session snapshots. Load errors are treated as "no
// session to resume"; save errors are logged and never roll back
// in-memory state.
type Store interface {
	LoadSession(ctx context.Context, fingerprint string) (*models.SessionState, error)
	SaveSession(ctx context.Context, fingerprint string, state *models.SessionState) error
}

// CompletionFunc receives the final standings exactly once per session.
type CompletionFunc func(results []models.FinalResult)

// Config carries the engine's collaborators. Everything is optional:
// a nil Store runs in-memory only, a nil Rand is time-seeded, a nil
// OnComplete is simply not called.
type Config struct {
	Log        logger.Logger
	Store      Store
	Rand       *rand.Rand
	OnComplete CompletionFunc
}

// Engine is the tournament session state machine. ApplyVote and Undo
// are the only mutating entry points; a mutex plus a transitioning flag
// guarantee at most one mutation in flight, so a vote submitted while a
// previous one settles is dropped rather than corrupting state.
type Engine struct {
	mu         sync.Mutex
	log        logger.Logger
	store      Store
	rng        *rand.Rand
	updater    *rating.Updater
	onComplete CompletionFunc

	phase         Phase
	userName      string
	fp            Fingerprint
	names         []models.NameOption
	byName        map[string]models.NameOption
	srt           *sorter.Sorter
	current       *models.Match
	matchNum      int
	totalMatches  int
	base          map[string]models.Rating
	ratings       map[string]models.Rating
	history       []models.Vote
	finals        []models.FinalResult
	transitioning bool
}

// New creates an idle engine. Call Start to begin or resume a session.
func New(cfg Config) *Engine {
	log := cfg.Log
	if log == nil {
		log = logger.New()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		log:        log,
		store:      cfg.Store,
		rng:        rng,
		updater:    rating.NewUpdater(rng),
		onComplete: cfg.OnComplete,
		phase:      PhaseIdle,
	}
}

// MatchBudget estimates how many matches a tournament over n names
// needs: 1 for exactly two names, otherwise ceil(n*log2(n)) capped at
// the n(n-1)/2 distinct pairs the sorter can actually propose.
func MatchBudget(n int) int {
	if n <= 2 {
		return 1
	}
	budget := int(math.Ceil(float64(n) * math.Log2(float64(n))))
	if pairs := n * (n - 1) / 2; budget > pairs {
		budget = pairs
	}
	return budget
}

// matchesPerRound is ceil(n/2), the round-boundary width.
func matchesPerRound(n int) int {
	return (n + 1) / 2
}

// Start begins a new session or resumes a persisted one with a matching
// fingerprint. An empty name list is a benign "not yet loaded" condition
// and leaves the engine idle; a single distinct name is an error and
// moves the engine to its terminal error phase. Prior ratings seed the
// session; any name without one starts at the default rating.
func (e *Engine) Start(ctx context.Context, userName string, names []models.NameOption, prior map[string]models.Rating) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(names) == 0 {
		e.phase = PhaseIdle
		return nil
	}

	distinct := make([]models.NameOption, 0, len(names))
	byName := make(map[string]models.NameOption, len(names))
	for _, n := range names {
		if _, dup := byName[n.Name]; dup {
			continue
		}
		byName[n.Name] = n
		distinct = append(distinct, n)
	}
	if len(distinct) < 2 {
		e.phase = PhaseError
		return ErrInvalidCandidateSet
	}

	e.phase = PhaseInitializing
	e.userName = userName
	e.names = distinct
	e.byName = byName

	nameList := make([]string, len(distinct))
	for i, n := range distinct {
		nameList[i] = n.Name
	}
	e.fp = NewFingerprint(userName, nameList)

	e.base = make(map[string]models.Rating, len(distinct))
	for _, name := range nameList {
		rec, ok := prior[name]
		if !ok {
			rec = models.Rating{Rating: rating.DefaultRating}
		}
		e.base[name] = rec
	}
	e.ratings = make(map[string]models.Rating, len(distinct))
	for name, rec := range e.base {
		e.ratings[name] = rec
	}

	e.srt = sorter.New(nameList)
	e.totalMatches = MatchBudget(len(distinct))
	e.matchNum = 1
	e.history = nil
	e.finals = nil
	e.current = nil

	if e.store != nil {
		snap, err := e.store.LoadSession(ctx, e.fp.String())
		if err != nil {
			e.log.Debug("no session to resume", "fingerprint", e.fp, "error", err)
		} else if snap != nil && e.restorable(snap) {
			if err := e.restore(snap); err != nil {
				e.phase = PhaseError
				return err
			}
			e.phase = PhaseInProgress
			e.log.Info("session resumed", "fingerprint", e.fp, "match", e.matchNum, "votes", len(e.history))
			return nil
		}
	}

	e.current = e.nextMatch()
	e.phase = PhaseInProgress
	e.persist(ctx)
	e.log.Info("session started", "fingerprint", e.fp, "names", len(distinct), "total_matches", e.totalMatches)
	return nil
}

// restorable reports whether a persisted snapshot can continue this
// session: same candidate set and still mid-tournament. Completed or
// stale snapshots are discarded by starting fresh (the first save
// overwrites them).
func (e *Engine) restorable(snap *models.SessionState) bool {
	if snap.CurrentMatch == nil {
		return false
	}
	if len(snap.Names) != len(e.names) {
		return false
	}
	for _, n := range snap.Names {
		if _, ok := e.byName[n.Name]; !ok {
			return false
		}
	}
	return true
}

// restore rebuilds in-memory state from a snapshot, replaying the vote
// history into a fresh sorter so its preference map and undo checkpoints
// match what the original session had.
func (e *Engine) restore(snap *models.SessionState) error {
	for _, v := range snap.History {
		if err := e.srt.AddPreference(v.Match.Left.Name, v.Match.Right.Name, v.Result); err != nil {
			return err
		}
	}
	e.ratings = make(map[string]models.Rating, len(snap.Ratings))
	for name, rec := range snap.Ratings {
		e.ratings[name] = rec
	}
	e.history = append([]models.Vote(nil), snap.History...)
	e.matchNum = snap.MatchNumber
	e.totalMatches = snap.TotalMatches
	m := *snap.CurrentMatch
	e.current = &m
	return nil
}

// nextMatch pulls the next comparison. Two-name sessions short-circuit
// the sorter: the single match is the two candidates directly.
func (e *Engine) nextMatch() *models.Match {
	if len(e.names) == 2 && len(e.history) == 0 {
		return e.matchFor(e.names[0].Name, e.names[1].Name)
	}
	left, right, ok := e.srt.NextMatch()
	if !ok {
		return nil
	}
	return e.matchFor(left, right)
}

func (e *Engine) matchFor(left, right string) *models.Match {
	l, r := e.byName[left], e.byName[right]
	return &models.Match{
		Left:  models.Contender{Name: l.Name, Description: l.Description},
		Right: models.Contender{Name: r.Name, Description: r.Description},
	}
}

// translate converts a discrete outcome to the continuous preference
// value the sorter stores. Ambiguous answers get a tiny uniform jitter.
func (e *Engine) translate(outcome rating.Outcome) float64 {
	switch outcome {
	case rating.OutcomeLeft:
		return -1
	case rating.OutcomeRight:
		return 1
	case rating.OutcomeBoth:
		return (e.rng.Float64() - 0.5) * 2 * bothValueJitter
	case rating.OutcomeNone:
		return (e.rng.Float64() - 0.5) * 2 * noneValueJitter
	}
	return 0
}

// ApplyVote resolves the current match with the given outcome. It
// returns applied=false without error when the vote is rejected: the
// engine is not mid-tournament, another mutation is in flight, or no
// match is active. A rejected vote changes nothing.
func (e *Engine) ApplyVote(ctx context.Context, outcome rating.Outcome) (applied bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.transitioning || e.phase != PhaseInProgress || e.current == nil {
		return false, nil
	}
	e.transitioning = true
	defer func() { e.transitioning = false }()

	value := e.translate(outcome)
	leftName := e.current.Left.Name
	rightName := e.current.Right.Name

	before := map[string]models.Rating{
		leftName:  e.ratings[leftName],
		rightName: e.ratings[rightName],
	}
	newLeft, newRight := e.updater.Pairwise(before[leftName], before[rightName], outcome)

	if err := e.srt.AddPreference(leftName, rightName, value); err != nil {
		e.fail(err)
		return false, err
	}

	snap := *e.current
	snap.Left.Won = outcome == rating.OutcomeLeft
	snap.Right.Won = outcome == rating.OutcomeRight

	e.history = append(e.history, models.Vote{
		MatchNumber: e.matchNum,
		Result:      value,
		Timestamp:   time.Now().UTC(),
		Match:       snap,
		Before:      before,
		After: map[string]models.Rating{
			leftName:  newLeft,
			rightName: newRight,
		},
	})
	e.ratings[leftName] = newLeft
	e.ratings[rightName] = newRight
	e.matchNum++

	if len(e.history) >= e.totalMatches {
		e.complete(ctx)
		return true, nil
	}
	e.current = e.nextMatch()
	if e.current == nil {
		// Sorter exhausted every pair ahead of the budget.
		e.complete(ctx)
		return true, nil
	}

	e.persist(ctx)
	return true, nil
}

// Undo retracts the most recent vote: it restores the match and match
// number from the vote's snapshot, truncates the history, rolls the
// sorter back one judgment, and restores the two participants' ratings
// from the vote's before-snapshot. Returns applied=false when there is
// nothing to undo or the engine is not mid-tournament.
func (e *Engine) Undo(ctx context.Context) (applied bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.transitioning || e.phase != PhaseInProgress || len(e.history) == 0 {
		return false, nil
	}
	e.phase = PhaseUndoing
	e.transitioning = true
	defer func() { e.transitioning = false }()

	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]

	m := last.Match
	m.Left.Won = false
	m.Right.Won = false
	e.current = &m
	e.matchNum = last.MatchNumber
	for name, rec := range last.Before {
		e.ratings[name] = rec
	}
	e.srt.UndoLast()

	e.phase = PhaseInProgress
	e.persist(ctx)
	e.log.Debug("vote undone", "fingerprint", e.fp, "match", e.matchNum)
	return true, nil
}

// complete finishes the session: final ratings blend each name's
// observed position with its session rating, the standings are frozen,
// and the completion callback fires exactly once.
func (e *Engine) complete(ctx context.Context) {
	e.phase = PhaseComplete
	e.current = nil

	played := len(e.history)
	confidence := float64(played) / float64(e.totalMatches)
	ranked := e.srt.Ranked()
	n := len(e.names)

	finals := make([]models.FinalResult, 0, n)
	for pos, name := range ranked {
		rec := e.ratings[name]
		finals = append(finals, models.FinalResult{
			Name:       name,
			Rating:     rating.BlendFinal(rating.Clamp(rec.Rating), pos, n, played, e.totalMatches),
			Wins:       rec.Wins,
			Losses:     rec.Losses,
			Confidence: confidence,
		})
	}
	e.finals = finals

	e.persist(ctx)
	e.log.Info("session complete", "fingerprint", e.fp, "matches", played)
	if e.onComplete != nil {
		e.onComplete(finals)
	}
}

// fail moves the engine to its terminal error phase.
func (e *Engine) fail(err error) {
	e.phase = PhaseError
	e.current = nil
	e.log.Error("session failed", "fingerprint", e.fp, "error", err)
}

// persist writes the current snapshot through the store. Failures are
// logged and do not roll back committed in-memory state.
func (e *Engine) persist(ctx context.Context) {
	if e.store == nil {
		return
	}
	if err := e.store.SaveSession(ctx, e.fp.String(), e.snapshotLocked()); err != nil {
		e.log.Error("session save failed", "fingerprint", e.fp, "error", err)
	}
}

// snapshotLocked builds a persistence snapshot. Caller holds e.mu.
func (e *Engine) snapshotLocked() *models.SessionState {
	snap := &models.SessionState{
		Fingerprint:  e.fp.String(),
		UserName:     e.userName,
		Names:        append([]models.NameOption(nil), e.names...),
		RoundNumber:  e.roundLocked(),
		MatchNumber:  e.matchNum,
		TotalMatches: e.totalMatches,
		Ratings:      make(map[string]models.Rating, len(e.ratings)),
		History:      append([]models.Vote(nil), e.history...),
	}
	for name, rec := range e.ratings {
		snap.Ratings[name] = rec
	}
	if e.current != nil {
		m := *e.current
		snap.CurrentMatch = &m
	}
	return snap
}

func (e *Engine) roundLocked() int {
	if len(e.names) == 0 {
		return 0
	}
	return (e.matchNum-1)/matchesPerRound(len(e.names)) + 1
}

// Phase returns the engine's lifecycle state.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Fingerprint returns the session's persistence key.
func (e *Engine) Fingerprint() Fingerprint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fp
}

// UserName returns the session owner.
func (e *Engine) UserName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.userName
}

// CurrentMatch returns a copy of the active match, or nil when no match
// is active.
func (e *Engine) CurrentMatch() *models.Match {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return nil
	}
	m := *e.current
	return &m
}

// MatchNumber returns the 1-based number of the current match.
func (e *Engine) MatchNumber() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.matchNum
}

// RoundNumber returns the 1-based round, advancing every ceil(n/2)
// matches.
func (e *Engine) RoundNumber() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roundLocked()
}

// TotalMatches returns the session's match budget.
func (e *Engine) TotalMatches() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalMatches
}

// MatchesPlayed returns how many votes have been committed.
func (e *Engine) MatchesPlayed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.history)
}

// CanUndo reports whether a vote can currently be retracted.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase == PhaseInProgress && len(e.history) > 0
}

// IsTransitioning reports whether a mutation is in flight.
func (e *Engine) IsTransitioning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transitioning
}

// Ratings returns a copy of the session's current ratings, clamped to
// the valid band for surfacing.
func (e *Engine) Ratings() map[string]models.Rating {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]models.Rating, len(e.ratings))
	for name, rec := range e.ratings {
		rec.Rating = rating.Clamp(rec.Rating)
		out[name] = rec
	}
	return out
}

// RatingsFromHistory recomputes the session's ratings from the vote
// ledger alone: the seed ratings folded through each vote's after-state.
// The ledger is the source of truth; this must always agree bit-for-bit
// with the live ratings map.
func (e *Engine) RatingsFromHistory() map[string]models.Rating {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]models.Rating, len(e.base))
	for name, rec := range e.base {
		out[name] = rec
	}
	for _, v := range e.history {
		for name, rec := range v.After {
			out[name] = rec
		}
	}
	return out
}

// History returns a copy of the vote ledger.
func (e *Engine) History() []models.Vote {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Vote(nil), e.history...)
}

// Results returns the frozen final standings, or nil before completion.
func (e *Engine) Results() []models.FinalResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.FinalResult(nil), e.finals...)
}

// Standings returns the live standings: names in the sorter's current
// order with clamped session ratings and the session's progress as
// confidence. Valid at any point after Start.
func (e *Engine) Standings() []models.FinalResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.srt == nil {
		return nil
	}
	confidence := 0.0
	if e.totalMatches > 0 {
		confidence = float64(len(e.history)) / float64(e.totalMatches)
	}
	ranked := e.srt.Ranked()
	out := make([]models.FinalResult, 0, len(ranked))
	for _, name := range ranked {
		rec := e.ratings[name]
		out = append(out, models.FinalResult{
			Name:       name,
			Rating:     rating.Clamp(rec.Rating),
			Wins:       rec.Wins,
			Losses:     rec.Losses,
			Confidence: confidence,
		})
	}
	return out
}

// Snapshot returns the current persistence snapshot.
func (e *Engine) Snapshot() *models.SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}
