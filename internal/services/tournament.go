package services

import (
	"context"
	"sync"
	"time"

	"github.com/guitarbeat/my-cat-folio-sub002/internal/logger"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/models"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/rating"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/repository"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/tournament"
)

// Broadcaster defines the interface for pushing live tournament events
// to connected clients.
type Broadcaster interface {
	BroadcastMatchUpdate(fingerprint string, session *SessionView)
	BroadcastTournamentComplete(fingerprint string, results []models.FinalResult)
}

// TournamentServiceRepository defines the repository methods needed by
// TournamentService
type TournamentServiceRepository interface {
	repository.NameRepository
	repository.RatingRepository
	repository.SessionRepository
}

// TournamentService owns the live tournament engines, one per session
// fingerprint, and bridges them to the repository and the websocket hub.
type TournamentService struct {
	log         logger.Logger
	repo        TournamentServiceRepository
	broadcaster Broadcaster

	mu       sync.Mutex
	sessions map[string]*tournament.Engine
}

// NewTournamentService creates a new TournamentService
func NewTournamentService(log logger.Logger, repo TournamentServiceRepository) *TournamentService {
	return &TournamentService{
		log:      log,
		repo:     repo,
		sessions: make(map[string]*tournament.Engine),
	}
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *TournamentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SessionView is the wire representation of a session's state.
type SessionView struct {
	Fingerprint   string                   `json:"fingerprint"`
	UserName      string                   `json:"user_name"`
	Phase         string                   `json:"phase"`
	CurrentMatch  *models.Match            `json:"current_match,omitempty"`
	RoundNumber   int                      `json:"round_number"`
	MatchNumber   int                      `json:"match_number"`
	TotalMatches  int                      `json:"total_matches"`
	MatchesPlayed int                      `json:"matches_played"`
	CanUndo       bool                     `json:"can_undo"`
	Ratings       map[string]models.Rating `json:"ratings"`
	Results       []models.FinalResult     `json:"results,omitempty"`
}

// VoteResult reports whether a vote or undo was applied. Rejected
// submissions (a second vote racing an unfinished one, or a vote after
// completion) are not errors; the caller gets the authoritative state
// back either way.
type VoteResult struct {
	Applied bool         `json:"applied"`
	Session *SessionView `json:"session"`
}

// StartSession begins or resumes a tournament for a user. With no IDs
// given the session runs over every name available to the user; with
// IDs it runs over exactly those catalog entries. A session whose
// fingerprint matches a persisted snapshot resumes where it left off.
func (s *TournamentService) StartSession(ctx context.Context, userName string, nameIDs []int) (*SessionView, error) {
	if userName == "" {
		return nil, ErrUserRequired
	}

	names, err := s.sessionNames(ctx, userName, nameIDs)
	if err != nil {
		return nil, err
	}
	if len(names) < 2 {
		return nil, ErrNotEnoughNames
	}

	priors, err := s.repo.GetUserRatings(ctx, userName)
	if err != nil {
		return nil, err
	}

	engine := tournament.New(tournament.Config{
		Log:   s.log,
		Store: s.repo,
		OnComplete: func(results []models.FinalResult) {
			s.finalize(userName, results)
		},
	})
	if err := engine.Start(ctx, userName, names, priors); err != nil {
		return nil, err
	}

	fp := engine.Fingerprint().String()
	s.mu.Lock()
	s.sessions[fp] = engine
	s.mu.Unlock()

	view := viewOf(engine)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastMatchUpdate(fp, view)
	}
	return view, nil
}

// sessionNames resolves the candidate set for a new session.
func (s *TournamentService) sessionNames(ctx context.Context, userName string, nameIDs []int) ([]models.NameOption, error) {
	if len(nameIDs) == 0 {
		active, err := s.repo.ListActiveNameOptions(ctx)
		if err != nil {
			return nil, err
		}
		hiddenList, err := s.repo.ListHiddenNames(ctx, userName)
		if err != nil {
			return nil, err
		}
		hidden := make(map[string]bool, len(hiddenList))
		for _, name := range hiddenList {
			hidden[name] = true
		}
		var names []models.NameOption
		for _, opt := range active {
			if !hidden[opt.Name] {
				names = append(names, opt)
			}
		}
		return names, nil
	}

	names := make([]models.NameOption, 0, len(nameIDs))
	for _, id := range nameIDs {
		opt, err := s.repo.GetNameOption(ctx, id)
		if err != nil {
			if err == repository.ErrNotFound {
				return nil, ErrNameNotFound
			}
			return nil, err
		}
		names = append(names, *opt)
	}
	return names, nil
}

// GetSession returns the state of a live session.
func (s *TournamentService) GetSession(fingerprint string) (*SessionView, error) {
	engine, err := s.session(fingerprint)
	if err != nil {
		return nil, err
	}
	return viewOf(engine), nil
}

// Vote resolves the current match of a session. outcome is one of
// left, right, both, none.
func (s *TournamentService) Vote(ctx context.Context, fingerprint, outcome string) (*VoteResult, error) {
	engine, err := s.session(fingerprint)
	if err != nil {
		return nil, err
	}
	out, ok := parseOutcome(outcome)
	if !ok {
		return nil, ErrInvalidOutcome
	}

	applied, err := engine.ApplyVote(ctx, out)
	if err != nil {
		return nil, err
	}

	view := viewOf(engine)
	if applied && s.broadcaster != nil {
		if engine.Phase() == tournament.PhaseComplete {
			s.broadcaster.BroadcastTournamentComplete(fingerprint, engine.Results())
		} else {
			s.broadcaster.BroadcastMatchUpdate(fingerprint, view)
		}
	}
	return &VoteResult{Applied: applied, Session: view}, nil
}

// Undo retracts the most recent vote of a session.
func (s *TournamentService) Undo(ctx context.Context, fingerprint string) (*VoteResult, error) {
	engine, err := s.session(fingerprint)
	if err != nil {
		return nil, err
	}

	applied, err := engine.Undo(ctx)
	if err != nil {
		return nil, err
	}

	view := viewOf(engine)
	if applied && s.broadcaster != nil {
		s.broadcaster.BroadcastMatchUpdate(fingerprint, view)
	}
	return &VoteResult{Applied: applied, Session: view}, nil
}

// Standings returns the live standings of a session.
func (s *TournamentService) Standings(fingerprint string) ([]models.FinalResult, error) {
	engine, err := s.session(fingerprint)
	if err != nil {
		return nil, err
	}
	return engine.Standings(), nil
}

func (s *TournamentService) session(fingerprint string) (*tournament.Engine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	engine, ok := s.sessions[fingerprint]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return engine, nil
}

// finalize writes a finished tournament's results back to permanent
// storage: per-user ratings with a history sample, plus catalog
// popularity and tournament counters. Persistence failures are logged
// and never surfaced to the voter; the in-memory results stand.
func (s *TournamentService) finalize(userName string, results []models.FinalResult) {
	ctx := context.Background()
	now := time.Now().UTC()

	for _, res := range results {
		rec := models.Rating{Rating: res.Rating, Wins: res.Wins, Losses: res.Losses}
		if err := s.repo.SaveUserRating(ctx, userName, res.Name, rec); err != nil {
			s.log.Error("final rating save failed", "user", userName, "name", res.Name, "error", err)
			continue
		}
		if err := s.repo.AppendRatingHistory(ctx, userName, res.Name, models.RatingSample{
			Rating:    res.Rating,
			Timestamp: now,
		}); err != nil {
			s.log.Error("rating history append failed", "user", userName, "name", res.Name, "error", err)
		}

		popularity := 0
		if res.Wins > res.Losses {
			popularity = 1
		}
		if err := s.repo.UpdateNameStats(ctx, res.Name, popularity, 1); err != nil {
			s.log.Error("name stats update failed", "name", res.Name, "error", err)
		}
	}
	s.log.Info("Tournament finalized", "user", userName, "names", len(results))
}

func parseOutcome(outcome string) (rating.Outcome, bool) {
	switch rating.Outcome(outcome) {
	case rating.OutcomeLeft, rating.OutcomeRight, rating.OutcomeBoth, rating.OutcomeNone:
		return rating.Outcome(outcome), true
	}
	return "", false
}

func viewOf(e *tournament.Engine) *SessionView {
	return &SessionView{
		Fingerprint:   e.Fingerprint().String(),
		UserName:      e.UserName(),
		Phase:         e.Phase().String(),
		CurrentMatch:  e.CurrentMatch(),
		RoundNumber:   e.RoundNumber(),
		MatchNumber:   e.MatchNumber(),
		TotalMatches:  e.TotalMatches(),
		MatchesPlayed: e.MatchesPlayed(),
		CanUndo:       e.CanUndo(),
		Ratings:       e.Ratings(),
		Results:       e.Results(),
	}
}
