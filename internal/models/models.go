package models

import "time"

// NameOption is one candidate cat name in the shared catalog.
type NameOption struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	AvgRating        int      `json:"avg_rating"`
	PopularityScore  int      `json:"popularity_score"`
	TotalTournaments int      `json:"total_tournaments"`
	Active           bool     `json:"is_active"`
	Categories       []string `json:"categories,omitempty"`
}

// Rating is one user's mutable rating record for a single name.
// Values surfaced to callers are clamped to [1000, 2000]; raw
// in-session values may drift slightly outside that band.
type Rating struct {
	Rating int `json:"rating"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// RatingSample is one point of a name's per-user rating history,
// recorded when a tournament finishes.
type RatingSample struct {
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// Contender is one side of a match. Won is only meaningful on vote
// snapshots; it is always false on the active match.
type Contender struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Won         bool   `json:"won,omitempty"`
}

// Match is the current head-to-head comparison.
type Match struct {
	Left  Contender `json:"left"`
	Right Contender `json:"right"`
}

// Vote is the immutable record of one resolved match. Result is a
// continuous value in [-1, 1]: -1 means the left name was strongly
// preferred, +1 the right; near-zero values record both/none answers.
// Before and After hold the two participants' ratings around the update.
type Vote struct {
	MatchNumber int               `json:"match_number"`
	Result      float64           `json:"result"`
	Timestamp   time.Time         `json:"timestamp"`
	Match       Match             `json:"match"`
	Before      map[string]Rating `json:"ratings_before"`
	After       map[string]Rating `json:"ratings_after"`
}

// SessionState is the durable snapshot of a tournament session. It is
// what the repository persists and what a resumed session restores from.
type SessionState struct {
	Fingerprint  string            `json:"fingerprint"`
	UserName     string            `json:"user_name"`
	Names        []NameOption      `json:"names"`
	CurrentMatch *Match            `json:"current_match,omitempty"`
	RoundNumber  int               `json:"round_number"`
	MatchNumber  int               `json:"match_number"`
	TotalMatches int               `json:"total_matches"`
	Ratings      map[string]Rating `json:"ratings"`
	History      []Vote            `json:"history"`
}

// FinalResult is one entry of a finished tournament's standings.
// Confidence is matches played over the match budget, 1.0 when the
// tournament ran its full course.
type FinalResult struct {
	Name       string  `json:"name"`
	Rating     int     `json:"rating"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Confidence float64 `json:"confidence"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
