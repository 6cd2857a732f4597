package handlers

import "encoding/json"

// NameCreateRequest represents a request to add a name to the catalog
type NameCreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Categories  []string `json:"categories,omitempty"`
}

// NameActiveRequest represents a request to change a name's availability
type NameActiveRequest struct {
	Active bool `json:"active"`
}

// NameHiddenRequest represents a request to hide a name for one user
type NameHiddenRequest struct {
	UserName string `json:"user_name"`
	Hidden   bool   `json:"hidden"`
}

// TournamentStartRequest represents a request to start or resume a session
type TournamentStartRequest struct {
	UserName string `json:"user_name"`
	NameIDs  []int  `json:"name_ids,omitempty"`
}

// VoteRequest represents a vote on the current match
type VoteRequest struct {
	Outcome string `json:"outcome"`
}

// PreferencesRequest carries a user's opaque preference blob
type PreferencesRequest struct {
	Preferences json.RawMessage `json:"preferences"`
}
