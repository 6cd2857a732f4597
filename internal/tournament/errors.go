package tournament

import "errors"

// Engine errors. Rejected votes and undos are not errors: ApplyVote and
// Undo report them through their applied return value, since they
// reflect races the caller should have prevented.
var (
	// ErrInvalidCandidateSet means fewer than 2 distinct names were
	// supplied. The session never starts.
	ErrInvalidCandidateSet = errors.New("tournament needs at least 2 distinct names")

	// ErrSessionFailed means the engine hit an invariant violation and
	// moved to its terminal error phase. The caller must discard the
	// session and reinitialize with corrected input.
	ErrSessionFailed = errors.New("tournament session is in a failed state")
)
