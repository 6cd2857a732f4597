// Package rating implements the Elo-style rating math used by the
// tournament engine: pairwise updates from a single comparison outcome
// and the position-blended rating applied when a tournament finishes.
package rating

import (
	"math"
	"math/rand"
	"time"

	"github.com/guitarbeat/my-cat-folio-sub002/internal/models"
)

const (
	// DefaultRating is the starting rating for any name with no history.
	DefaultRating = 1500
	// MinRating and MaxRating bound every rating surfaced or persisted.
	MinRating = 1000
	MaxRating = 2000
	// KFactor controls rating change sensitivity per comparison.
	KFactor = 32
)

// Jitter half-widths for ambiguous outcomes. A "both" answer scores both
// sides near 0.5, a "none" answer near 0; the jitter keeps two
// non-answers from ever producing exactly equal scores.
const (
	bothScoreJitter = 0.05
	noneScoreCeil   = 0.05
)

// Outcome is the discrete result category of a comparison.
type Outcome string

const (
	OutcomeLeft  Outcome = "left"
	OutcomeRight Outcome = "right"
	OutcomeBoth  Outcome = "both"
	OutcomeNone  Outcome = "none"
)

// Updater computes pairwise Elo updates. The random source only feeds
// the tiny score jitter for both/none outcomes, so a seeded source makes
// every update fully deterministic.
type Updater struct {
	k   float64
	rng *rand.Rand
}

// NewUpdater creates an Updater with the standard K-factor. A nil rng
// falls back to a time-seeded source.
func NewUpdater(rng *rand.Rand) *Updater {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Updater{k: KFactor, rng: rng}
}

// ExpectedScore returns the Elo expected score of a player rated self
// against a player rated other.
func ExpectedScore(self, other int) float64 {
	return 1.0 / (1.0 + math.Pow(10.0, float64(other-self)/400.0))
}

// Clamp bounds a rating to [MinRating, MaxRating].
func Clamp(r int) int {
	if r < MinRating {
		return MinRating
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}

// Pairwise applies one comparison outcome to the two participants'
// rating records and returns the updated records. New ratings are NOT
// clamped here; the caller clamps when persisting or surfacing them so
// the raw Elo math stays testable. Wins/losses move only on decisive
// outcomes: left/right credit exactly one win and one loss, both/none
// touch neither counter.
func (u *Updater) Pairwise(left, right models.Rating, outcome Outcome) (models.Rating, models.Rating) {
	expLeft := ExpectedScore(left.Rating, right.Rating)
	expRight := ExpectedScore(right.Rating, left.Rating)

	var scoreLeft, scoreRight float64
	switch outcome {
	case OutcomeLeft:
		scoreLeft, scoreRight = 1, 0
		left.Wins++
		right.Losses++
	case OutcomeRight:
		scoreLeft, scoreRight = 0, 1
		right.Wins++
		left.Losses++
	case OutcomeBoth:
		// Both liked: split the point with symmetric jitter.
		j := (u.rng.Float64() - 0.5) * 2 * bothScoreJitter
		scoreLeft = 0.5 + j
		scoreRight = 0.5 - j
	case OutcomeNone:
		// Neither liked: both score near zero.
		scoreLeft = u.rng.Float64() * noneScoreCeil
		scoreRight = u.rng.Float64() * noneScoreCeil
	}

	left.Rating += int(math.Round(u.k * (scoreLeft - expLeft)))
	right.Rating += int(math.Round(u.k * (scoreRight - expRight)))
	return left, right
}

// BlendFinal combines a name's tournament position with its prior rating
// into the final rating written back at completion. Position 0 is best.
// Early in a session the blend stays close to the prior rating; as more
// matches resolve it shifts toward the observed position, capped at 80%
// so some prior inertia always remains. The result is clamped to
// [MinRating, MaxRating]. totalNames must be at least 2.
func BlendFinal(existing, position, totalNames, matchesPlayed, maxMatches int) int {
	spread := math.Min(1000, float64(totalNames)*25)
	positionValue := float64(totalNames-position-1) / float64(totalNames-1) * spread
	positionRating := float64(DefaultRating) + positionValue

	blend := math.Min(0.8, float64(matchesPlayed)/float64(maxMatches)*0.9)
	final := math.Round(blend*positionRating + (1-blend)*float64(existing))
	return Clamp(int(final))
}
