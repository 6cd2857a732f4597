package rating

import (
	"math"
	"math/rand"
	"testing"

	"github.com/guitarbeat/my-cat-folio-sub002/internal/models"
)

func TestExpectedScore_EqualRatings(t *testing.T) {
	if got := ExpectedScore(1500, 1500); got != 0.5 {
		t.Errorf("expected 0.5 for equal ratings, got %v", got)
	}
}

func TestExpectedScore_SumsToOne(t *testing.T) {
	a, b := 1620, 1480
	sum := ExpectedScore(a, b) + ExpectedScore(b, a)
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("expected scores to sum to 1, got %v", sum)
	}
}

func TestExpectedScore_FavorsHigherRating(t *testing.T) {
	if got := ExpectedScore(1700, 1500); got <= 0.5 {
		t.Errorf("expected >0.5 for higher-rated player, got %v", got)
	}
	if got := ExpectedScore(1300, 1500); got >= 0.5 {
		t.Errorf("expected <0.5 for lower-rated player, got %v", got)
	}
}

func TestPairwise_LeftWin(t *testing.T) {
	u := NewUpdater(rand.New(rand.NewSource(1)))
	left := models.Rating{Rating: 1500}
	right := models.Rating{Rating: 1500}

	newLeft, newRight := u.Pairwise(left, right, OutcomeLeft)

	// At equal ratings the winner gains exactly K/2.
	if newLeft.Rating != 1516 {
		t.Errorf("expected winner rating 1516, got %d", newLeft.Rating)
	}
	if newRight.Rating != 1484 {
		t.Errorf("expected loser rating 1484, got %d", newRight.Rating)
	}
	if newLeft.Wins != 1 || newLeft.Losses != 0 {
		t.Errorf("expected winner 1-0, got %d-%d", newLeft.Wins, newLeft.Losses)
	}
	if newRight.Wins != 0 || newRight.Losses != 1 {
		t.Errorf("expected loser 0-1, got %d-%d", newRight.Wins, newRight.Losses)
	}
}

func TestPairwise_RightWin(t *testing.T) {
	u := NewUpdater(rand.New(rand.NewSource(1)))
	left := models.Rating{Rating: 1500, Wins: 2, Losses: 3}
	right := models.Rating{Rating: 1500, Wins: 5, Losses: 1}

	newLeft, newRight := u.Pairwise(left, right, OutcomeRight)

	if newRight.Rating != 1516 || newLeft.Rating != 1484 {
		t.Errorf("unexpected ratings: left=%d right=%d", newLeft.Rating, newRight.Rating)
	}
	if newRight.Wins != 6 || newRight.Losses != 1 {
		t.Errorf("expected right 6-1, got %d-%d", newRight.Wins, newRight.Losses)
	}
	if newLeft.Wins != 2 || newLeft.Losses != 4 {
		t.Errorf("expected left 2-4, got %d-%d", newLeft.Wins, newLeft.Losses)
	}
}

func TestPairwise_UpsetMovesMore(t *testing.T) {
	u := NewUpdater(rand.New(rand.NewSource(1)))
	underdog := models.Rating{Rating: 1400}
	favorite := models.Rating{Rating: 1600}

	newUnderdog, _ := u.Pairwise(underdog, favorite, OutcomeLeft)

	gain := newUnderdog.Rating - 1400
	if gain <= 16 {
		t.Errorf("expected upset win to gain more than K/2, got +%d", gain)
	}
}

func TestPairwise_BothLeavesCountersAlone(t *testing.T) {
	u := NewUpdater(rand.New(rand.NewSource(1)))
	left := models.Rating{Rating: 1500, Wins: 1}
	right := models.Rating{Rating: 1500, Losses: 2}

	newLeft, newRight := u.Pairwise(left, right, OutcomeBoth)

	if newLeft.Wins != 1 || newLeft.Losses != 0 || newRight.Wins != 0 || newRight.Losses != 2 {
		t.Error("both outcome must not touch win/loss counters")
	}
	// Scores stay within 0.5±jitter, so neither side moves more than
	// round(K * jitter) points.
	maxDelta := int(math.Round(KFactor * bothScoreJitter))
	if d := newLeft.Rating - 1500; d < -maxDelta || d > maxDelta {
		t.Errorf("left moved %d, want within ±%d", d, maxDelta)
	}
	if d := newRight.Rating - 1500; d < -maxDelta || d > maxDelta {
		t.Errorf("right moved %d, want within ±%d", d, maxDelta)
	}
}

func TestPairwise_NoneDropsBothRatings(t *testing.T) {
	u := NewUpdater(rand.New(rand.NewSource(1)))
	left := models.Rating{Rating: 1500}
	right := models.Rating{Rating: 1500}

	newLeft, newRight := u.Pairwise(left, right, OutcomeNone)

	if newLeft.Wins != 0 || newLeft.Losses != 0 || newRight.Wins != 0 || newRight.Losses != 0 {
		t.Error("none outcome must not touch win/loss counters")
	}
	if newLeft.Rating >= 1500 || newRight.Rating >= 1500 {
		t.Errorf("expected both ratings to drop, got left=%d right=%d", newLeft.Rating, newRight.Rating)
	}
}

func TestPairwise_SeededDeterminism(t *testing.T) {
	u1 := NewUpdater(rand.New(rand.NewSource(42)))
	u2 := NewUpdater(rand.New(rand.NewSource(42)))
	left := models.Rating{Rating: 1500}
	right := models.Rating{Rating: 1500}

	for i := 0; i < 10; i++ {
		l1, r1 := u1.Pairwise(left, right, OutcomeBoth)
		l2, r2 := u2.Pairwise(left, right, OutcomeBoth)
		if l1 != l2 || r1 != r2 {
			t.Fatalf("iteration %d diverged: (%v,%v) vs (%v,%v)", i, l1, r1, l2, r2)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{500, MinRating},
		{MinRating, MinRating},
		{1500, 1500},
		{MaxRating, MaxRating},
		{2500, MaxRating},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBlendFinal_NoMatchesKeepsPrior(t *testing.T) {
	if got := BlendFinal(1620, 0, 10, 0, 33); got != 1620 {
		t.Errorf("expected prior rating 1620 with no matches, got %d", got)
	}
}

func TestBlendFinal_TopPosition(t *testing.T) {
	// 10 names: spread 250, top position rating 1750, blend capped at 0.8.
	got := BlendFinal(1500, 0, 10, 34, 34)
	if got != 1700 {
		t.Errorf("expected 1700, got %d", got)
	}
}

func TestBlendFinal_BottomPosition(t *testing.T) {
	// Bottom position carries no positional bonus.
	got := BlendFinal(1500, 9, 10, 34, 34)
	if got != 1500 {
		t.Errorf("expected 1500, got %d", got)
	}
}

func TestBlendFinal_AlwaysInBand(t *testing.T) {
	for _, existing := range []int{MinRating, 1500, MaxRating} {
		for pos := 0; pos < 50; pos++ {
			got := BlendFinal(existing, pos, 50, 283, 283)
			if got < MinRating || got > MaxRating {
				t.Fatalf("BlendFinal(%d, %d, 50, ...) = %d out of band", existing, pos, got)
			}
		}
	}
}

func TestBlendFinal_OrderPreserved(t *testing.T) {
	// With identical priors, a better position never blends lower.
	prev := math.MaxInt
	for pos := 0; pos < 8; pos++ {
		got := BlendFinal(1500, pos, 8, 24, 24)
		if got > prev {
			t.Fatalf("position %d rated %d above better position's %d", pos, got, prev)
		}
		prev = got
	}
}
