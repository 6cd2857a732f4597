// Package sorter holds the incremental pairwise preference sorter: it
// records signed judgments between candidate names, proposes the next
// unresolved comparison, and supports exact single-step undo.
package sorter

import (
	"fmt"
	"sort"
)

// ErrUnknownCandidate is returned when a preference names a candidate
// outside the sorter's set. This is a programmer error; callers are
// expected to fail fast on it.
var ErrUnknownCandidate = fmt.Errorf("unknown candidate")

// pairKey identifies an unordered pair in canonical order: lo always
// holds the name that appears earlier in the original candidate list.
type pairKey struct {
	lo, hi string
}

// checkpoint records the state of one preference slot before a write,
// so UndoLast can restore it exactly.
type checkpoint struct {
	key     pairKey
	prev    float64
	existed bool
}

// Sorter maintains a consistent relative ordering of candidate names
// from partial pairwise judgments. Preference values are signed: for a
// pair stored as (lo, hi), negative favors lo and positive favors hi.
// Not safe for concurrent use; the engine serializes all access.
type Sorter struct {
	names   []string
	index   map[string]int
	prefs   map[pairKey]float64
	counts  map[string]int // resolved comparisons per name
	history []checkpoint
}

// New creates a sorter over the given names. The list order is the
// tie-break order for match selection, so it must be deterministic.
func New(names []string) *Sorter {
	s := &Sorter{
		names:  append([]string(nil), names...),
		index:  make(map[string]int, len(names)),
		prefs:  make(map[pairKey]float64),
		counts: make(map[string]int, len(names)),
	}
	for i, n := range s.names {
		s.index[n] = i
	}
	return s
}

// canonical maps an (a, b, value) judgment onto its canonical slot,
// flipping the sign when the caller's order is reversed.
func (s *Sorter) canonical(a, b string, value float64) (pairKey, float64) {
	if s.index[a] <= s.index[b] {
		return pairKey{lo: a, hi: b}, value
	}
	return pairKey{lo: b, hi: a}, -value
}

// AddPreference records or overwrites the judgment for the unordered
// pair {a, b}. Value is in [-1, 1]; negative favors a, positive favors
// b. A checkpoint of the prior slot state is pushed so the write can be
// undone exactly.
func (s *Sorter) AddPreference(a, b string, value float64) error {
	if _, ok := s.index[a]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCandidate, a)
	}
	if _, ok := s.index[b]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCandidate, b)
	}

	key, v := s.canonical(a, b, value)
	prev, existed := s.prefs[key]
	s.history = append(s.history, checkpoint{key: key, prev: prev, existed: existed})
	if !existed {
		s.counts[key.lo]++
		s.counts[key.hi]++
	}
	s.prefs[key] = v
	return nil
}

// UndoLast restores the slot touched by the most recent AddPreference.
// A no-op when nothing has been recorded; that is an expected condition,
// not an error.
func (s *Sorter) UndoLast() {
	if len(s.history) == 0 {
		return
	}
	cp := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]

	if cp.existed {
		s.prefs[cp.key] = cp.prev
		return
	}
	delete(s.prefs, cp.key)
	s.counts[cp.key.lo]--
	s.counts[cp.key.hi]--
}

// NextMatch proposes the next unresolved pair. Among unresolved pairs it
// prefers the one whose two candidates have the fewest resolved
// comparisons so far, keeping coverage balanced; remaining ties resolve
// by original list order. Returns ok=false once every pair is resolved.
func (s *Sorter) NextMatch() (left, right string, ok bool) {
	bestScore := -1
	for i := 0; i < len(s.names); i++ {
		for j := i + 1; j < len(s.names); j++ {
			key := pairKey{lo: s.names[i], hi: s.names[j]}
			if _, resolved := s.prefs[key]; resolved {
				continue
			}
			score := s.counts[key.lo] + s.counts[key.hi]
			if bestScore == -1 || score < bestScore {
				left, right, ok = key.lo, key.hi, true
				bestScore = score
			}
		}
	}
	return left, right, ok
}

// Preference returns the recorded judgment for {a, b}, oriented so that
// negative favors a. The second return reports whether the pair has been
// resolved at all.
func (s *Sorter) Preference(a, b string) (float64, bool) {
	key, _ := s.canonical(a, b, 0)
	v, ok := s.prefs[key]
	if !ok {
		return 0, false
	}
	if key.lo != a {
		v = -v
	}
	return v, true
}

// Resolved returns how many distinct pairs have a recorded judgment.
func (s *Sorter) Resolved() int {
	return len(s.prefs)
}

// TotalPairs returns the number of distinct unordered pairs, n(n-1)/2.
func (s *Sorter) TotalPairs() int {
	n := len(s.names)
	return n * (n - 1) / 2
}

// Ranked returns the candidate names ordered best-first by accumulated
// preference strength. Each judgment contributes its magnitude to the
// favored side and subtracts from the other; ties fall back to original
// list order for determinism.
func (s *Sorter) Ranked() []string {
	score := make(map[string]float64, len(s.names))
	for key, v := range s.prefs {
		// Negative favors lo.
		score[key.lo] -= v
		score[key.hi] += v
	}

	ranked := append([]string(nil), s.names...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return score[ranked[i]] > score[ranked[j]]
	})
	return ranked
}
