package tournament

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Fingerprint deterministically identifies a (user, candidate set)
// pairing for session persistence and resume. The same user with the
// same set of names always maps to the same fingerprint, regardless of
// name order.
type Fingerprint string

// NewFingerprint computes the session fingerprint for a user and a
// candidate name set. All derivations go through this one function so
// sorting and joining can never drift between call sites.
func NewFingerprint(userName string, names []string) Fingerprint {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	h := sha256.New()
	h.Write([]byte(userName))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(sorted, "\n")))
	return Fingerprint(hex.EncodeToString(h.Sum(nil)[:16]))
}

func (f Fingerprint) String() string {
	return string(f)
}
