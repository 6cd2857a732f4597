package tournament

import "testing"

func TestNewFingerprint_OrderIndependent(t *testing.T) {
	a := NewFingerprint("alice", []string{"Luna", "Shadow", "Misty"})
	b := NewFingerprint("alice", []string{"Misty", "Luna", "Shadow"})
	if a != b {
		t.Errorf("same set in different order produced different fingerprints: %s vs %s", a, b)
	}
}

func TestNewFingerprint_UserSensitive(t *testing.T) {
	a := NewFingerprint("alice", []string{"Luna", "Shadow"})
	b := NewFingerprint("bob", []string{"Luna", "Shadow"})
	if a == b {
		t.Error("different users produced the same fingerprint")
	}
}

func TestNewFingerprint_SetSensitive(t *testing.T) {
	a := NewFingerprint("alice", []string{"Luna", "Shadow"})
	b := NewFingerprint("alice", []string{"Luna", "Misty"})
	if a == b {
		t.Error("different name sets produced the same fingerprint")
	}
}

func TestNewFingerprint_Format(t *testing.T) {
	fp := NewFingerprint("alice", []string{"Luna", "Shadow"})
	if len(fp.String()) != 32 {
		t.Errorf("expected 32 hex characters, got %d (%s)", len(fp), fp)
	}
	for _, c := range fp.String() {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Fatalf("non-hex character %q in fingerprint %s", c, fp)
		}
	}
}

func TestNewFingerprint_DelimiterNotAmbiguous(t *testing.T) {
	// The user name and name list must not collide across the boundary.
	a := NewFingerprint("alice", []string{"Luna"})
	b := NewFingerprint("aliceLuna", []string{""})
	if a == b {
		t.Error("user/name boundary is ambiguous")
	}
}
