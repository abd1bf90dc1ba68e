package token

import "testing"

func TestGenerateRandomTokenIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := GenerateRandomToken(32)
		if err != nil {
			t.Fatalf("GenerateRandomToken failed: %v", err)
		}
		if tok == "" {
			t.Fatal("empty token")
		}
		if seen[tok] {
			t.Fatalf("duplicate token generated: %s", tok)
		}
		seen[tok] = true
	}
}

func TestHashSHA256IsStable(t *testing.T) {
	if HashSHA256("abc") != HashSHA256("abc") {
		t.Fatal("hash must be deterministic")
	}
	if HashSHA256("abc") == HashSHA256("abd") {
		t.Fatal("different inputs must hash differently")
	}
	if len(HashSHA256("abc")) != 64 {
		t.Fatalf("unexpected digest length %d", len(HashSHA256("abc")))
	}
}
