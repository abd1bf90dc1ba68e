package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := Compare(hash, "correct horse battery staple"); err != nil {
		t.Fatalf("Compare rejected the right password: %v", err)
	}
	if err := Compare(hash, "wrong password"); err == nil {
		t.Fatal("Compare accepted the wrong password")
	}
}

func TestHashIsSalted(t *testing.T) {
	h1, err := Hash("same input")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	h2, err := Hash("same input")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ")
	}
}
