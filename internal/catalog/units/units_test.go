package units

import "testing"

func TestAllCodesAreValid(t *testing.T) {
	all := All()
	if len(all) != 22 {
		t.Fatalf("expected 22 unit codes, got %d", len(all))
	}
	for _, code := range all {
		if !IsValid(code) {
			t.Fatalf("expected code %q to be valid", code)
		}
	}
}

func TestUnknownCodesAreRejected(t *testing.T) {
	for _, code := range []string{"", "XYZ", "kg", "UNIT", "und "} {
		if IsValid(code) {
			t.Fatalf("expected code %q to be rejected", code)
		}
	}
}
