package user

import "testing"

func TestShouldBeDefault(t *testing.T) {
	tests := []struct {
		existing  int
		requested bool
		want      bool
	}{
		{0, false, true}, // première adresse, toujours par défaut
		{0, true, true},
		{1, false, false},
		{3, true, true},
	}

	for _, tt := range tests {
		if got := shouldBeDefault(tt.existing, tt.requested); got != tt.want {
			t.Fatalf("existing=%d requested=%v: got %v, expected %v",
				tt.existing, tt.requested, got, tt.want)
		}
	}
}

// Le drapeau défaut se pose toujours en deux temps (unset puis set) :
// quelle que soit la séquence de créations, au plus une adresse reste
// marquée par défaut.
func TestDefaultFlagSequence(t *testing.T) {
	defaults := 0
	for i, requested := range []bool{false, true, false, true} {
		if shouldBeDefault(i, requested) {
			defaults = 1 // les précédentes sont désactivées avant l'insertion
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default address, got %d", defaults)
	}
}
