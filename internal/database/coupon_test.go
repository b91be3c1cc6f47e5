package database

import "testing"

func TestCanConsume(t *testing.T) {
	tests := []struct {
		count, limit int
		want         bool
	}{
		{0, 0, true},   // limite 0 = illimité
		{999, 0, true},
		{0, 1, true},
		{1, 1, false},  // dernière utilisation déjà consommée
		{2, 1, false},  // compteur au-delà de la limite
		{99, 100, true},
		{100, 100, false},
	}

	for _, tt := range tests {
		if got := canConsume(tt.count, tt.limit); got != tt.want {
			t.Fatalf("count=%d limit=%d: got %v, expected %v", tt.count, tt.limit, got, tt.want)
		}
	}
}

func TestCanRelease(t *testing.T) {
	tests := []struct {
		count int
		want  bool
	}{
		{0, false}, // rien à rendre, jamais de compteur négatif
		{1, true},
		{42, true},
	}

	for _, tt := range tests {
		if got := canRelease(tt.count); got != tt.want {
			t.Fatalf("count=%d: got %v, expected %v", tt.count, got, tt.want)
		}
	}
}
