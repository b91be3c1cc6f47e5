package user

import "testing"

func TestParseOrdersPagination(t *testing.T) {
	tests := []struct {
		page, limit         string
		wantPage, wantLimit int
		wantErr             bool
	}{
		{"", "", 1, 20, false},
		{"2", "10", 2, 10, false},
		{"0", "", 0, 0, true},
		{"x", "", 0, 0, true},
		{"", "200", 0, 0, true},
	}

	for _, tt := range tests {
		page, limit, err := parseOrdersPagination(tt.page, tt.limit)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("page=%q limit=%q: expected error", tt.page, tt.limit)
			}
			continue
		}
		if err != nil {
			t.Fatalf("page=%q limit=%q: unexpected error: %v", tt.page, tt.limit, err)
		}
		if page != tt.wantPage || limit != tt.wantLimit {
			t.Fatalf("page=%q limit=%q: got (%d, %d), expected (%d, %d)",
				tt.page, tt.limit, page, limit, tt.wantPage, tt.wantLimit)
		}
	}
}
