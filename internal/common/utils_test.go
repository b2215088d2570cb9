package common

import "testing"

func TestHasAny(t *testing.T) {
	tests := []struct {
		s    string
		subs []string
		want bool
	}{
		{"ZERO_RESULTS", []string{"zero_results"}, true},
		{"REQUEST_DENIED", []string{"ZERO_RESULTS", "not found"}, false},
		{"anything", nil, false},
	}

	for _, tt := range tests {
		if got := HasAny(tt.s, tt.subs...); got != tt.want {
			t.Errorf("HasAny(%q, %v) = %v, want %v", tt.s, tt.subs, got, tt.want)
		}
	}
}
