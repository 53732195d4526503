package app

import "testing"

func TestOriginAllowList(t *testing.T) {
	list := originAllowList{"example.com", "*.nilehomes.net", "localhost:*"}
	cases := []struct {
		origin string
		want   bool
	}{
		{"https://example.com", true},
		{"https://EXAMPLE.com", true},
		{"https://www.nilehomes.net", true},
		{"https://nilehomes.net", false},
		{"http://localhost:5173", true},
		{"http://localhost", false},
		{"https://evil-example.com", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := list.allows(tc.origin); got != tc.want {
			t.Errorf("allows(%q) = %v, want %v", tc.origin, got, tc.want)
		}
	}
}
