package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"deep_sea_life", "deep_sea_life"},
		{"  Ocean Floor  ", "Ocean Floor"},
		{"a/b\\c:d", "a-b-c-d"},
		{"what?", "what"},
		{"\"quoted\" <name>", "quoted name"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeFileName(tc.in); got != tc.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"deep_sea_life", "deep_sea_life"},
		{"Ocean Floor", "ocean_floor"},
		{"Episode #42!", "episode__42"},
		{"already-safe", "already-safe"},
		{"", "unknown"},
		{"___", "unknown"},
	}
	for _, tc := range cases {
		if got := SanitizeToken(tc.in); got != tc.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
