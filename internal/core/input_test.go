package core

import "testing"

func TestParseActionRoundTrip(t *testing.T) {
	for _, a := range []Action{ActionJump, ActionPause, ActionStart, ActionDifficulty, ActionScores, ActionQuit} {
		if got := ParseAction(a.String()); got != a {
			t.Errorf("ParseAction(%q) = %v, expected %v", a.String(), got, a)
		}
	}
}

func TestParseActionAliases(t *testing.T) {
	tests := []struct {
		in       string
		expected Action
	}{
		{"tap", ActionJump},
		{" Restart ", ActionStart},
		{"resume", ActionPause},
		{"fly", ActionNone},
		{"", ActionNone},
	}

	for _, tc := range tests {
		if got := ParseAction(tc.in); got != tc.expected {
			t.Errorf("ParseAction(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}
