package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"us national with punctuation", "(415) 555-2671", "+14155552671", true},
		{"already e164", "+14155552671", "+14155552671", true},
		{"international with country code", "+31 20 794 0000", "+31207940000", true},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
		{"garbage", "not-a-phone", "not-a-phone", false},
		{"too short", "12", "12", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeE164(tc.input)
			if ok != tc.ok {
				t.Fatalf("NormalizeE164(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			}
			if got != tc.want {
				t.Errorf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
