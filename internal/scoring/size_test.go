package scoring

import "testing"

func strPtr(s string) *string { return &s }

func TestNormalizeCompanySize(t *testing.T) {
	cases := []struct {
		name string
		in   *string
		want *string
	}{
		{"nil stays nil", nil, nil},
		{"canonical unchanged", strPtr("201-500"), strPtr("201-500")},
		{"largest bucket", strPtr("10001+"), strPtr("10001+")},
		{"employees suffix stripped", strPtr("201-500 employees"), strPtr("201-500")},
		{"case insensitive", strPtr("1-10 EMPLOYEES"), strPtr("1-10")},
		{"small alias", strPtr("small"), strPtr("1-10")},
		{"medium alias", strPtr("Medium"), strPtr("51-200")},
		{"large alias", strPtr("large"), strPtr("1001-5000")},
		{"enterprise alias", strPtr("Enterprise"), strPtr("5001-10000")},
		{"unrecognized passes through", strPtr("a few people"), strPtr("a few people")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeCompanySize(tc.in)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("NormalizeCompanySize(%v) = %v, want %v", tc.in, got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("NormalizeCompanySize(%q) = %q, want %q", *tc.in, *got, *tc.want)
			}
		})
	}
}

func TestNormalizeCompanySizeIdempotent(t *testing.T) {
	inputs := []*string{
		nil,
		strPtr("small"),
		strPtr("201-500 employees"),
		strPtr("10001+"),
		strPtr("completely unknown"),
	}
	for _, in := range inputs {
		once := NormalizeCompanySize(in)
		twice := NormalizeCompanySize(once)
		if (once == nil) != (twice == nil) {
			t.Fatalf("normalization not idempotent for %v", in)
		}
		if once != nil && *once != *twice {
			t.Fatalf("normalization not idempotent: %q then %q", *once, *twice)
		}
	}
}

func TestCompanySizeIndex(t *testing.T) {
	if got := CompanySizeIndex(strPtr("1-10")); got != 0 {
		t.Errorf("index of 1-10 = %d, want 0", got)
	}
	if got := CompanySizeIndex(strPtr("10001+")); got != 7 {
		t.Errorf("index of 10001+ = %d, want 7", got)
	}
	if got := CompanySizeIndex(strPtr("not a bucket")); got != -1 {
		t.Errorf("index of unknown = %d, want -1", got)
	}
	if got := CompanySizeIndex(nil); got != -1 {
		t.Errorf("index of nil = %d, want -1", got)
	}
}
