package scoring

import "strings"

// companySizeBuckets is the canonical size ladder, smallest to largest.
// Index positions are used to compute ordinal distance between a lead's
// bucket and the nearest target bucket.
var companySizeBuckets = []string{
	"1-10",
	"11-50",
	"51-200",
	"201-500",
	"501-1000",
	"1001-5000",
	"5001-10000",
	"10001+",
}

// sizeAliases maps qualitative size labels to canonical buckets.
var sizeAliases = map[string]string{
	"small":      "1-10",
	"medium":     "51-200",
	"large":      "1001-5000",
	"enterprise": "5001-10000",
}

// NormalizeCompanySize maps heterogeneous company-size inputs to a canonical
// bucket. Matching is case-insensitive and a trailing " employees" suffix is
// stripped. Unrecognized strings pass through unchanged; normalization is
// best-effort and never fails.
func NormalizeCompanySize(raw *string) *string {
	if raw == nil {
		return nil
	}

	value := strings.TrimSpace(*raw)
	lower := strings.ToLower(value)
	lower = strings.TrimSpace(strings.TrimSuffix(lower, "employees"))

	if alias, ok := sizeAliases[lower]; ok {
		return &alias
	}
	for _, bucket := range companySizeBuckets {
		if lower == bucket {
			b := bucket
			return &b
		}
	}
	return raw
}

// CompanySizeIndex returns the ordinal position of a canonical bucket in the
// size ladder, or -1 when the bucket is unknown or nil. The -1 sentinel
// always yields the minimum size-match score downstream.
func CompanySizeIndex(normalized *string) int {
	if normalized == nil {
		return -1
	}
	needle := strings.ToLower(strings.TrimSpace(*normalized))
	for i, bucket := range companySizeBuckets {
		if needle == bucket {
			return i
		}
	}
	return -1
}
