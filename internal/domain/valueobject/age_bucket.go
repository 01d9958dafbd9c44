package valueobject

// DefaultAgeBucket is the bucket used when a survey omits its age range.
const DefaultAgeBucket = "18-24"

// ageBucketCodes maps the survey's age ranges to the model's ordinal codes.
var ageBucketCodes = map[string]int{
	"18-24": 1,
	"25-29": 2,
	"30-34": 3,
	"35-39": 4,
	"40-44": 5,
	"45-49": 6,
	"50-54": 7,
	"55-59": 8,
	"60-64": 9,
	"65-69": 10,
	"70-74": 11,
	"75-79": 12,
	"80+":   13,
}

// AgeBucketCode returns the ordinal code for an age range. Matching is exact
// and case-sensitive; unrecognized ranges fall back to code 1.
func AgeBucketCode(bucket string) int {
	if code, ok := ageBucketCodes[bucket]; ok {
		return code
	}
	return 1
}

// AgeBuckets returns the recognized age ranges in code order.
func AgeBuckets() []string {
	buckets := make([]string, len(ageBucketCodes))
	for bucket, code := range ageBucketCodes {
		buckets[code-1] = bucket
	}
	return buckets
}
