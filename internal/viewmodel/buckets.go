package viewmodel

// Bucket is a half-open price range [Min, Max). A nil Max is unbounded.
type Bucket struct {
	Key   string
	Label string
	Min   float64
	Max   *float64
}

func (b Bucket) Contains(price float64) bool {
	return price >= b.Min && (b.Max == nil || price < *b.Max)
}

func bound(v float64) *float64 { return &v }

// buckets is ordered and contiguous from 0; every non-negative price falls in
// exactly one entry.
var buckets = []Bucket{
	{Key: "under-500k", Label: "Under 500k", Min: 0, Max: bound(500_000)},
	{Key: "500k-1m", Label: "500k - 1M", Min: 500_000, Max: bound(1_000_000)},
	{Key: "over-1m", Label: "Over 1M", Min: 1_000_000},
}

// Buckets returns a copy of the price bucket table in display order.
func Buckets() []Bucket {
	return append([]Bucket(nil), buckets...)
}

// BucketOf returns the bucket containing price; negative prices have none.
func BucketOf(price float64) (Bucket, bool) {
	for _, b := range buckets {
		if b.Contains(price) {
			return b, true
		}
	}
	return Bucket{}, false
}

func BucketByKey(key string) (Bucket, bool) {
	for _, b := range buckets {
		if b.Key == key {
			return b, true
		}
	}
	return Bucket{}, false
}
