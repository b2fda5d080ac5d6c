package dataset

import (
	"sort"
	"time"
)

// DeliveryRecord is a single order from the delivery dataset.
// Records are immutable after load.
type DeliveryRecord struct {
	OrderID         string    `json:"order_id"`
	Platform        string    `json:"platform"`
	OrderValue      float64   `json:"order_value"`
	DeliveryTimeMin float64   `json:"delivery_time_minutes"`
	Category        string    `json:"product_category"`
	Rating          float64   `json:"service_rating"`
	OrderedAt       time.Time `json:"ordered_at,omitempty"`
}

// Dataset holds the validated delivery records for a session.
// It is read-only after Load returns; no method mutates it.
type Dataset struct {
	records       []DeliveryRecord
	platforms     []string
	categories    []string
	hasTimestamps bool
	source        string
	loadedAt      time.Time
}

// Len returns the number of records in the dataset
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns the loaded records. The slice is shared and must be
// treated as read-only.
func (d *Dataset) Records() []DeliveryRecord {
	return d.records
}

// Platforms returns the distinct platform names, sorted lexicographically
func (d *Dataset) Platforms() []string {
	return d.platforms
}

// Categories returns the distinct product categories, sorted lexicographically
func (d *Dataset) Categories() []string {
	return d.categories
}

// HasTimestamps reports whether the source CSV carried a Timestamp column
func (d *Dataset) HasTimestamps() bool {
	return d.hasTimestamps
}

// Source returns the path the dataset was loaded from
func (d *Dataset) Source() string {
	return d.source
}

// LoadedAt returns the time the dataset was loaded
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}

// distinctSorted returns the sorted set of values produced by get
func distinctSorted(records []DeliveryRecord, get func(DeliveryRecord) string) []string {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[get(r)] = struct{}{}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
