package dataset

// Filter selects a subset of records for aggregation. Empty fields match
// all values.
type Filter struct {
	Platform string `json:"platform,omitempty"`
	Category string `json:"category,omitempty"`
}

// IsZero reports whether the filter matches every record
func (f Filter) IsZero() bool {
	return f.Platform == "" && f.Category == ""
}

// Matches reports whether a record passes the filter
func (f Filter) Matches(r DeliveryRecord) bool {
	if f.Platform != "" && r.Platform != f.Platform {
		return false
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	return true
}

// Apply returns the records matching the filter. The input is never
// modified; with a zero filter the original slice is returned as-is.
func (f Filter) Apply(records []DeliveryRecord) []DeliveryRecord {
	if f.IsZero() {
		return records
	}

	matched := make([]DeliveryRecord, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			matched = append(matched, r)
		}
	}
	return matched
}
