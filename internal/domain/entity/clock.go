package entity

import "time"

// nextTimestamp returns a timestamp strictly after prev. On platforms where
// the wall clock has not advanced between two mutations, it falls back to a
// one-microsecond logical bump so UpdatedAt stays strictly increasing.
func nextTimestamp(prev time.Time) time.Time {
	now := time.Now()
	if !now.After(prev) {
		return prev.Add(time.Microsecond)
	}

	return now
}
