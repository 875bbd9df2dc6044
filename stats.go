package libcds

import "fmt"

// Stats is a point-in-time, non-linearizable snapshot of a Set's
// internal state, intended for diagnostics and tuning rather than
// correctness-sensitive logic. Grounded on the teacher's MapStats /
// (*MapOf).Stats in mapof.go, trimmed to the fields a fixed-bucket,
// no-resize set can actually report.
type Stats struct {
	// BucketCount is the fixed number of buckets in the table.
	BucketCount int
	// ApproxSize is the same approximate count Size returns.
	ApproxSize int
	// MinBucketLen and MaxBucketLen bound the observed unmarked chain
	// length across all buckets in this snapshot.
	MinBucketLen int
	MaxBucketLen int
	// TotalUnmarked is the number of live (unmarked) nodes counted
	// directly by walking every bucket, as a cross-check against
	// ApproxSize.
	TotalUnmarked int
	// ParticipantCount is the number of registered epoch participant
	// slots, a rough upper bound on concurrently active goroutines that
	// have ever touched this Set.
	ParticipantCount int
}

// Stats walks every bucket and computes a snapshot. Not safe to treat
// as a linearizable count: concurrent mutation during the walk can
// make TotalUnmarked and ApproxSize disagree (spec §5).
func (s *Set[T, K]) Stats() Stats {
	st := Stats{
		BucketCount:  len(s.buckets),
		ApproxSize:   s.Size(),
		MinBucketLen: -1,
	}

	for i := range s.buckets {
		n := 0
		s.buckets[i].list.rangeUnmarked(func(*node[T, K]) bool {
			n++
			return true
		})
		st.TotalUnmarked += n
		if st.MinBucketLen == -1 || n < st.MinBucketLen {
			st.MinBucketLen = n
		}
		if n > st.MaxBucketLen {
			st.MaxBucketLen = n
		}
	}
	if st.MinBucketLen == -1 {
		st.MinBucketLen = 0
	}

	s.epoch.mu.Lock()
	st.ParticipantCount = len(s.epoch.participants)
	s.epoch.mu.Unlock()

	return st
}

// String renders the snapshot for logs and test failures.
func (st Stats) String() string {
	return fmt.Sprintf(
		"Stats{buckets: %d, approxSize: %d, totalUnmarked: %d, bucketLen: [%d, %d], participants: %d}",
		st.BucketCount, st.ApproxSize, st.TotalUnmarked, st.MinBucketLen, st.MaxBucketLen, st.ParticipantCount,
	)
}
