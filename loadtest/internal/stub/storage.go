package stub

import (
	"sort"
	"sync"
	"time"
)

const defaultApproach = "Approach 1"

type Bucket struct {
	Approach  string
	Lane      string
	StartTime time.Time
	EndTime   time.Time
	Volume    int
}

type laneKey struct {
	approach string
	lane     string
}

// BucketStorage holds seeded volumes and injected faults per location group.
type BucketStorage struct {
	mu      sync.RWMutex
	buckets map[string][]*Bucket // locationGroup -> buckets
	faults  map[string]string    // locationGroup -> error document
}

func NewBucketStorage() *BucketStorage {
	return &BucketStorage{
		buckets: make(map[string][]*Bucket),
		faults:  make(map[string]string),
	}
}

func (s *BucketStorage) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets = make(map[string][]*Bucket)
	s.faults = make(map[string]string)
}

func (s *BucketStorage) AddBucket(locationGroup string, bucket *Bucket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bucket.Approach == "" {
		bucket.Approach = defaultApproach
	}
	s.buckets[locationGroup] = append(s.buckets[locationGroup], bucket)
}

func (s *BucketStorage) SetFault(locationGroup, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if message == "" {
		delete(s.faults, locationGroup)
		return
	}
	s.faults[locationGroup] = message
}

func (s *BucketStorage) Fault(locationGroup string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	message, ok := s.faults[locationGroup]
	return message, ok
}

// Statistics sums every seeded lane over [start, end). A group without
// buckets yields an empty document.
func (s *BucketStorage) Statistics(locationGroup string, start, end time.Time) statisticsDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	volumes := make(map[laneKey]int)
	for _, bucket := range s.buckets[locationGroup] {
		key := laneKey{approach: bucket.Approach, lane: bucket.Lane}
		volumes[key] += vehiclesInRange(bucket, start, end)
	}

	keys := make([]laneKey, 0, len(volumes))
	for key := range volumes {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].approach != keys[j].approach {
			return keys[i].approach < keys[j].approach
		}
		return keys[i].lane < keys[j].lane
	})

	var doc statisticsDocument
	for _, key := range keys {
		n := len(doc.Approaches)
		if n == 0 || doc.Approaches[n-1].Name != key.approach {
			doc.Approaches = append(doc.Approaches, approachDocument{Name: key.approach})
			n++
		}
		doc.Approaches[n-1].Lanes = append(doc.Approaches[n-1].Lanes, laneDocument{
			Name: key.lane,
			Stat: statDocument{Volume: volumes[key]},
		})
	}

	return doc
}

// vehiclesInRange places vehicle i at StartTime + i*interval and counts the
// ones inside [start, end).
func vehiclesInRange(bucket *Bucket, start, end time.Time) int {
	if bucket.Volume == 0 || !bucket.EndTime.After(start) || !bucket.StartTime.Before(end) {
		return 0
	}

	bucketDuration := bucket.EndTime.Sub(bucket.StartTime)
	if bucketDuration <= 0 {
		bucketDuration = time.Minute
	}

	interval := bucketDuration / time.Duration(bucket.Volume)
	if interval == 0 {
		interval = time.Nanosecond
	}

	count := 0
	for i := 0; i < bucket.Volume; i++ {
		at := bucket.StartTime.Add(time.Duration(i) * interval)
		if at.Before(start) || !at.Before(end) {
			continue
		}
		count++
	}

	return count
}
