// Package jobs holds the in-memory job registry and the lifecycle event
// log. The registry is the only shared mutable state in the service; every
// operation takes the table lock individually so a long-running submission
// never blocks an unrelated status poll.
package jobs

import (
	"sync"
	"time"

	"speech-transcriber/internal/domain"
)

// Patch carries the optional fields of a partial job update. Nil fields are
// left untouched.
type Patch struct {
	Status          *domain.JobStatus
	DurationSeconds *float64
	OutputFilename  *string
	DownloadURL     *string
	Error           *string
}

// Registry is a concurrency-safe table of job records keyed by job id.
// Records move in and out by value so callers can never mutate internal
// state through a returned snapshot.
type Registry struct {
	mu   sync.Mutex
	jobs map[string]domain.JobRecord
	now  func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		jobs: make(map[string]domain.JobRecord),
		now:  time.Now,
	}
}

// Create inserts a record. A duplicate id silently overwrites: ids are
// generated per submission and expected unique, this is not an enforced
// constraint.
func (r *Registry) Create(rec domain.JobRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[rec.ID] = rec
}

// Get returns a snapshot of the record for id.
func (r *Registry) Get(id string) (domain.JobRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.jobs[id]
	return rec, ok
}

// Update applies the non-nil fields of patch atomically and advances
// UpdatedAt. An unknown id is a no-op reported through the second return.
func (r *Registry) Update(id string, patch Patch) (domain.JobRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.jobs[id]
	if !ok {
		return domain.JobRecord{}, false
	}

	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	if patch.DurationSeconds != nil {
		rec.DurationSeconds = *patch.DurationSeconds
	}
	if patch.OutputFilename != nil {
		rec.OutputFilename = *patch.OutputFilename
	}
	if patch.DownloadURL != nil {
		rec.DownloadURL = *patch.DownloadURL
	}
	if patch.Error != nil {
		rec.Error = *patch.Error
	}
	rec.UpdatedAt = r.now().UTC()

	r.jobs[id] = rec
	return rec, true
}

// Delete removes the record for id if present.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
}

// FindByOutputFilename returns the job that produced the named output.
// Linear scan: the table is bounded by in-flight plus recently submitted
// jobs, so O(n) here is deliberate.
func (r *Registry) FindByOutputFilename(name string) (domain.JobRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.jobs {
		if rec.OutputFilename == name {
			return rec, true
		}
	}
	return domain.JobRecord{}, false
}

// Len reports the number of tracked jobs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}
