package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dkarlsen/notedoc/internal/render"
)

// JobStatus represents the state of a conversion job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusParsing   JobStatus = "parsing"
	StatusRendering JobStatus = "rendering"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusDuplicate JobStatus = "duplicate"
)

// Job tracks the state of a single note conversion.
type Job struct {
	mu sync.Mutex

	ID       string `json:"job_id"`
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Format   string `json:"format"`   // parser format ("" = by extension)
	Renderer string `json:"renderer"` // render backend name

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	result   *render.Result
	errors   []string
}

// Progress tracks conversion progress.
type Progress struct {
	Paragraphs int      `json:"paragraphs"`
	Mentions   int      `json:"mentions"`
	Errors     []string `json:"errors"`
}

// cacheEntry is a rendered result keyed by content hash.
type cacheEntry struct {
	result *render.Result
	at     time.Time
}

// JobStore is a thread-safe in-memory job registry with TTL eviction, plus a
// result cache keyed by parsed-content hash so identical notes are not
// rendered twice.
type JobStore struct {
	mu    sync.Mutex
	jobs  map[string]*Job
	cache map[string]cacheEntry
	ttl   time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs:  make(map[string]*Job),
		cache: make(map[string]cacheEntry),
		ttl:   ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// CachedResult returns a previously rendered result for the content hash, or
// nil. The cache key includes the renderer name since backends differ.
func (s *JobStore) CachedResult(renderer, hash string) *render.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.cache[renderer+":"+hash]; ok {
		return e.result
	}
	return nil
}

// CacheResult stores a rendered result under the content hash.
func (s *JobStore) CacheResult(renderer, hash string, res *render.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[renderer+":"+hash] = cacheEntry{result: res, at: time.Now()}
}

// Cleanup removes expired jobs and cache entries.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
	for key, e := range s.cache {
		if now.Sub(e.at) > s.ttl {
			delete(s.cache, key)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetCounts records paragraph and mention totals from the parse.
func (j *Job) SetCounts(paragraphs, mentions int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Paragraphs = paragraphs
	j.Progress.Mentions = mentions
	j.UpdatedAt = time.Now()
}

// SetContentHash records the hash of the parsed content.
func (j *Job) SetContentHash(hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = hash
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw note bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw note bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetResult stores the render output.
func (j *Job) SetResult(res *render.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = res
	j.UpdatedAt = time.Now()
}

// Result returns the render output, or nil if the job has not completed.
func (j *Job) Result() *render.Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	Format      string    `json:"format"`
	Renderer    string    `json:"renderer"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Progress    Progress  `json:"progress"`
	ResultURL   string    `json:"result_url,omitempty"`
	ContentHash string    `json:"content_hash,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	snap := JobSnapshot{
		ID:          j.ID,
		Filename:    j.Filename,
		Title:       j.Title,
		Format:      j.Format,
		Renderer:    j.Renderer,
		Status:      j.Status,
		Phase:       j.Phase,
		ContentHash: j.ContentHash,
		Progress: Progress{
			Paragraphs: j.Progress.Paragraphs,
			Mentions:   j.Progress.Mentions,
			Errors:     errs,
		},
	}
	if j.result != nil {
		snap.ResultURL = j.result.URL
	}
	return snap
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
