package simstub

import (
	"sync"
	"time"

	"github.com/sohamshetty07/oraculum-core/internal/model"
)

// Job is one in-flight or finished simulation held in memory. Nothing
// survives a process restart.
type Job struct {
	mu sync.Mutex

	ID          string
	Scenario    model.Scenario
	ProductName string
	Status      string
	Progress    float64
	Agents      []rosterRecord
	Results     []resultRecord
	CreatedAt   time.Time
}

// snapshot renders the job's current state as a wire payload.
func (j *Job) snapshot() statusPayload {
	j.mu.Lock()
	defer j.mu.Unlock()

	agents := make([]rosterRecord, len(j.Agents))
	copy(agents, j.Agents)
	results := make([]resultRecord, len(j.Results))
	copy(results, j.Results)

	return statusPayload{
		Status:   j.Status,
		Progress: j.Progress,
		Agents:   agents,
		Results:  results,
	}
}

func (j *Job) seedRoster(agents []rosterRecord) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Agents = agents
	j.Progress = 0.25
}

func (j *Job) addResult(r resultRecord, progress float64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Results = append(j.Results, r)
	j.Progress = progress
}

// setTranscript replaces the full result list, as the feed scenario re-sends
// the transcript-to-date each round.
func (j *Job) setTranscript(results []resultRecord, progress float64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Results = results
	j.Progress = progress
}

func (j *Job) complete() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = "completed"
	j.Progress = 1.0
}

// Store is an in-memory job index keyed by job ID.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewStore creates an empty job store.
func NewStore() *Store {
	return &Store{jobs: make(map[string]*Job)}
}

// Put stores a job.
func (s *Store) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

// Get retrieves a job by ID.
func (s *Store) Get(id string) (*Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, exists := s.jobs[id]
	return job, exists
}
