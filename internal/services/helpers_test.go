package services

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/resume-tailor/internal/models"
	"alfredoptarigan/resume-tailor/internal/repositories"
)

type memoryJobRepo struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]models.Job
}

func newMemoryJobRepo() *memoryJobRepo {
	return &memoryJobRepo{jobs: make(map[uuid.UUID]models.Job)}
}

func (r *memoryJobRepo) Create(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = *job
	return nil
}

func (r *memoryJobRepo) FindByID(id uuid.UUID) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	return &job, nil
}

func (r *memoryJobRepo) UpdateStatus(id uuid.UUID, status models.JobStatus) error {
	return r.mutate(id, func(j *models.Job) { j.Status = status })
}

func (r *memoryJobRepo) MarkCompleted(id uuid.UUID, files []string) error {
	return r.mutate(id, func(j *models.Job) {
		j.Status = models.StatusCompleted
		j.Files = strings.Join(files, ",")
	})
}

func (r *memoryJobRepo) MarkFailed(id uuid.UUID, errorMsg string, files []string) error {
	return r.mutate(id, func(j *models.Job) {
		j.Status = models.StatusFailed
		j.ErrorMessage = &errorMsg
		j.Files = strings.Join(files, ",")
	})
}

func (r *memoryJobRepo) jobsWithStatus(status models.JobStatus) []models.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	var jobs []models.Job
	for _, j := range r.jobs {
		if j.Status == status {
			jobs = append(jobs, j)
		}
	}
	return jobs
}

func (r *memoryJobRepo) mutate(id uuid.UUID, fn func(*models.Job)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return repositories.ErrJobNotFound
	}
	fn(&job)
	r.jobs[id] = job
	return nil
}

// recorder keeps the order of download initiations and sleeps.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fakeDownloads struct {
	rec   *recorder
	mu    sync.Mutex
	calls []DownloadOptions
	fail  map[string]error
}

func (f *fakeDownloads) Download(ctx context.Context, opts DownloadOptions) (int, <-chan DownloadResult) {
	f.mu.Lock()
	f.calls = append(f.calls, opts)
	id := len(f.calls)
	f.mu.Unlock()

	if f.rec != nil {
		f.rec.add("download:" + opts.Filename)
	}

	done := make(chan DownloadResult, 1)
	done <- DownloadResult{ID: id, Path: opts.Filename, Err: f.fail[opts.Filename]}
	return id, done
}

func (f *fakeDownloads) EnsureDir() error { return nil }

func (f *fakeDownloads) options() []DownloadOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]DownloadOptions(nil), f.calls...)
}
