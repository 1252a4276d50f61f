package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"alfredoptarigan/resume-tailor/internal/models"
	"alfredoptarigan/resume-tailor/internal/repositories"
)

var (
	ErrWorkerStopped = errors.New("worker stopped")
	ErrQueueFull     = errors.New("job queue is full")
)

// Worker runs dispatched jobs on background goroutines. Jobs are not
// serialized against each other.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	// Dispatch records and queues a job and returns without waiting for it.
	// A full queue fails fast with ErrQueueFull.
	Dispatch(req models.TailorRequest) (uuid.UUID, error)
}

type queuedJob struct {
	id  uuid.UUID
	req models.TailorRequest
}

type worker struct {
	jobRepo      repositories.JobRepository
	orchestrator Orchestrator
	jobQueue     chan queuedJob
	concurrency  int
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once
	log          zerolog.Logger
}

func NewWorker(
	jobRepo repositories.JobRepository,
	orchestrator Orchestrator,
	concurrency int,
	queueSize int,
	log zerolog.Logger,
) Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &worker{
		jobRepo:      jobRepo,
		orchestrator: orchestrator,
		jobQueue:     make(chan queuedJob, queueSize),
		concurrency:  concurrency,
		stopChan:     make(chan struct{}),
		log:          log,
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.log.Info().Int("concurrency", w.concurrency).Msg("🚀 Starting worker")

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker. Jobs already running finish; queued ones are dropped.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.log.Info().Msg("🛑 Stopping worker...")
		close(w.stopChan)
		w.wg.Wait()
		w.log.Info().Msg("✅ Worker stopped")
	})
}

// Dispatch implements Worker.
func (w *worker) Dispatch(req models.TailorRequest) (uuid.UUID, error) {
	select {
	case <-w.stopChan:
		return uuid.Nil, ErrWorkerStopped
	default:
	}

	job := &models.Job{
		ID:                 uuid.New(),
		IncludeCoverLetter: req.IncludeCoverLetter,
		JobTextLength:      len(req.JobText),
		Status:             models.StatusQueued,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	if err := w.jobRepo.Create(job); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}

	select {
	case <-w.stopChan:
		return uuid.Nil, w.rejectJob(job.ID, ErrWorkerStopped)
	default:
	}

	select {
	case w.jobQueue <- queuedJob{id: job.ID, req: req}:
		w.log.Info().Str("job_id", job.ID.String()).Msg("📥 Job enqueued")
		return job.ID, nil
	default:
		return uuid.Nil, w.rejectJob(job.ID, ErrQueueFull)
	}
}

func (w *worker) rejectJob(id uuid.UUID, reason error) error {
	w.log.Warn().Str("job_id", id.String()).Err(reason).Msg("⚠️  Cannot enqueue job")
	if err := w.jobRepo.MarkFailed(id, reason.Error(), nil); err != nil {
		w.log.Warn().Err(err).Msg("⚠️  Failed to record job failure")
	}
	return reason
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.log.Debug().Int("worker", workerID).Msg("👷 Worker stopped")
			return
		case job := <-w.jobQueue:
			w.log.Info().Int("worker", workerID).Str("job_id", job.id.String()).Msg("👷 Processing job")
			w.orchestrator.HandleJob(ctx, job.id, job.req)
		}
	}
}
