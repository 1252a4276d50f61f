package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"alfredoptarigan/resume-tailor/internal/models"
	"alfredoptarigan/resume-tailor/internal/repositories"
)

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type OrchestratorConfig struct {
	EndpointURL string
	// CoverLetterDelay is waited after the resume download is initiated and
	// before the cover letter download is. It only lowers the chance of the
	// two saves being coalesced.
	CoverLetterDelay time.Duration
	ConflictAction   string
}

type OrchestratorOption func(*orchestrator)

func WithTailorClient(client TailorClient) OrchestratorOption {
	return func(o *orchestrator) {
		o.client = client
	}
}

func WithHTTPClient(httpClient *http.Client) OrchestratorOption {
	return func(o *orchestrator) {
		o.httpClient = httpClient
	}
}

func WithSleeper(sleep Sleeper) OrchestratorOption {
	return func(o *orchestrator) {
		o.sleep = sleep
	}
}

type Orchestrator interface {
	// HandleJob runs one job to completion or failure. Failures are logged
	// and recorded on the job; they are never returned.
	HandleJob(ctx context.Context, jobID uuid.UUID, req models.TailorRequest)
}

type orchestrator struct {
	client         TailorClient
	httpClient     *http.Client
	downloads      DownloadManager
	jobRepo        repositories.JobRepository
	sleep          Sleeper
	delay          time.Duration
	conflictAction string
	log            zerolog.Logger
}

func NewOrchestrator(
	cfg OrchestratorConfig,
	downloads DownloadManager,
	jobRepo repositories.JobRepository,
	log zerolog.Logger,
	opts ...OrchestratorOption,
) Orchestrator {
	o := &orchestrator{
		downloads:      downloads,
		jobRepo:        jobRepo,
		sleep:          Sleep,
		delay:          cfg.CoverLetterDelay,
		conflictAction: cfg.ConflictAction,
		log:            log,
	}
	if o.conflictAction == "" {
		o.conflictAction = ConflictOverwrite
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.client == nil {
		o.client = NewTailorClient(cfg.EndpointURL, o.httpClient)
	}

	return o
}

// HandleJob implements Orchestrator.
func (o *orchestrator) HandleJob(ctx context.Context, jobID uuid.UUID, req models.TailorRequest) {
	log := o.log.With().Str("job_id", jobID.String()).Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("❌ Job aborted")
			o.markFailed(log, jobID, fmt.Sprintf("internal error: %v", r), nil)
		}
	}()

	if err := o.jobRepo.UpdateStatus(jobID, models.StatusProcessing); err != nil {
		log.Warn().Err(err).Msg("⚠️  Failed to update job status")
	}

	log.Info().
		Int("job_text_length", len(req.JobText)).
		Bool("include_cover_letter", req.IncludeCoverLetter).
		Msg("📤 Sending request to tailoring service")

	resp, err := o.client.Tailor(ctx, req)
	if err != nil {
		var remoteErr *RemoteError
		if errors.As(err, &remoteErr) {
			log.Error().
				Int("status", remoteErr.StatusCode).
				Str("body", remoteErr.Body).
				Msg("❌ Tailoring service rejected the job")
		} else {
			log.Error().Err(err).Msg("❌ Tailoring request failed")
		}
		o.markFailed(log, jobID, err.Error(), nil)
		return
	}

	tasks, err := BuildDownloadTasks(resp)
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to decode tailoring response")
		o.markFailed(log, jobID, err.Error(), nil)
		return
	}

	log.Info().Int("files", len(tasks)).Msg("📥 Tailoring response received")

	saved, err := o.runDownloads(ctx, log, tasks)
	if err != nil {
		o.markFailed(log, jobID, err.Error(), saved)
		return
	}

	if err := o.jobRepo.MarkCompleted(jobID, saved); err != nil {
		log.Warn().Err(err).Msg("⚠️  Failed to record job completion")
	}
	log.Info().Strs("files", saved).Msg("✅ Job completed")
}

// BuildDownloadTasks decodes a response into its downloads: the resume
// always first, the cover letter second when present.
func BuildDownloadTasks(resp *models.TailorResponse) ([]models.DownloadTask, error) {
	if resp == nil || resp.Resume == "" {
		return nil, ErrMissingResume
	}

	resume, err := DecodeBlob(resp.Resume)
	if err != nil {
		return nil, fmt.Errorf("resume: %w", err)
	}

	tasks := []models.DownloadTask{
		{Filename: models.ResumeFilename, Payload: resume, Sequence: 0},
	}

	if resp.CoverLetter != "" {
		coverLetter, err := DecodeBlob(resp.CoverLetter)
		if err != nil {
			return nil, fmt.Errorf("cover letter: %w", err)
		}
		tasks = append(tasks, models.DownloadTask{
			Filename: models.CoverLetterFilename,
			Payload:  coverLetter,
			Sequence: 1,
		})
	}

	return tasks, nil
}

type startedDownload struct {
	task models.DownloadTask
	id   int
	done <-chan DownloadResult
}

// runDownloads initiates every task in order and then waits for all of
// them. The delay is measured between initiations, not completions.
func (o *orchestrator) runDownloads(ctx context.Context, log zerolog.Logger, tasks []models.DownloadTask) ([]string, error) {
	started := make([]startedDownload, 0, len(tasks))

	for i, task := range tasks {
		if i > 0 {
			if err := o.sleep(ctx, o.delay); err != nil {
				log.Error().Err(err).Str("filename", task.Filename).Msg("❌ Download sequence interrupted")
				break
			}
		}

		id, done := o.downloads.Download(ctx, DownloadOptions{
			URL:            DataURI(PDFMimeType, task.Payload),
			Filename:       task.Filename,
			SaveAs:         false,
			ConflictAction: o.conflictAction,
		})
		log.Info().Int("download_id", id).Str("filename", task.Filename).Msg("⬇️  Download started")

		started = append(started, startedDownload{task: task, id: id, done: done})
	}

	var saved []string
	var failed []error
	for _, d := range started {
		res := <-d.done
		if res.Err != nil {
			log.Error().Err(res.Err).Int("download_id", d.id).Str("filename", d.task.Filename).Msg("❌ Download failed")
			failed = append(failed, fmt.Errorf("%s: %w", d.task.Filename, res.Err))
			continue
		}
		log.Info().Int("download_id", d.id).Str("path", res.Path).Msg("✅ Download finished")
		saved = append(saved, d.task.Filename)
	}

	if len(started) < len(tasks) {
		failed = append(failed, fmt.Errorf("%d of %d downloads not started", len(tasks)-len(started), len(tasks)))
	}

	return saved, errors.Join(failed...)
}

func (o *orchestrator) markFailed(log zerolog.Logger, jobID uuid.UUID, msg string, saved []string) {
	if err := o.jobRepo.MarkFailed(jobID, msg, saved); err != nil {
		log.Warn().Err(err).Msg("⚠️  Failed to record job failure")
	}
}
