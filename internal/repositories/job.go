package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-tailor/internal/models"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id uuid.UUID) (*models.Job, error)
	UpdateStatus(id uuid.UUID, status models.JobStatus) error
	MarkCompleted(id uuid.UUID, files []string) error
	// MarkFailed records the failure along with any files saved before it.
	MarkFailed(id uuid.UUID, errorMsg string, files []string) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *models.Job) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *jobRepository) FindByID(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

func (r *jobRepository) UpdateStatus(id uuid.UUID, status models.JobStatus) error {
	return r.update(id, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
}

func (r *jobRepository) MarkCompleted(id uuid.UUID, files []string) error {
	return r.update(id, map[string]interface{}{
		"status":     models.StatusCompleted,
		"files":      strings.Join(files, ","),
		"updated_at": time.Now(),
	})
}

func (r *jobRepository) MarkFailed(id uuid.UUID, errorMsg string, files []string) error {
	return r.update(id, map[string]interface{}{
		"status":        models.StatusFailed,
		"error_message": errorMsg,
		"files":         strings.Join(files, ","),
		"updated_at":    time.Now(),
	})
}

func (r *jobRepository) update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.Job{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update job: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}
