package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-tailor/internal/models"
)

func newTestRepo(t *testing.T) JobRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Job{}))
	return NewJobRepository(db)
}

func newJob() *models.Job {
	return &models.Job{
		ID:                 uuid.New(),
		IncludeCoverLetter: true,
		JobTextLength:      42,
		Status:             models.StatusQueued,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
}

func TestJobRepository_CreateAndFind(t *testing.T) {
	repo := newTestRepo(t)
	job := newJob()

	require.NoError(t, repo.Create(job))

	found, err := repo.FindByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, found.ID)
	assert.Equal(t, models.StatusQueued, found.Status)
	assert.True(t, found.IncludeCoverLetter)
	assert.Equal(t, 42, found.JobTextLength)
}

func TestJobRepository_FindByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobRepository_Lifecycle(t *testing.T) {
	repo := newTestRepo(t)
	job := newJob()
	require.NoError(t, repo.Create(job))

	require.NoError(t, repo.UpdateStatus(job.ID, models.StatusProcessing))
	found, err := repo.FindByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, found.Status)

	require.NoError(t, repo.MarkCompleted(job.ID, []string{models.ResumeFilename, models.CoverLetterFilename}))
	found, err = repo.FindByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, found.Status)
	assert.Equal(t, "tailored_resume.pdf,cover_letter.pdf", found.Files)
}

func TestJobRepository_MarkFailed(t *testing.T) {
	repo := newTestRepo(t)
	job := newJob()
	require.NoError(t, repo.Create(job))

	require.NoError(t, repo.MarkFailed(job.ID, "remote service returned 500", nil))

	found, err := repo.FindByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, found.Status)
	require.NotNil(t, found.ErrorMessage)
	assert.Equal(t, "remote service returned 500", *found.ErrorMessage)
	assert.Empty(t, found.Files)
}

func TestJobRepository_MarkFailedKeepsSavedFiles(t *testing.T) {
	repo := newTestRepo(t)
	job := newJob()
	require.NoError(t, repo.Create(job))

	require.NoError(t, repo.MarkFailed(job.ID, "cover_letter.pdf: disk full", []string{models.ResumeFilename}))

	found, err := repo.FindByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, found.Status)
	assert.Equal(t, []string{"tailored_resume.pdf"}, models.NewJobResponse(found).Files)
}

func TestJobRepository_UpdateUnknownJob(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.UpdateStatus(uuid.New(), models.StatusProcessing)
	assert.ErrorIs(t, err, ErrJobNotFound)
}
