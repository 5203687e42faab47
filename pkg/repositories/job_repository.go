// Package repositories contains the PostgreSQL data access layer.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/airkon-pratama/vendor-portal/pkg/apperrors"
	"github.com/airkon-pratama/vendor-portal/pkg/database"
	"github.com/airkon-pratama/vendor-portal/pkg/models"
)

// JobRepository defines the interface for report data access.
type JobRepository interface {
	// List returns all reports ordered by creation time, newest first.
	List(ctx context.Context) ([]*models.VendorJob, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.VendorJob, error)
	Insert(ctx context.Context, job *models.VendorJob) error
	// Update writes the whitelisted editable field subset and returns the
	// updated row. Returns apperrors.ErrNotFound for unknown ids.
	Update(ctx context.Context, id uuid.UUID, upd *models.JobUpdate) (*models.VendorJob, error)
	// Delete removes exactly the report with the given id.
	// Returns apperrors.ErrNotFound when no row matches.
	Delete(ctx context.Context, id uuid.UUID) error
}

// jobRepository implements JobRepository using PostgreSQL.
type jobRepository struct {
	db *database.DB
}

// NewJobRepository creates a new job repository.
func NewJobRepository(db *database.DB) JobRepository {
	return &jobRepository{db: db}
}

const jobColumns = `id, user_id, vendor_name, company_name, pic_name, pic_phone,
	job_type, building, floor, room, description, start_time, end_time,
	photos, created_at`

// List returns all reports ordered by created_at descending.
func (r *jobRepository) List(ctx context.Context) ([]*models.VendorJob, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.VendorJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}

	return jobs, nil
}

// GetByID retrieves a single report.
func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.VendorJob, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return job, nil
}

// Insert stores a new report. This is the sole commit point of a submission.
func (r *jobRepository) Insert(ctx context.Context, job *models.VendorJob) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO jobs (id, user_id, vendor_name, company_name, pic_name, pic_phone,
			job_type, building, floor, room, description, start_time, end_time,
			photos, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.Exec(ctx, query,
		job.ID,
		job.UserID,
		job.VendorName,
		job.CompanyName,
		job.PICName,
		job.PICPhone,
		job.JobType,
		job.Building,
		job.Floor,
		job.Room,
		job.Description,
		nullableTime(job.StartTime),
		nullableTime(job.EndTime),
		job.Photos,
		job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}

	return nil
}

// Update writes the whitelisted editable fields and returns the updated row.
func (r *jobRepository) Update(ctx context.Context, id uuid.UUID, upd *models.JobUpdate) (*models.VendorJob, error) {
	query := `
		UPDATE jobs
		SET vendor_name = $1, description = $2, job_type = $3, pic_name = $4,
		    pic_phone = $5, building = $6, floor = $7, room = $8
		WHERE id = $9
		RETURNING ` + jobColumns

	row := r.db.QueryRow(ctx, query,
		upd.VendorName,
		upd.Description,
		upd.JobType,
		upd.PICName,
		upd.PICPhone,
		upd.Building,
		upd.Floor,
		upd.Room,
		id,
	)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	return job, nil
}

// Delete removes a report by id.
func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// rowScanner abstracts pgx.Row and pgx.Rows for scanJob.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*models.VendorJob, error) {
	var job models.VendorJob
	var startTime, endTime *time.Time

	err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.VendorName,
		&job.CompanyName,
		&job.PICName,
		&job.PICPhone,
		&job.JobType,
		&job.Building,
		&job.Floor,
		&job.Room,
		&job.Description,
		&startTime,
		&endTime,
		&job.Photos,
		&job.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startTime != nil {
		job.StartTime = *startTime
	}
	if endTime != nil {
		job.EndTime = *endTime
	}

	return &job, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Ensure jobRepository implements JobRepository at compile time.
var _ JobRepository = (*jobRepository)(nil)
