// Package services contains the business logic of the vendor portal.
package services

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/airkon-pratama/vendor-portal/pkg/apperrors"
	"github.com/airkon-pratama/vendor-portal/pkg/catalog"
	"github.com/airkon-pratama/vendor-portal/pkg/models"
	"github.com/airkon-pratama/vendor-portal/pkg/repositories"
	"github.com/airkon-pratama/vendor-portal/pkg/storage"
)

// SubmitRequest carries the report fields collected by the submission wizard.
type SubmitRequest struct {
	CompanyName string
	PICName     string
	PICPhone    string
	JobType     string
	Building    string
	Floor       string
	Room        string
	Description string
	StartTime   time.Time
	EndTime     time.Time
}

// PhotoUpload is one photo attached to a submission, streamed from the
// multipart request.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// JobService defines the report lifecycle operations.
type JobService interface {
	// Submit validates a report, uploads its photos one at a time, and
	// persists the record. The insert is the sole commit point: any upload
	// failure aborts the whole submission and already-uploaded objects are
	// removed.
	Submit(ctx context.Context, user *models.User, req *SubmitRequest, photos []PhotoUpload) (*models.VendorJob, error)

	// List returns reports newest-first with the filter applied.
	List(ctx context.Context, params FilterParams) ([]*models.VendorJob, error)

	// Get returns a single report.
	Get(ctx context.Context, id uuid.UUID) (*models.VendorJob, error)

	// Update writes the whitelisted editable field subset.
	Update(ctx context.Context, id uuid.UUID, upd *models.JobUpdate) (*models.VendorJob, error)

	// Delete irreversibly removes a report.
	Delete(ctx context.Context, id uuid.UUID) error

	// ResolveGallery resolves a report's photo references to displayable
	// URLs, dropping references that resolve to no image.
	ResolveGallery(job *models.VendorJob) []string
}

// jobService implements JobService.
type jobService struct {
	repo   repositories.JobRepository
	store  storage.ObjectStore
	logger *zap.Logger
}

// NewJobService creates a new job service with dependencies.
func NewJobService(repo repositories.JobRepository, store storage.ObjectStore, logger *zap.Logger) JobService {
	return &jobService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// Submit validates, uploads photos sequentially, and persists the report.
func (s *jobService) Submit(ctx context.Context, user *models.User, req *SubmitRequest, photos []PhotoUpload) (*models.VendorJob, error) {
	if err := validateSubmit(req, photos); err != nil {
		return nil, err
	}

	uploaded := make([]string, 0, len(photos))
	photoList := make(models.PhotoList, 0, len(photos))

	for _, photo := range photos {
		objectName := generateObjectName(photo.Filename)

		path, err := s.store.Upload(ctx, objectName, photo.Reader, photo.Size, photo.ContentType)
		if err != nil {
			s.cleanupUploads(ctx, uploaded)
			return nil, fmt.Errorf("photo upload failed, submission aborted: %w", err)
		}

		uploaded = append(uploaded, path)
		photoList = append(photoList, models.JobPhoto{URL: path})
	}

	job := &models.VendorJob{
		ID:          uuid.New(),
		UserID:      user.ID,
		VendorName:  user.Name,
		CompanyName: req.CompanyName,
		PICName:     req.PICName,
		PICPhone:    req.PICPhone,
		JobType:     req.JobType,
		Building:    req.Building,
		Floor:       req.Floor,
		Room:        req.Room,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Photos:      photoList,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Insert(ctx, job); err != nil {
		// The record is the commit point; without it the uploads are orphans.
		s.cleanupUploads(ctx, uploaded)
		return nil, fmt.Errorf("failed to persist report: %w", err)
	}

	s.logger.Info("Report submitted",
		zap.String("job_id", job.ID.String()),
		zap.String("job_type", job.JobType),
		zap.Int("photos", len(photoList)))

	return job, nil
}

// List returns reports newest-first with the filter applied.
func (s *jobService) List(ctx context.Context, params FilterParams) ([]*models.VendorJob, error) {
	jobs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterJobs(jobs, params), nil
}

// Get returns a single report.
func (s *jobService) Get(ctx context.Context, id uuid.UUID) (*models.VendorJob, error) {
	return s.repo.GetByID(ctx, id)
}

// Update validates the edited values against the catalogs and writes the
// whitelisted field subset.
func (s *jobService) Update(ctx context.Context, id uuid.UUID, upd *models.JobUpdate) (*models.VendorJob, error) {
	if upd.JobType != "" && !catalog.ValidJobType(upd.JobType) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownJobType, upd.JobType)
	}
	if upd.Building != "" && !catalog.ValidBuilding(upd.Building) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownBuilding, upd.Building)
	}
	if upd.Building != "" && upd.Floor != "" && !catalog.ValidFloor(upd.Building, upd.Floor) {
		return nil, fmt.Errorf("%w: %q in %q", apperrors.ErrInvalidFloor, upd.Floor, upd.Building)
	}

	return s.repo.Update(ctx, id, upd)
}

// Delete irreversibly removes a report.
func (s *jobService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ResolveGallery resolves photo references to displayable URLs.
func (s *jobService) ResolveGallery(job *models.VendorJob) []string {
	urls := make([]string, 0, len(job.Photos))
	for _, photo := range job.Photos {
		if url := storage.ResolvePhotoURL(s.store, photo.URL); url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

// cleanupUploads removes objects uploaded during an aborted submission.
// Best effort: a failed removal is logged and does not mask the original
// error.
func (s *jobService) cleanupUploads(ctx context.Context, paths []string) {
	for _, path := range paths {
		if err := s.store.Remove(ctx, path); err != nil {
			s.logger.Warn("Failed to remove orphaned photo",
				zap.String("path", path),
				zap.Error(err))
		}
	}
}

// validateSubmit enforces the wizard's gating rules server-side.
func validateSubmit(req *SubmitRequest, photos []PhotoUpload) error {
	required := map[string]string{
		"company_name": req.CompanyName,
		"pic_name":     req.PICName,
		"pic_phone":    req.PICPhone,
		"description":  req.Description,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s", apperrors.ErrMissingField, field)
		}
	}

	if !catalog.ValidJobType(req.JobType) {
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownJobType, req.JobType)
	}
	if !catalog.ValidBuilding(req.Building) {
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownBuilding, req.Building)
	}
	if !catalog.ValidFloor(req.Building, req.Floor) {
		return fmt.Errorf("%w: %q in %q", apperrors.ErrInvalidFloor, req.Floor, req.Building)
	}

	if len(photos) == 0 {
		return apperrors.ErrNoPhotos
	}

	return nil
}

// generateObjectName builds a unique storage name: epoch millis plus a
// random suffix, preserving the original extension.
func generateObjectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), randomSuffix(), ext)
}

func randomSuffix() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// Degrade to a timestamp-derived suffix; names stay unique enough
		// because the millis prefix already orders them.
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return strconv.FormatUint(binary.BigEndian.Uint64(b[:]), 36)
}

// Ensure jobService implements JobService at compile time.
var _ JobService = (*jobService)(nil)
