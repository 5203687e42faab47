package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/airkon-pratama/vendor-portal/pkg/apperrors"
	"github.com/airkon-pratama/vendor-portal/pkg/audit"
	"github.com/airkon-pratama/vendor-portal/pkg/auth"
	"github.com/airkon-pratama/vendor-portal/pkg/catalog"
	"github.com/airkon-pratama/vendor-portal/pkg/models"
	"github.com/airkon-pratama/vendor-portal/pkg/services"
)

// maxSubmitMemory bounds the in-memory portion of multipart parsing. Photo
// files beyond this spill to temp files.
const maxSubmitMemory = 32 << 20

const filterDateLayout = "2006-01-02"

// JobHandler serves report submission, the admin console endpoints, and the
// workbook export.
type JobHandler struct {
	jobs      services.JobService
	assistant services.AssistantService
	trail     *audit.Trail
	logger    *zap.Logger
}

// NewJobHandler creates a new job handler.
func NewJobHandler(jobs services.JobService, assistant services.AssistantService, trail *audit.Trail, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		jobs:      jobs,
		assistant: assistant,
		trail:     trail,
		logger:    logger,
	}
}

// RegisterRoutes registers the report endpoints. Submission and the
// description assistant require any signed-in user; everything that reads or
// mutates existing reports is administrator-only.
func (h *JobHandler) RegisterRoutes(mux *http.ServeMux, mw *auth.Middleware) {
	mux.HandleFunc("POST /api/jobs", mw.RequireAuth(h.Submit))
	mux.HandleFunc("GET /api/jobs", mw.RequireAdmin(h.List))
	mux.HandleFunc("GET /api/jobs/export", mw.RequireAdmin(h.Export))
	mux.HandleFunc("GET /api/jobs/{id}", mw.RequireAdmin(h.Get))
	mux.HandleFunc("PATCH /api/jobs/{id}", mw.RequireAdmin(h.Update))
	mux.HandleFunc("DELETE /api/jobs/{id}", mw.RequireAdmin(h.Delete))
	mux.HandleFunc("POST /api/assistant/describe", mw.RequireAuth(h.Describe))
	mux.HandleFunc("GET /api/catalog", h.Catalog)
}

// Submit accepts a multipart report submission: form fields plus one or more
// photo files under the "photos" key.
func (h *JobHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		_ = ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxSubmitMemory); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Expected a multipart form")
		return
	}

	startTime, err := models.ParseReportTime(r.FormValue("start_time"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_report", "Invalid start time")
		return
	}
	endTime, err := models.ParseReportTime(r.FormValue("end_time"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_report", "Invalid end time")
		return
	}

	req := &services.SubmitRequest{
		CompanyName: r.FormValue("company_name"),
		PICName:     r.FormValue("pic_name"),
		PICPhone:    r.FormValue("pic_phone"),
		JobType:     r.FormValue("job_type"),
		Building:    r.FormValue("building"),
		Floor:       r.FormValue("floor"),
		Room:        r.FormValue("room"),
		Description: r.FormValue("description"),
		StartTime:   startTime,
		EndTime:     endTime,
	}

	var photos []services.PhotoUpload
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["photos"] {
			file, err := header.Open()
			if err != nil {
				_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Failed to read uploaded photo")
				return
			}
			defer file.Close()
			photos = append(photos, services.PhotoUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Reader:      file,
			})
		}
	}

	job, err := h.jobs.Submit(r.Context(), user, req, photos)
	if err != nil {
		if isValidationError(err) {
			_ = ErrorResponse(w, http.StatusBadRequest, "invalid_report", err.Error())
			return
		}
		h.logger.Error("Report submission failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "submit_failed", "Failed to save report")
		return
	}

	h.trail.Record(audit.EventReportSubmitted, user, job.ID, r.RemoteAddr, map[string]interface{}{
		"job_type": job.JobType,
		"building": job.Building,
		"photos":   len(job.Photos),
	})

	if err := WriteJSON(w, http.StatusCreated, job); err != nil {
		h.logger.Error("Failed to write submit response", zap.Error(err))
	}
}

// List returns reports newest-first with the admin console filter applied.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseFilterParams(r)
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_filter", err.Error())
		return
	}

	jobs, err := h.jobs.List(r.Context(), params)
	if err != nil {
		h.logger.Error("Failed to list reports", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "list_failed", "Failed to load reports")
		return
	}
	if jobs == nil {
		// An empty result must marshal as [] rather than null.
		jobs = []*models.VendorJob{}
	}

	if err := WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobs,
		"total": len(jobs),
	}); err != nil {
		h.logger.Error("Failed to write list response", zap.Error(err))
	}
}

// Get returns one report together with its resolved photo gallery.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_id", "Invalid report ID")
		return
	}

	job, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, "not_found", "Report not found")
			return
		}
		h.logger.Error("Failed to load report", zap.String("id", id.String()), zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "get_failed", "Failed to load report")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]interface{}{
		"job":        job,
		"photo_urls": h.jobs.ResolveGallery(job),
	}); err != nil {
		h.logger.Error("Failed to write report response", zap.Error(err))
	}
}

// Update applies a partial edit to the whitelisted field subset and returns
// the updated report.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_id", "Invalid report ID")
		return
	}

	var upd models.JobUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	job, err := h.jobs.Update(r.Context(), id, &upd)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			_ = ErrorResponse(w, http.StatusNotFound, "not_found", "Report not found")
		case isValidationError(err):
			_ = ErrorResponse(w, http.StatusBadRequest, "invalid_report", err.Error())
		default:
			h.logger.Error("Failed to update report", zap.String("id", id.String()), zap.Error(err))
			_ = ErrorResponse(w, http.StatusInternalServerError, "update_failed", "Failed to update report")
		}
		return
	}

	actor, _ := auth.GetUser(r.Context())
	h.trail.Record(audit.EventReportUpdated, actor, id, r.RemoteAddr, nil)

	if err := WriteJSON(w, http.StatusOK, job); err != nil {
		h.logger.Error("Failed to write update response", zap.Error(err))
	}
}

// Delete irreversibly removes a report.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_id", "Invalid report ID")
		return
	}

	if err := h.jobs.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, "not_found", "Report not found")
			return
		}
		h.logger.Error("Failed to delete report", zap.String("id", id.String()), zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "delete_failed", "Failed to delete report")
		return
	}

	actor, _ := auth.GetUser(r.Context())
	h.trail.Record(audit.EventReportDeleted, actor, id, r.RemoteAddr, nil)

	if err := WriteJSON(w, http.StatusOK, map[string]bool{"success": true}); err != nil {
		h.logger.Error("Failed to write delete response", zap.Error(err))
	}
}

// Export streams an xlsx workbook of the reports matching the current filter.
// The workbook is fully assembled before any byte is written, so a failure
// never produces a truncated download.
func (h *JobHandler) Export(w http.ResponseWriter, r *http.Request) {
	params, err := parseFilterParams(r)
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_filter", err.Error())
		return
	}

	jobs, err := h.jobs.List(r.Context(), params)
	if err != nil {
		h.logger.Error("Failed to load reports for export", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "export_failed", "Failed to load reports")
		return
	}

	workbook, err := services.BuildWorkbook(jobs)
	if err != nil {
		h.logger.Error("Failed to build export workbook", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "export_failed", "Failed to build workbook")
		return
	}

	filename := services.ExportFilename(time.Now())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(workbook)))
	if _, err := w.Write(workbook); err != nil {
		h.logger.Error("Failed to stream export workbook", zap.Error(err))
	}

	actor, _ := auth.GetUser(r.Context())
	h.trail.Record(audit.EventReportsExported, actor, uuid.Nil, r.RemoteAddr, map[string]interface{}{
		"count":    len(jobs),
		"filename": filename,
	})
}

// Describe runs the optional description assistant over a draft description.
// It always answers 200 with a usable description.
func (h *JobHandler) Describe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	polished := h.assistant.PolishDescription(r.Context(), body.Description)
	if err := WriteJSON(w, http.StatusOK, map[string]string{"description": polished}); err != nil {
		h.logger.Error("Failed to write assistant response", zap.Error(err))
	}
}

// Catalog returns the fixed job type and building/floor taxonomies the
// submission wizard renders.
func (h *JobHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	if err := WriteJSON(w, http.StatusOK, map[string]interface{}{
		"job_types":       catalog.JobTypes,
		"buildings":       catalog.Buildings,
		"building_floors": catalog.BuildingFloors(),
	}); err != nil {
		h.logger.Error("Failed to write catalog response", zap.Error(err))
	}
}

func parseFilterParams(r *http.Request) (services.FilterParams, error) {
	q := r.URL.Query()
	params := services.FilterParams{
		Search:  q.Get("search"),
		JobType: q.Get("job_type"),
		Company: q.Get("company"),
	}

	// Date bounds are calendar days in the server's zone, the same zone
	// report timestamps are stamped in.
	if from := q.Get("from"); from != "" {
		t, err := time.ParseInLocation(filterDateLayout, from, time.Local)
		if err != nil {
			return services.FilterParams{}, fmt.Errorf("invalid from date %q, want YYYY-MM-DD", from)
		}
		params.From = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.ParseInLocation(filterDateLayout, to, time.Local)
		if err != nil {
			return services.FilterParams{}, fmt.Errorf("invalid to date %q, want YYYY-MM-DD", to)
		}
		// Include the whole final day.
		params.To = t.Add(24*time.Hour - time.Nanosecond)
	}

	return params, nil
}

func isValidationError(err error) bool {
	return errors.Is(err, apperrors.ErrMissingField) ||
		errors.Is(err, apperrors.ErrNoPhotos) ||
		errors.Is(err, apperrors.ErrUnknownJobType) ||
		errors.Is(err, apperrors.ErrUnknownBuilding) ||
		errors.Is(err, apperrors.ErrInvalidFloor)
}
