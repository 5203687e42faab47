package services

import (
	"strings"
	"time"

	"github.com/airkon-pratama/vendor-portal/pkg/models"
)

// FilterParams is the ephemeral query shape of the admin console. A zero
// value matches everything.
type FilterParams struct {
	// Search is matched case-insensitively as a substring of the vendor
	// name OR the description.
	Search string
	// JobType must match the report's job type exactly.
	JobType string
	// Company is matched case-insensitively as a substring of the company
	// name.
	Company string
	// From and To bound the report's creation time inclusively. Zero values
	// leave the corresponding side unbounded.
	From time.Time
	To   time.Time
}

// IsZero reports whether no filter criteria are set.
func (p FilterParams) IsZero() bool {
	return p.Search == "" && p.JobType == "" && p.Company == "" && p.From.IsZero() && p.To.IsZero()
}

// FilterJobs applies the filter parameters to a report list. It is pure and
// order-preserving: re-applying the same parameters to its own output yields
// the same set.
func FilterJobs(jobs []*models.VendorJob, p FilterParams) []*models.VendorJob {
	if p.IsZero() {
		return jobs
	}

	filtered := make([]*models.VendorJob, 0, len(jobs))
	for _, job := range jobs {
		if matchesFilter(job, p) {
			filtered = append(filtered, job)
		}
	}
	return filtered
}

func matchesFilter(job *models.VendorJob, p FilterParams) bool {
	if p.Search != "" {
		search := strings.ToLower(p.Search)
		vendor := strings.ToLower(job.VendorName)
		desc := strings.ToLower(job.Description)
		if !strings.Contains(vendor, search) && !strings.Contains(desc, search) {
			return false
		}
	}

	if p.JobType != "" && job.JobType != p.JobType {
		return false
	}

	if p.Company != "" && !strings.Contains(strings.ToLower(job.CompanyName), strings.ToLower(p.Company)) {
		return false
	}

	if !p.From.IsZero() && job.CreatedAt.Before(p.From) {
		return false
	}
	if !p.To.IsZero() && job.CreatedAt.After(p.To) {
		return false
	}

	return true
}
