package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JobPhoto is one piece of photo evidence attached to a report. URL is either
// an absolute URL or a storage-relative object path. A job's photo list is
// read or deleted only as a whole; individual photos are never edited.
type JobPhoto struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// PhotoList is an ordered list of photos that serializes to a JSONB column.
type PhotoList []JobPhoto

// Value implements driver.Valuer for database serialization.
func (p PhotoList) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for database deserialization. pgx delivers
// text-format jsonb results as string, binary as []byte; both are accepted.
func (p *PhotoList) Scan(value interface{}) error {
	if value == nil {
		*p = PhotoList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PhotoList", value)
	}

	return json.Unmarshal(bytes, p)
}

// VendorJob is a submitted work report. The wire and storage schema is the
// flat snake_case shape; legacy camelCase payloads are tolerated only at the
// edge via UnmarshalJSON on the update type.
type VendorJob struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"user_id"`
	VendorName  string    `json:"vendor_name"`
	CompanyName string    `json:"company_name"`
	PICName     string    `json:"pic_name"`
	PICPhone    string    `json:"pic_phone"`
	JobType     string    `json:"job_type"`
	Building    string    `json:"building"`
	Floor       string    `json:"floor"`
	Room        string    `json:"room"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Photos      PhotoList `json:"photos"`
	CreatedAt   time.Time `json:"created_at"`
}

// JobUpdate is the whitelisted field subset an administrator may edit.
// Photos, timestamps and ownership are deliberately absent.
type JobUpdate struct {
	VendorName  string `json:"vendor_name"`
	Description string `json:"description"`
	JobType     string `json:"job_type"`
	PICName     string `json:"pic_name"`
	PICPhone    string `json:"pic_phone"`
	Building    string `json:"building"`
	Floor       string `json:"floor"`
	Room        string `json:"room"`
}

// jobUpdateWire carries both the canonical snake_case keys and the legacy
// camelCase keys some older clients still send. This is the single
// normalization point for the migrated schema; nothing past the wire boundary
// ever sees camelCase.
type jobUpdateWire struct {
	VendorName       string `json:"vendor_name"`
	LegacyVendorName string `json:"vendorName"`
	Description      string `json:"description"`
	JobType          string `json:"job_type"`
	LegacyJobType    string `json:"jobType"`
	PICName          string `json:"pic_name"`
	LegacyPICName    string `json:"picName"`
	PICPhone         string `json:"pic_phone"`
	LegacyPICPhone   string `json:"picPhone"`
	Building         string `json:"building"`
	Floor            string `json:"floor"`
	Room             string `json:"room"`
}

// UnmarshalJSON decodes a job update, accepting legacy camelCase field names
// as fallbacks for the canonical snake_case schema.
func (u *JobUpdate) UnmarshalJSON(data []byte) error {
	var wire jobUpdateWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*u = JobUpdate{
		VendorName:  firstNonEmpty(wire.VendorName, wire.LegacyVendorName),
		Description: wire.Description,
		JobType:     firstNonEmpty(wire.JobType, wire.LegacyJobType),
		PICName:     firstNonEmpty(wire.PICName, wire.LegacyPICName),
		PICPhone:    firstNonEmpty(wire.PICPhone, wire.LegacyPICPhone),
		Building:    wire.Building,
		Floor:       wire.Floor,
		Room:        wire.Room,
	}
	return nil
}

// Apply copies the update onto a job, touching only whitelisted fields.
func (u *JobUpdate) Apply(job *VendorJob) {
	job.VendorName = u.VendorName
	job.Description = u.Description
	job.JobType = u.JobType
	job.PICName = u.PICName
	job.PICPhone = u.PICPhone
	job.Building = u.Building
	job.Floor = u.Floor
	job.Room = u.Room
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ParseReportTime parses the timestamps reports carry. Older clients send
// bare datetime-local strings without a zone; newer ones send RFC 3339.
func ParseReportTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format: %q", s)
}
