package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobUpdate_UnmarshalSnakeCase(t *testing.T) {
	payload := `{
		"vendor_name": "PT Sejuk Abadi",
		"description": "Servis AC lantai 3",
		"job_type": "HVAC/AC",
		"pic_name": "Budi",
		"pic_phone": "081234567890",
		"building": "Gedung A (Utama)",
		"floor": "Lantai 3",
		"room": "Ruang Server"
	}`

	var upd JobUpdate
	require.NoError(t, json.Unmarshal([]byte(payload), &upd))

	assert.Equal(t, "PT Sejuk Abadi", upd.VendorName)
	assert.Equal(t, "HVAC/AC", upd.JobType)
	assert.Equal(t, "Budi", upd.PICName)
	assert.Equal(t, "081234567890", upd.PICPhone)
}

func TestJobUpdate_AcceptsLegacyCamelCase(t *testing.T) {
	payload := `{
		"vendorName": "PT Lama Jaya",
		"jobType": "Listrik (Electrical)",
		"picName": "Sari",
		"picPhone": "0812000",
		"description": "Perbaikan panel"
	}`

	var upd JobUpdate
	require.NoError(t, json.Unmarshal([]byte(payload), &upd))

	assert.Equal(t, "PT Lama Jaya", upd.VendorName)
	assert.Equal(t, "Listrik (Electrical)", upd.JobType)
	assert.Equal(t, "Sari", upd.PICName)
	assert.Equal(t, "0812000", upd.PICPhone)
}

func TestJobUpdate_SnakeCaseWinsOverLegacy(t *testing.T) {
	payload := `{"vendor_name": "Canonical", "vendorName": "Legacy"}`

	var upd JobUpdate
	require.NoError(t, json.Unmarshal([]byte(payload), &upd))

	assert.Equal(t, "Canonical", upd.VendorName)
}

func TestJobUpdate_IgnoresCompanyName(t *testing.T) {
	payload := `{"vendor_name": "PT Baru", "company_name": "PT Lain", "companyName": "PT Lain"}`

	var upd JobUpdate
	require.NoError(t, json.Unmarshal([]byte(payload), &upd))
	assert.Equal(t, "PT Baru", upd.VendorName)

	// Company sits outside the editable subset and never round-trips.
	job := &VendorJob{CompanyName: "PT Asli"}
	upd.Apply(job)
	assert.Equal(t, "PT Asli", job.CompanyName)
}

func TestJobUpdate_ApplyTouchesOnlyWhitelistedFields(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	job := &VendorJob{
		UserID:      "sub-1",
		VendorName:  "Old Vendor",
		CompanyName: "PT Asli",
		JobType:     "HVAC/AC",
		Photos:      PhotoList{{URL: "a.jpg"}},
		CreatedAt:   created,
	}

	upd := &JobUpdate{
		VendorName: "New Vendor",
		JobType:    "Plumbing (Perpipaan)",
		Building:   "Gedung B",
		Floor:      "Lantai 2",
	}
	upd.Apply(job)

	assert.Equal(t, "New Vendor", job.VendorName)
	assert.Equal(t, "Plumbing (Perpipaan)", job.JobType)

	// Ownership, photos and timestamps are not editable.
	assert.Equal(t, "sub-1", job.UserID)
	assert.Equal(t, PhotoList{{URL: "a.jpg"}}, job.Photos)
	assert.Equal(t, created, job.CreatedAt)
}

func TestPhotoList_ValueAndScan(t *testing.T) {
	photos := PhotoList{
		{URL: "job-photos/1714000000000-abc.jpg", Caption: "Sebelum"},
		{URL: "job-photos/1714000000001-def.jpg"},
	}

	value, err := photos.Value()
	require.NoError(t, err)

	var scanned PhotoList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, photos, scanned)
}

func TestPhotoList_ScanTextFormatString(t *testing.T) {
	// pgx delivers jsonb results in text format as string, not []byte.
	photos := PhotoList{{URL: "job-photos/1714000000002-ghi.jpg", Caption: "Sesudah"}}
	raw, err := json.Marshal(photos)
	require.NoError(t, err)

	var scanned PhotoList
	require.NoError(t, scanned.Scan(string(raw)))
	assert.Equal(t, photos, scanned)
}

func TestPhotoList_ScanThroughPgxJSONBPlan(t *testing.T) {
	m := pgtype.NewMap()
	var scanned PhotoList
	plan := m.PlanScan(pgtype.JSONBOID, m.FormatCodeForOID(pgtype.JSONBOID), &scanned)
	require.NotNil(t, plan)

	require.NoError(t, plan.Scan([]byte(`[{"url":"job-photos/1714000000003-jkl.jpg"}]`), &scanned))
	assert.Equal(t, PhotoList{{URL: "job-photos/1714000000003-jkl.jpg"}}, scanned)
}

func TestPhotoList_ScanRejectsUnknownType(t *testing.T) {
	var scanned PhotoList
	assert.Error(t, scanned.Scan(42))
}

func TestPhotoList_NilValueIsEmptyArray(t *testing.T) {
	var photos PhotoList

	value, err := photos.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)
}

func TestPhotoList_ScanNil(t *testing.T) {
	var photos PhotoList
	require.NoError(t, photos.Scan(nil))
	assert.Empty(t, photos)
}

func TestParseReportTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339", "2025-03-01T09:30:00Z", time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC), false},
		{"datetime-local with seconds", "2025-03-01T09:30:00", time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC), false},
		{"datetime-local", "2025-03-01T09:30", time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC), false},
		{"empty is zero", "", time.Time{}, false},
		{"garbage", "yesterday", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReportTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "budi@example.com", NormalizeEmail("  Budi@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}
