package services

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/airkon-pratama/vendor-portal/pkg/models"
)

// ExportSheetName is the single worksheet of the export workbook.
const ExportSheetName = "Laporan"

// exportHeader is the fixed column order of the export.
var exportHeader = []interface{}{
	"Tanggal", "Vendor", "Perusahaan", "Pekerjaan", "Gedung", "Lantai", "Deskripsi",
}

// BuildWorkbook renders the given report set into an .xlsx workbook.
// Either a complete workbook is returned or an error; no partial file is
// ever produced.
func BuildWorkbook(jobs []*models.VendorJob) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return nil, fmt.Errorf("failed to name export sheet: %w", err)
	}

	if err := f.SetSheetRow(ExportSheetName, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	for i, job := range jobs {
		row := []interface{}{
			job.CreatedAt.Format("02/01/2006"), // id-ID date order
			job.VendorName,
			job.CompanyName,
			job.JobType,
			job.Building,
			job.Floor,
			job.Description,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(ExportSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write export row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportFilename builds the download filename for an export taken at the
// given time.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("REKAP_AIRKON_%d.xlsx", now.UnixMilli())
}
