package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"attendancepro-server-go/models"
)

const exportSheet = "Attendance"

var exportHeader = []interface{}{"Date", "Grade & Section", "Subject", "Teacher", "Present", "Absent", "Attendance %"}

// WriteWorkbook writes rows as an xlsx workbook to w
func WriteWorkbook(w io.Writer, rows []models.ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{r.Date, r.GradeSection, r.Subject, r.Teacher, r.Present, r.Absent, r.Percentage}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
