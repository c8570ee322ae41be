package db

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"attendancepro-server-go/models"
)

// --- Excel Import ---

// ReadStudentsFromExcel reads students from the first sheet of a workbook.
// Row 1 is a header. Columns: A id, B name, C grade, D email, E status.
// Rows without id or name are skipped and counted.
func ReadStudentsFromExcel(file io.Reader, logger *slog.Logger) ([]models.Student, int, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Error closing excel file", "error", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, errors.New("excel file does not contain any sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}

	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	students := make([]models.Student, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		if i == 0 {
			continue // header
		}

		student := models.Student{
			ID:     cell(row, 0),
			Name:   cell(row, 1),
			Grade:  cell(row, 2),
			Email:  cell(row, 3),
			Status: cell(row, 4),
		}
		if student.ID == "" || student.Name == "" {
			logger.Debug("Skipping row with missing id or name", "row", i+1)
			skipped++
			continue
		}
		if student.Status == "" {
			student.Status = "Active"
		}
		students = append(students, student)
	}

	return students, skipped, nil
}
