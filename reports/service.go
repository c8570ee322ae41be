package reports

import (
	"io"
	"log/slog"

	"attendancepro-server-go/models"
)

// Service holds one generated report dataset for the life of the process
type Service struct {
	rows     []models.ReportRow
	pageSize int
	logger   *slog.Logger
}

// NewService generates n rows up front
func NewService(gen *Generator, n, pageSize int, logger *slog.Logger) *Service {
	rows := gen.Generate(n)
	logger.Info("Generated attendance report rows", "rows", len(rows))
	return &Service{rows: rows, pageSize: pageSize, logger: logger}
}

// Query filters the dataset and returns one page of it
func (s *Service) Query(f Filter, page int) Page {
	return Paginate(f.Apply(s.rows), page, s.pageSize)
}

// Options lists filter dropdown values across the whole dataset
func (s *Service) Options() FilterOptions {
	return Options(s.rows)
}

// Export writes every row matching f as a workbook
func (s *Service) Export(w io.Writer, f Filter) (int, error) {
	rows := f.Apply(s.rows)
	return len(rows), WriteWorkbook(w, rows)
}
