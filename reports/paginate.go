package reports

import (
	"attendancepro-server-go/models"
	"attendancepro-server-go/ui"
)

// WindowSize is the number of page buttons shown at most
const WindowSize = 5

// Row is a report row with its progress-bar color
type Row struct {
	models.ReportRow
	Band string `json:"band"`
}

// Page is one slice of a filtered report
type Page struct {
	Rows       []Row `json:"rows"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalRows  int   `json:"totalRows"`
	TotalPages int   `json:"totalPages"`
	Start      int   `json:"start"` // 1-based index of the first row shown, 0 when empty
	End        int   `json:"end"`   // 1-based index of the last row shown, 0 when empty
	HasPrev    bool  `json:"hasPrev"`
	HasNext    bool  `json:"hasNext"`
	Window     []int `json:"window"`
}

// TotalPages is ceil(total/size)
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate slices rows into page (1-based, clamped into range) of size rows
func Paginate(rows []models.ReportRow, page, size int) Page {
	if size <= 0 {
		size = 5
	}
	total := len(rows)
	pages := TotalPages(total, size)

	if page < 1 {
		page = 1
	}
	if pages > 0 && page > pages {
		page = pages
	}

	p := Page{
		Rows:       []Row{},
		Page:       page,
		PageSize:   size,
		TotalRows:  total,
		TotalPages: pages,
		Window:     PageWindow(page, pages),
	}
	if total == 0 {
		return p
	}

	start := (page - 1) * size
	end := min(start+size, total)
	for _, r := range rows[start:end] {
		p.Rows = append(p.Rows, Row{ReportRow: r, Band: ui.ProgressBand(r.Percentage)})
	}
	p.Start = start + 1
	p.End = end
	p.HasPrev = page > 1
	p.HasNext = page < pages
	return p
}

// PageWindow returns the page numbers to render around current: current-2..current+2,
// shifted to keep WindowSize buttons where total allows
func PageWindow(current, total int) []int {
	if total <= 0 {
		return []int{}
	}
	start := max(1, current-2)
	end := min(total, start+WindowSize-1)
	if end-start < WindowSize-1 {
		start = max(1, end-WindowSize+1)
	}

	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}
