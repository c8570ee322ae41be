package reports

import (
	"sort"
	"strings"
	"time"

	"attendancepro-server-go/models"
)

// Filter narrows report rows. Zero fields do not filter.
type Filter struct {
	Grade   string     // Substring of GradeSection, so "10" matches "10 - B"
	Subject string     // Exact
	Teacher string     // Exact
	From    *time.Time // Inclusive calendar date
	To      *time.Time // Inclusive calendar date
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Match reports whether row passes every set criterion
func (f Filter) Match(row models.ReportRow) bool {
	if f.Grade != "" && !strings.Contains(row.GradeSection, f.Grade) {
		return false
	}
	if f.Subject != "" && row.Subject != f.Subject {
		return false
	}
	if f.Teacher != "" && row.Teacher != f.Teacher {
		return false
	}
	d := day(row.RawDate)
	if f.From != nil && d.Before(day(*f.From)) {
		return false
	}
	if f.To != nil && d.After(day(*f.To)) {
		return false
	}
	return true
}

// Apply keeps the matching rows in input order
func (f Filter) Apply(rows []models.ReportRow) []models.ReportRow {
	out := make([]models.ReportRow, 0, len(rows))
	for _, r := range rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterOptions lists the values offered by the filter dropdowns
type FilterOptions struct {
	Grades   []string `json:"grades"`
	Subjects []string `json:"subjects"`
	Teachers []string `json:"teachers"`
}

// Options collects the distinct grades, subjects and teachers in rows, sorted
func Options(rows []models.ReportRow) FilterOptions {
	grades := map[string]struct{}{}
	subjects := map[string]struct{}{}
	teachers := map[string]struct{}{}
	for _, r := range rows {
		grades[r.GradeSection] = struct{}{}
		subjects[r.Subject] = struct{}{}
		teachers[r.Teacher] = struct{}{}
	}
	return FilterOptions{
		Grades:   sortedKeys(grades),
		Subjects: sortedKeys(subjects),
		Teachers: sortedKeys(teachers),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
