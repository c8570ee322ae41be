// Package agenda builds the teacher's weekly schedule view.
package agenda

import (
	"sort"

	"attendancepro-server-go/models"
)

// Days is the canonical order the agenda is rendered in
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayGroup is one weekday with its entries sorted by start time
type DayGroup struct {
	Day     string            `json:"day"`
	Entries []models.Schedule `json:"entries"`
}

// Group keeps the schedules taught by teacher and buckets them by day.
// Days without entries are left out. Entries on days outside Days are ignored.
func Group(schedules []models.Schedule, teacher string) []DayGroup {
	byDay := make(map[string][]models.Schedule, len(Days))
	for _, s := range schedules {
		if s.TeacherName != teacher {
			continue
		}
		byDay[s.Day] = append(byDay[s.Day], s)
	}

	groups := make([]DayGroup, 0, len(byDay))
	for _, day := range Days {
		entries := byDay[day]
		if len(entries) == 0 {
			continue
		}
		// times are zero-padded HH:MM so string order is time order
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].StartTime < entries[j].StartTime
		})
		groups = append(groups, DayGroup{Day: day, Entries: entries})
	}
	return groups
}
