package handlers

import (
	"attendancepro-server-go/models"
	"attendancepro-server-go/ui"
)

// ListResponse is the body of every list endpoint
type ListResponse[V any] struct {
	Items []V    `json:"items"`
	Total int    `json:"total"`
	Query string `json:"query"`
}

type StudentView struct {
	models.Student
	Initials string    `json:"initials"`
	Badge    *ui.Badge `json:"badge,omitempty"`
}

func studentView(s models.Student) StudentView {
	v := StudentView{Student: s, Initials: ui.Initials(s.Name)}
	if s.Status != "" {
		b := ui.StatusBadge(s.Status)
		v.Badge = &b
	}
	return v
}

type TeacherView struct {
	models.Teacher
	Initials string   `json:"initials"`
	Badge    ui.Badge `json:"badge"`
}

func teacherView(t models.Teacher) TeacherView {
	return TeacherView{Teacher: t, Initials: ui.Initials(t.Name), Badge: ui.StatusBadge(t.Status)}
}

type DirectoryView struct {
	models.DirectoryEntry
	Initials string `json:"initials"`
}

// directoryEntry projects an admin teacher record into the teacher-facing directory shape
func directoryEntry(t models.Teacher) models.DirectoryEntry {
	return models.DirectoryEntry{
		ID:         t.ID,
		Name:       t.Name,
		Email:      t.Email,
		Department: t.Subject,
		Phone:      t.Phone,
		AvatarBg:   ui.AvatarColor(t.Name),
	}
}

func directoryView(e models.DirectoryEntry) DirectoryView {
	return DirectoryView{DirectoryEntry: e, Initials: ui.Initials(e.Name)}
}

type ClassView struct {
	models.Clazz
	Title string `json:"title"`
}

func classView(c models.Clazz) ClassView {
	return ClassView{Clazz: c, Title: "Grade " + c.Grade + " - " + c.Section}
}

func identity[T any](v T) T { return v }
