package handlers

import (
	"context"
	"log/slog"
	"math/rand"

	"attendancepro-server-go/crud"
	"attendancepro-server-go/db"
	"attendancepro-server-go/models"
	"attendancepro-server-go/ui"
)

// Pages holds the list controller behind each dashboard page
type Pages struct {
	AdminStudents   *crud.List[models.Student]
	TeacherStudents *crud.List[models.Student]
	Teachers        *crud.List[models.Teacher]
	Classes         *crud.List[models.Clazz]
	Schedules       *crud.List[models.Schedule]
	Events          *crud.List[models.Event]
}

// NewPages builds every page controller over store
func NewPages(store db.Store, logger *slog.Logger) *Pages {
	return &Pages{
		AdminStudents: crud.New(store, crud.Options[models.Student]{
			Key:          db.AdminStudentsKey,
			Seed:         db.SeedAdminStudents,
			ID:           func(s models.Student) string { return s.ID },
			Fields:       func(s models.Student) []string { return []string{s.Name, s.ID, s.Email} },
			UniqueIDs:    true,
			Merge:        keepID(func(s models.Student) string { return s.ID }, func(s *models.Student, id string) { s.ID = id }),
			DeletePrompt: "Are you sure you want to delete this student?",
		}, logger),

		TeacherStudents: crud.New(store, crud.Options[models.Student]{
			Key:          db.TeacherStudentsKey,
			Seed:         db.SeedTeacherStudents,
			ID:           func(s models.Student) string { return s.ID },
			Fields:       func(s models.Student) []string { return []string{s.Name, s.ID} },
			DeletePrompt: "Are you sure you want to remove this student?",
		}, logger),

		Teachers: crud.New(store, crud.Options[models.Teacher]{
			Key:          db.TeachersKey,
			Seed:         db.SeedTeachers,
			ID:           func(t models.Teacher) string { return t.ID },
			Fields:       func(t models.Teacher) []string { return []string{t.Name, t.ID, t.Subject, t.Email} },
			UniqueIDs:    true,
			Merge:        keepID(func(t models.Teacher) string { return t.ID }, func(t *models.Teacher, id string) { t.ID = id }),
			DeletePrompt: "Are you sure you want to delete this teacher?",
		}, logger),

		Classes: crud.New(store, crud.Options[models.Clazz]{
			Key:    db.ClassesKey,
			Seed:   db.SeedClasses,
			ID:     func(c models.Clazz) string { return c.ID },
			Fields: func(c models.Clazz) []string { return []string{c.Subject, "Grade " + c.Grade, c.Teacher} },
			Prepare: func(c models.Clazz) models.Clazz {
				if c.ID == "" {
					c.ID = ui.NewID("CLS-")
				}
				c.Students = 0
				c.Image = db.ClassImages[rand.Intn(len(db.ClassImages))]
				return c
			},
			Merge: func(old, next models.Clazz) models.Clazz {
				next.ID = old.ID
				next.Students = old.Students
				next.Image = old.Image
				return next
			},
			DeletePrompt: "Are you sure you want to delete this class?",
		}, logger),

		Schedules: crud.New(store, crud.Options[models.Schedule]{
			Key:    db.SchedulesKey,
			Seed:   db.SeedSchedules,
			ID:     func(s models.Schedule) string { return s.ID },
			Fields: func(s models.Schedule) []string { return []string{s.Subject, s.TeacherName, s.Day, s.Grade} },
			Append: true,
			Prepare: func(s models.Schedule) models.Schedule {
				if s.ID == "" {
					s.ID = ui.NewID("sch_")
				}
				return s
			},
			Merge:        keepID(func(s models.Schedule) string { return s.ID }, func(s *models.Schedule, id string) { s.ID = id }),
			DeletePrompt: "Are you sure you want to delete this schedule?",
		}, logger),

		Events: crud.New(store, crud.Options[models.Event]{
			Key:    db.EventsKey,
			Seed:   db.SeedEvents,
			ID:     func(e models.Event) string { return e.ID },
			Fields: func(e models.Event) []string { return []string{e.Name, e.Location, e.Coordinator, e.Day} },
			Prepare: func(e models.Event) models.Event {
				if e.ID == "" {
					e.ID = ui.NewID("evt_")
				}
				return e
			},
			Merge:        keepID(func(e models.Event) string { return e.ID }, func(e *models.Event, id string) { e.ID = id }),
			DeletePrompt: "Are you sure you want to delete this event?",
		}, logger),
	}
}

// keepID builds a Merge that pins the stored id
func keepID[T any](get func(T) string, set func(*T, string)) func(old, next T) T {
	return func(old, next T) T {
		set(&next, get(old))
		return next
	}
}

// Seed writes the seed dataset of every page whose key holds nothing usable
func (p *Pages) Seed(ctx context.Context) error {
	loaders := []func(context.Context) error{
		func(ctx context.Context) error { _, err := p.AdminStudents.Load(ctx); return err },
		func(ctx context.Context) error { _, err := p.TeacherStudents.Load(ctx); return err },
		func(ctx context.Context) error { _, err := p.Teachers.Load(ctx); return err },
		func(ctx context.Context) error { _, err := p.Classes.Load(ctx); return err },
		func(ctx context.Context) error { _, err := p.Schedules.Load(ctx); return err },
		func(ctx context.Context) error { _, err := p.Events.Load(ctx); return err },
	}
	for _, load := range loaders {
		if err := load(ctx); err != nil {
			return err
		}
	}
	return nil
}
