package db

import "attendancepro-server-go/models"

// Storage keys, one per page dataset. Names match the blobs the browser dashboard wrote.
const (
	AdminStudentsKey   = "students_data"
	TeacherStudentsKey = "teacher_students"
	TeachersKey        = "teachers_data"
	ClassesKey         = "admin_classes"
	SchedulesKey       = "attendance_schedules"
	EventsKey          = "attendance_events"
)

// ClassImages are the cover images handed out to new classes
var ClassImages = []string{
	"https://images.unsplash.com/photo-1550592704-6c76fc985830?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60",
	"https://images.unsplash.com/photo-1532094349884-543bc11b234d?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60",
	"https://images.unsplash.com/photo-1481627834876-b7833e8f5570?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60",
	"https://images.unsplash.com/photo-1457369804613-52c61a468e7d?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60",
	"https://images.unsplash.com/photo-1509062522246-3755977927d7?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60",
}

// --- Seed Data ---

func SeedAdminStudents() []models.Student {
	return []models.Student{
		{ID: "STU-101", Name: "Alice Miller", Grade: "10-A", Email: "alice.m@school.edu", Status: "Active"},
		{ID: "STU-102", Name: "Benjamin Johnson", Grade: "10-A", Email: "ben.j@school.edu", Status: "Active"},
		{ID: "STU-103", Name: "Catherine Hill", Grade: "11-B", Email: "cathy.h@school.edu", Status: "Inactive"},
		{ID: "STU-104", Name: "Daniel White", Grade: "12-C", Email: "daniel.w@school.edu", Status: "Active"},
		{ID: "STU-105", Name: "Emma Smith", Grade: "10-A", Email: "emma.s@school.edu", Status: "Active"},
	}
}

// SeedTeacherStudents is the teacher roster; it carries no status
func SeedTeacherStudents() []models.Student {
	students := SeedAdminStudents()
	for i := range students {
		students[i].Status = ""
	}
	return students
}

func SeedTeachers() []models.Teacher {
	return []models.Teacher{
		{ID: "EMP-101", Name: "Sarah Jenkins", Subject: "Mathematics", Email: "sarah.j@school.edu", Status: "Active", Phone: "(555) 123-4567"},
		{ID: "EMP-102", Name: "Michael Ross", Subject: "Physics", Email: "michael.r@school.edu", Status: "Active", Phone: "(555) 234-5678"},
		{ID: "EMP-103", Name: "Emily Blunt", Subject: "English Literature", Email: "emily.b@school.edu", Status: "On Leave", Phone: "(555) 345-6789"},
		{ID: "EMP-104", Name: "David Kim", Subject: "History", Email: "david.k@school.edu", Status: "Active", Phone: "(555) 456-7890"},
		{ID: "EMP-105", Name: "Rachel Green", Subject: "Biology", Email: "rachel.g@school.edu", Status: "Active"},
	}
}

func SeedClasses() []models.Clazz {
	return []models.Clazz{
		{ID: "CLS-101", Grade: "10", Section: "A", Subject: "Advanced Mathematics", Teacher: "Mr. John Smith", Students: 42, Image: ClassImages[0]},
		{ID: "CLS-102", Grade: "11", Section: "B", Subject: "Theoretical Physics", Teacher: "Dr. Sarah Miller", Students: 38, Image: ClassImages[1]},
		{ID: "CLS-103", Grade: "9", Section: "C", Subject: "World History", Teacher: "Ms. Elena Rose", Students: 35, Image: ClassImages[2]},
		{ID: "CLS-104", Grade: "12", Section: "A", Subject: "English Literature", Teacher: "Mr. Robert Fox", Students: 40, Image: ClassImages[3]},
	}
}

func SeedSchedules() []models.Schedule {
	return []models.Schedule{
		{ID: "sch_1", Grade: "10", Section: "A", Subject: "Mathematics", TeacherName: "Sarah Jenkins", Day: "Monday", StartTime: "09:00", EndTime: "09:45"},
		{ID: "sch_2", Grade: "11", Section: "B", Subject: "Physics", TeacherName: "Sarah Jenkins", Day: "Tuesday", StartTime: "10:15", EndTime: "11:00"},
		{ID: "sch_3", Grade: "12", Section: "C", Subject: "Chemistry", TeacherName: "Michael Ross", Day: "Monday", StartTime: "11:15", EndTime: "12:00"},
	}
}

func SeedEvents() []models.Event {
	return []models.Event{
		{ID: "evt_1", Name: "Morning Assembly", Day: "Monday", StartTime: "08:00", EndTime: "08:30", Location: "Main Hall", Coordinator: "David Kim"},
		{ID: "evt_2", Name: "Science Fair", Day: "Wednesday", StartTime: "13:00", EndTime: "16:00", Location: "Gymnasium", Coordinator: "Michael Ross"},
		{ID: "evt_3", Name: "Parent-Teacher Meeting", Day: "Friday", StartTime: "15:00", EndTime: "17:00", Location: "Library", Coordinator: "Sarah Jenkins"},
	}
}
