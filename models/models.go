package models

import "time"

// Student represents a student on a roster
type Student struct {
	ID     string `json:"id"`               // Natural key, e.g. "STU-101"
	Name   string `json:"name"`             // Full name
	Grade  string `json:"grade"`            // Grade and section, e.g. "10-A"
	Email  string `json:"email"`            // School email
	Status string `json:"status,omitempty"` // Active / Inactive; absent on the teacher roster
}

// Teacher represents a staff member as the admin directory stores it
type Teacher struct {
	ID      string `json:"id"` // Employee id, e.g. "EMP-101"
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Email   string `json:"email"`
	Status  string `json:"status"` // Active / Inactive / On Leave
	Phone   string `json:"phone,omitempty"`
}

// DirectoryEntry is the read-only teacher directory shape
type DirectoryEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
	AvatarBg   string `json:"avatarBg"`
}

// Clazz represents a class card
type Clazz struct {
	ID       string `json:"id"`
	Grade    string `json:"grade"`
	Section  string `json:"section"`
	Subject  string `json:"subject"`
	Teacher  string `json:"teacher"`  // Teacher display name, not a foreign key
	Students int    `json:"students"` // Enrolled student count
	Image    string `json:"image"`    // Cover image URL
}

// Schedule represents one weekly class period
type Schedule struct {
	ID          string `json:"id"`
	Grade       string `json:"grade"`
	Section     string `json:"section"`
	Subject     string `json:"subject"`
	TeacherName string `json:"teacherName"`
	Day         string `json:"day"`       // Weekday name, e.g. "Monday"
	StartTime   string `json:"startTime"` // Zero-padded "HH:MM"
	EndTime     string `json:"endTime"`
}

// Event represents a school event
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Day         string `json:"day"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Location    string `json:"location"`
	Coordinator string `json:"coordinator"`
}

// ReportRow is one generated attendance record; never persisted
type ReportRow struct {
	ID           int       `json:"id"`
	Date         string    `json:"date"`    // Display date, e.g. "Jan 2, 2006"
	RawDate      time.Time `json:"rawDate"` // Used for sorting and range filters
	GradeSection string    `json:"gradeSection"`
	Subject      string    `json:"subject"`
	Teacher      string    `json:"teacher"`
	Present      int       `json:"present"`
	Absent       int       `json:"absent"`
	Percentage   float64   `json:"percentage"`
}
