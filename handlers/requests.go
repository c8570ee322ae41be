package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"attendancepro-server-go/models"
)

// Request bodies. Validation is limited to what the dashboard forms enforce.

type StudentRequest struct {
	ID     string `json:"id" validate:"required,max=32"`
	Name   string `json:"name" validate:"required,max=100"`
	Grade  string `json:"grade" validate:"required,max=32"`
	Email  string `json:"email" validate:"required,email"`
	Status string `json:"status" validate:"omitempty,max=32"`
}

func (r StudentRequest) toModel() models.Student {
	status := r.Status
	if status == "" {
		status = "Active"
	}
	return models.Student{ID: r.ID, Name: r.Name, Grade: r.Grade, Email: r.Email, Status: status}
}

type TeacherRequest struct {
	ID      string `json:"id" validate:"required,max=32"`
	Name    string `json:"name" validate:"required,max=100"`
	Subject string `json:"subject" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Status  string `json:"status" validate:"omitempty,max=32"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
}

func (r TeacherRequest) toModel() models.Teacher {
	status := r.Status
	if status == "" {
		status = "Active"
	}
	return models.Teacher{ID: r.ID, Name: r.Name, Subject: r.Subject, Email: r.Email, Status: status, Phone: r.Phone}
}

type ClassRequest struct {
	ID      string `json:"id" validate:"omitempty,max=32"`
	Grade   string `json:"grade" validate:"required,max=16"`
	Section string `json:"section" validate:"required,max=16"`
	Subject string `json:"subject" validate:"required,max=100"`
	Teacher string `json:"teacher" validate:"required,max=100"`
}

func (r ClassRequest) toModel() models.Clazz {
	return models.Clazz{ID: r.ID, Grade: r.Grade, Section: r.Section, Subject: r.Subject, Teacher: r.Teacher}
}

type ScheduleRequest struct {
	Grade       string `json:"grade" validate:"required,max=16"`
	Section     string `json:"section" validate:"required,max=16"`
	Subject     string `json:"subject" validate:"required,max=100"`
	TeacherName string `json:"teacherName" validate:"required,max=100"`
	Day         string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday"`
	StartTime   string `json:"startTime" validate:"required,hhmm"`
	EndTime     string `json:"endTime" validate:"required,hhmm"`
}

func (r ScheduleRequest) toModel() models.Schedule {
	return models.Schedule{
		Grade:       r.Grade,
		Section:     r.Section,
		Subject:     r.Subject,
		TeacherName: r.TeacherName,
		Day:         r.Day,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
}

type EventRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Day         string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday"`
	StartTime   string `json:"startTime" validate:"required,hhmm"`
	EndTime     string `json:"endTime" validate:"required,hhmm"`
	Location    string `json:"location" validate:"required,max=100"`
	Coordinator string `json:"coordinator" validate:"required,max=100"`
}

func (r EventRequest) toModel() models.Event {
	return models.Event{
		Name:        r.Name,
		Day:         r.Day,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Location:    r.Location,
		Coordinator: r.Coordinator,
	}
}

// hhmmPattern is a zero-padded 24h time. The agenda sorts start times as strings,
// so "8:00" must be rejected.
var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// NewValidator reports fields by their json names and registers the hhmm tag
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmPattern.MatchString(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessages flattens a validator error into one message per field
func validationMessages(err error) []string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			out = append(out, fmt.Sprintf("%s must be a valid email", fe.Field()))
		case "oneof":
			out = append(out, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "hhmm":
			out = append(out, fmt.Sprintf("%s must be a time in HH:MM format", fe.Field()))
		case "max":
			out = append(out, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			out = append(out, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return out
}
