package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"attendancepro-server-go/agenda"
	"attendancepro-server-go/db"
	"attendancepro-server-go/models"
	"attendancepro-server-go/reports"
)

type testServer struct {
	router *gin.Engine
	store  *db.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := db.NewMemoryStore()
	pages := NewPages(store, logger)
	require.NoError(t, pages.Seed(context.Background()))

	gen := &reports.Generator{
		Rand: rand.New(rand.NewSource(42)),
		Now:  func() time.Time { return time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC) },
	}
	svc := reports.NewService(gen, 240, 5, logger)

	h := NewAPIHandler(pages, svc, store, "Sarah Jenkins", logger)
	router := gin.New()
	SetupMiddleware(router, logger)
	h.SetupRoutes(router)
	return &testServer{router: router, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) raw(t *testing.T, key string) []byte {
	t.Helper()
	data, err := s.store.Get(context.Background(), key)
	require.NoError(t, err)
	return data
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthAndPing(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = s.do(t, http.MethodGet, "/api/ping", nil, "X-Request-ID", "req-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), "Pong!")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodOptions, "/api/admin/students/STU-101", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), ConfirmHeader)
}

func TestAdminStudents_ListAndSearch(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/admin/students", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[ListResponse[StudentView]](t, w)
	assert.Equal(t, 5, all.Total)
	assert.Equal(t, "STU-101", all.Items[0].ID)
	assert.NotEmpty(t, all.Items[0].Initials)
	require.NotNil(t, all.Items[0].Badge)

	w = s.do(t, http.MethodGet, "/api/admin/students?q=STU-103", nil)
	found := decode[ListResponse[StudentView]](t, w)
	require.Equal(t, 1, found.Total)
	assert.Equal(t, "STU-103", found.Items[0].ID)
	assert.Equal(t, "STU-103", found.Query)

	w = s.do(t, http.MethodGet, "/api/admin/students?q=zzzz", nil)
	none := decode[ListResponse[StudentView]](t, w)
	assert.Equal(t, 0, none.Total)
	assert.NotNil(t, none.Items)
}

func TestAdminStudents_Create(t *testing.T) {
	s := newTestServer(t)

	body := StudentRequest{ID: "STU-200", Name: "Nina Park", Grade: "10", Email: "nina@school.edu"}
	w := s.do(t, http.MethodPost, "/api/admin/students", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[StudentView](t, w)
	assert.Equal(t, "Active", created.Status)
	assert.Equal(t, "NP", created.Initials)

	list := decode[ListResponse[StudentView]](t, s.do(t, http.MethodGet, "/api/admin/students", nil))
	assert.Equal(t, 6, list.Total)
	assert.Equal(t, "STU-200", list.Items[0].ID, "new students are prepended")
}

func TestAdminStudents_CreateDuplicate(t *testing.T) {
	s := newTestServer(t)
	before := s.raw(t, db.AdminStudentsKey)

	body := StudentRequest{ID: "STU-101", Name: "Someone Else", Grade: "9", Email: "x@school.edu"}
	w := s.do(t, http.MethodPost, "/api/admin/students", body)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, before, s.raw(t, db.AdminStudentsKey))
}

func TestAdminStudents_CreateInvalid(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/admin/students", StudentRequest{ID: "STU-300", Name: "No Mail", Grade: "9", Email: "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email must be a valid email")

	w = s.do(t, http.MethodPost, "/api/admin/students", map[string]string{"name": "Missing Id"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "id is required")
}

func TestAdminStudents_Update(t *testing.T) {
	s := newTestServer(t)

	body := StudentRequest{ID: "ignored", Name: "Alex Renamed", Grade: "11", Email: "alex@school.edu", Status: "On Leave"}
	w := s.do(t, http.MethodPut, "/api/admin/students/STU-101", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[StudentView](t, w)
	assert.Equal(t, "STU-101", updated.ID)
	assert.Equal(t, "away", updated.Badge.Dot)

	got := decode[StudentView](t, s.do(t, http.MethodGet, "/api/admin/students/STU-101", nil))
	assert.Equal(t, "Alex Renamed", got.Name)

	w = s.do(t, http.MethodPut, "/api/admin/students/STU-999", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminStudents_Delete(t *testing.T) {
	s := newTestServer(t)
	before := s.raw(t, db.AdminStudentsKey)

	w := s.do(t, http.MethodDelete, "/api/admin/students/STU-102", nil)
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)
	assert.Contains(t, w.Body.String(), "Are you sure")
	assert.Equal(t, before, s.raw(t, db.AdminStudentsKey))

	w = s.do(t, http.MethodDelete, "/api/admin/students/STU-102?confirm=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/admin/students/STU-102", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/admin/students/STU-103", nil, ConfirmHeader, "true")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodDelete, "/api/admin/students/STU-999?confirm=true", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	list := decode[ListResponse[StudentView]](t, s.do(t, http.MethodGet, "/api/admin/students", nil))
	assert.Equal(t, 3, list.Total)
}

func uploadWorkbook(t *testing.T, s *testServer, rows [][]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var xlsx bytes.Buffer
	_, err := f.WriteTo(&xlsx)
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "students.xlsx")
	require.NoError(t, err)
	_, err = part.Write(xlsx.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/students/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestImportStudents(t *testing.T) {
	s := newTestServer(t)

	w := uploadWorkbook(t, s, [][]interface{}{
		{"ID", "Name", "Grade", "Email", "Status"},
		{"STU-401", "Imported One", "9", "one@school.edu", ""},
		{"STU-101", "Duplicate", "9", "dup@school.edu", "Active"},
		{"", "No Id", "9", "noid@school.edu", "Active"},
		{"STU-402", "Imported Two", "10", "two@school.edu", "Inactive"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[struct {
		ImportedCount int      `json:"importedCount"`
		SkippedCount  int      `json:"skippedCount"`
		Duplicates    []string `json:"duplicates"`
	}](t, w)
	assert.Equal(t, 2, resp.ImportedCount)
	assert.Equal(t, 2, resp.SkippedCount)
	assert.Equal(t, []string{"STU-101"}, resp.Duplicates)

	got := decode[StudentView](t, s.do(t, http.MethodGet, "/api/admin/students/STU-401", nil))
	assert.Equal(t, "Active", got.Status)
}

func TestImportStudents_AppliesFormValidation(t *testing.T) {
	s := newTestServer(t)

	w := uploadWorkbook(t, s, [][]interface{}{
		{"ID", "Name", "Grade", "Email", "Status"},
		{"STU-501", "Bad Mail", "9", "not-an-email", "Active"},
		{"STU-502", "No Grade", "", "nograde@school.edu", "Active"},
		{"STU-503", "Good Row", "11", "good@school.edu", "Active"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[struct {
		ImportedCount int      `json:"importedCount"`
		SkippedCount  int      `json:"skippedCount"`
		Invalid       []string `json:"invalid"`
	}](t, w)
	assert.Equal(t, 1, resp.ImportedCount)
	assert.Equal(t, 2, resp.SkippedCount)
	assert.Equal(t, []string{"STU-501", "STU-502"}, resp.Invalid)

	w = s.do(t, http.MethodGet, "/api/admin/students/STU-501", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodGet, "/api/admin/students/STU-503", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestImportStudents_MissingFile(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/admin/students/import", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTeacherStudents(t *testing.T) {
	s := newTestServer(t)

	list := decode[ListResponse[StudentView]](t, s.do(t, http.MethodGet, "/api/teacher/students", nil))
	assert.Equal(t, 5, list.Total)
	assert.Nil(t, list.Items[0].Badge)

	w := s.do(t, http.MethodDelete, "/api/teacher/students/STU-104?confirm=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// the admin roster lives under its own key
	admin := decode[ListResponse[StudentView]](t, s.do(t, http.MethodGet, "/api/admin/students", nil))
	assert.Equal(t, 5, admin.Total)
}

func TestTeachers_CRUDAndDirectory(t *testing.T) {
	s := newTestServer(t)

	body := TeacherRequest{ID: "EMP-300", Name: "Grace Hopper", Subject: "Computer Science", Email: "grace@school.edu"}
	w := s.do(t, http.MethodPost, "/api/admin/teachers", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/admin/teachers", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	dir := decode[ListResponse[DirectoryView]](t, s.do(t, http.MethodGet, "/api/teacher/teachers?q=computer", nil))
	require.Equal(t, 1, dir.Total)
	assert.Equal(t, "Computer Science", dir.Items[0].Department)
	assert.Equal(t, "GH", dir.Items[0].Initials)
	assert.NotEmpty(t, dir.Items[0].AvatarBg)

	body.Subject = "Mathematics"
	w = s.do(t, http.MethodPut, "/api/admin/teachers/EMP-300", body)
	require.Equal(t, http.StatusOK, w.Code)

	dir = decode[ListResponse[DirectoryView]](t, s.do(t, http.MethodGet, "/api/teacher/teachers?q=computer", nil))
	assert.Equal(t, 0, dir.Total)

	w = s.do(t, http.MethodDelete, "/api/admin/teachers/EMP-300?confirm=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClasses_CreateAndEdit(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/admin/classes", ClassRequest{Grade: "8", Section: "D", Subject: "Art", Teacher: "Ms. Lee"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[ClassView](t, w)
	assert.True(t, strings.HasPrefix(created.ID, "CLS-"))
	assert.Equal(t, 0, created.Students)
	assert.Contains(t, db.ClassImages, created.Image)
	assert.Equal(t, "Grade 8 - D", created.Title)

	w = s.do(t, http.MethodPut, "/api/admin/classes/CLS-101", ClassRequest{Grade: "10", Section: "B", Subject: "Calculus", Teacher: "Mr. John Smith"})
	require.Equal(t, http.StatusOK, w.Code)
	edited := decode[ClassView](t, w)
	assert.Equal(t, "CLS-101", edited.ID)
	assert.Equal(t, 42, edited.Students)
	assert.Equal(t, db.ClassImages[0], edited.Image)

	list := decode[ListResponse[ClassView]](t, s.do(t, http.MethodGet, "/api/admin/classes?q=grade%208", nil))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, created.ID, list.Items[0].ID)
}

func TestSchedules_CreateAppendsAndAgenda(t *testing.T) {
	s := newTestServer(t)

	body := ScheduleRequest{Grade: "9", Section: "A", Subject: "Biology", TeacherName: "Sarah Jenkins", Day: "Monday", StartTime: "08:00", EndTime: "08:45"}
	w := s.do(t, http.MethodPost, "/api/admin/schedules", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Schedule](t, w)
	assert.True(t, strings.HasPrefix(created.ID, "sch_"))

	list := decode[ListResponse[models.Schedule]](t, s.do(t, http.MethodGet, "/api/admin/schedules", nil))
	require.Equal(t, 4, list.Total)
	assert.Equal(t, created.ID, list.Items[3].ID, "schedules are appended")

	resp := decode[struct {
		Teacher string            `json:"teacher"`
		Days    []agenda.DayGroup `json:"days"`
	}](t, s.do(t, http.MethodGet, "/api/teacher/schedules", nil))
	assert.Equal(t, "Sarah Jenkins", resp.Teacher)
	require.Len(t, resp.Days, 2)
	assert.Equal(t, "Monday", resp.Days[0].Day)
	require.Len(t, resp.Days[0].Entries, 2)
	assert.Equal(t, created.ID, resp.Days[0].Entries[0].ID, "08:00 sorts before 09:00")
}

func TestSchedules_Invalid(t *testing.T) {
	s := newTestServer(t)

	body := ScheduleRequest{Grade: "9", Section: "A", Subject: "Biology", TeacherName: "X", Day: "Funday", StartTime: "8am", EndTime: "08:45"}
	w := s.do(t, http.MethodPost, "/api/admin/schedules", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "day must be one of")
	assert.Contains(t, w.Body.String(), "startTime must be a time in HH:MM format")
}

func TestSchedules_RejectsUnpaddedTimes(t *testing.T) {
	s := newTestServer(t)
	before := s.raw(t, db.SchedulesKey)

	for _, start := range []string{"8:00", "08:5", "24:00", "09:60", " 09:00"} {
		body := ScheduleRequest{Grade: "9", Section: "A", Subject: "Biology", TeacherName: "Sarah Jenkins", Day: "Monday", StartTime: start, EndTime: "09:45"}
		w := s.do(t, http.MethodPost, "/api/admin/schedules", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "startTime %q", start)
	}
	assert.Equal(t, before, s.raw(t, db.SchedulesKey))

	event := EventRequest{Name: "Assembly", Day: "Monday", StartTime: "08:00", EndTime: "9:00", Location: "Hall", Coordinator: "David Kim"}
	w := s.do(t, http.MethodPost, "/api/admin/events", event)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "endTime must be a time in HH:MM format")

	resp := decode[struct {
		Days []agenda.DayGroup `json:"days"`
	}](t, s.do(t, http.MethodGet, "/api/teacher/schedules", nil))
	for _, day := range resp.Days {
		for i := 1; i < len(day.Entries); i++ {
			assert.LessOrEqual(t, day.Entries[i-1].StartTime, day.Entries[i].StartTime)
		}
	}
}

func TestEvents_CRUD(t *testing.T) {
	s := newTestServer(t)

	body := EventRequest{Name: "Sports Day", Day: "Saturday", StartTime: "09:00", EndTime: "15:00", Location: "Field", Coordinator: "Coach Carter"}
	w := s.do(t, http.MethodPost, "/api/admin/events", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Event](t, w)
	assert.True(t, strings.HasPrefix(created.ID, "evt_"))

	found := decode[ListResponse[models.Event]](t, s.do(t, http.MethodGet, "/api/admin/events?q=coach", nil))
	require.Equal(t, 1, found.Total)

	body.Location = "Gym"
	w = s.do(t, http.MethodPut, "/api/admin/events/"+created.ID, body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decode[models.Event](t, w).ID)

	w = s.do(t, http.MethodDelete, "/api/admin/events/"+created.ID+"?confirm=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/admin/events/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReports_QueryAndFilters(t *testing.T) {
	s := newTestServer(t)

	page := decode[reports.Page](t, s.do(t, http.MethodGet, "/api/reports", nil))
	assert.Equal(t, 240, page.TotalRows)
	assert.Equal(t, 48, page.TotalPages)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, page.Window)

	last := decode[reports.Page](t, s.do(t, http.MethodGet, "/api/reports?page=48", nil))
	assert.Equal(t, []int{44, 45, 46, 47, 48}, last.Window)
	assert.Equal(t, 240, last.End)

	physics := decode[reports.Page](t, s.do(t, http.MethodGet, "/api/reports?subject=Physics&grade=10", nil))
	for _, r := range physics.Rows {
		assert.Equal(t, "Physics", r.Subject)
		assert.Contains(t, r.GradeSection, "10")
	}

	dated := decode[reports.Page](t, s.do(t, http.MethodGet, "/api/reports?from=2026-10-19&to=2026-10-19", nil))
	for _, r := range dated.Rows {
		assert.Equal(t, "Oct 19, 2026", r.Date)
	}

	w := s.do(t, http.MethodGet, "/api/reports?from=19/10/2026", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	opts := decode[reports.FilterOptions](t, s.do(t, http.MethodGet, "/api/reports/options", nil))
	assert.NotEmpty(t, opts.Subjects)
}

func TestReports_Export(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/reports/export?teacher=Mr.%20John%20Smith", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance-report-")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, w.Header().Get("X-Row-Count"), strconv.Itoa(len(rows)-1))
	for _, r := range rows[1:] {
		assert.Equal(t, "Mr. John Smith", r[3])
	}
}
