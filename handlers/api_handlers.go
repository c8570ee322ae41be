package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"attendancepro-server-go/agenda"
	"attendancepro-server-go/crud"
	"attendancepro-server-go/db"
	"attendancepro-server-go/models"
	"attendancepro-server-go/reports"
)

// ConfirmHeader approves a delete when set to true
const ConfirmHeader = "X-Confirm-Delete"

// APIHandler holds the dependencies for API handlers
type APIHandler struct {
	Pages         *Pages
	Reports       *reports.Service
	Store         db.Store
	AgendaTeacher string

	validate *validator.Validate
	logger   *slog.Logger
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(pages *Pages, reportService *reports.Service, store db.Store, agendaTeacher string, logger *slog.Logger) *APIHandler {
	return &APIHandler{
		Pages:         pages,
		Reports:       reportService,
		Store:         store,
		AgendaTeacher: agendaTeacher,
		validate:      NewValidator(),
		logger:        logger,
	}
}

// --- Shared helpers ---

// bind decodes and validates the JSON body, writing a 400 on failure
func (h *APIHandler) bind(c *gin.Context, req any) bool {
	return h.bindWith(c, req, nil)
}

// bindWith runs adjust between decoding and validation
func (h *APIHandler) bindWith(c *gin.Context, req any, adjust func()) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return false
	}
	if adjust != nil {
		adjust()
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": validationMessages(err)})
		return false
	}
	return true
}

// handleError maps controller errors onto HTTP statuses
func (h *APIHandler) handleError(c *gin.Context, err error, action, prompt string) {
	switch {
	case errors.Is(err, crud.ErrDuplicateID):
		c.JSON(http.StatusConflict, gin.H{"error": "ID already exists"})
	case errors.Is(err, crud.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.Is(err, crud.ErrDeleteDeclined):
		c.JSON(http.StatusPreconditionRequired, gin.H{"error": "Delete not confirmed", "prompt": prompt})
	default:
		h.logger.ErrorContext(c.Request.Context(), "Request failed",
			"action", action, "error", err, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// confirmFromRequest adapts the confirm query flag or header into a Confirmer
func confirmFromRequest(c *gin.Context) crud.Confirmer {
	return func(context.Context, string) bool {
		if ok, _ := strconv.ParseBool(c.Query("confirm")); ok {
			return true
		}
		ok, _ := strconv.ParseBool(c.GetHeader(ConfirmHeader))
		return ok
	}
}

func listRecords[T, V any](h *APIHandler, c *gin.Context, l *crud.List[T], view func(T) V, action string) {
	q := c.Query("q")
	records, err := l.Filter(c.Request.Context(), q)
	if err != nil {
		h.handleError(c, err, action, "")
		return
	}
	items := make([]V, 0, len(records))
	for _, r := range records {
		items = append(items, view(r))
	}
	c.JSON(http.StatusOK, ListResponse[V]{Items: items, Total: len(items), Query: q})
}

func getRecord[T, V any](h *APIHandler, c *gin.Context, l *crud.List[T], view func(T) V, action string) {
	rec, err := l.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err, action, "")
		return
	}
	c.JSON(http.StatusOK, view(rec))
}

func createRecord[T, V any](h *APIHandler, c *gin.Context, l *crud.List[T], rec T, view func(T) V, action string) {
	stored, err := l.Add(c.Request.Context(), rec)
	if err != nil {
		h.handleError(c, err, action, "")
		return
	}
	c.JSON(http.StatusCreated, view(stored))
}

func updateRecord[T, V any](h *APIHandler, c *gin.Context, l *crud.List[T], rec T, view func(T) V, action string) {
	stored, ok, err := l.Update(c.Request.Context(), c.Param("id"), rec)
	if err != nil {
		h.handleError(c, err, action, "")
		return
	}
	if !ok {
		h.handleError(c, crud.ErrNotFound, action, "")
		return
	}
	c.JSON(http.StatusOK, view(stored))
}

func deleteRecord[T any](h *APIHandler, c *gin.Context, l *crud.List[T], action string) {
	id := c.Param("id")
	removed, err := l.Delete(c.Request.Context(), id, confirmFromRequest(c))
	if err != nil {
		h.handleError(c, err, action, l.Prompt())
		return
	}
	if !removed {
		h.handleError(c, crud.ErrNotFound, action, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted", "id": id})
}

// --- Admin student handlers ---

// GetAllStudents handles GET /api/admin/students
func (h *APIHandler) GetAllStudents(c *gin.Context) {
	listRecords(h, c, h.Pages.AdminStudents, studentView, "retrieve students")
}

// GetStudentByID handles GET /api/admin/students/:id
func (h *APIHandler) GetStudentByID(c *gin.Context) {
	getRecord(h, c, h.Pages.AdminStudents, studentView, "retrieve student")
}

// AddStudent handles POST /api/admin/students
func (h *APIHandler) AddStudent(c *gin.Context) {
	var req StudentRequest
	if !h.bind(c, &req) {
		return
	}
	createRecord(h, c, h.Pages.AdminStudents, req.toModel(), studentView, "add student")
}

// UpdateStudent handles PUT /api/admin/students/:id. The id in the path wins.
func (h *APIHandler) UpdateStudent(c *gin.Context) {
	var req StudentRequest
	if !h.bindWith(c, &req, func() { req.ID = c.Param("id") }) {
		return
	}
	updateRecord(h, c, h.Pages.AdminStudents, req.toModel(), studentView, "update student")
}

// DeleteStudent handles DELETE /api/admin/students/:id
func (h *APIHandler) DeleteStudent(c *gin.Context) {
	deleteRecord(h, c, h.Pages.AdminStudents, "delete student")
}

// ImportStudents handles POST /api/admin/students/import
func (h *APIHandler) ImportStudents(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error retrieving uploaded file: " + err.Error()})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	h.logger.InfoContext(ctx, "Received student import", "file", header.Filename, "size", header.Size)

	students, blank, err := db.ReadStudentsFromExcel(file, h.logger)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read workbook: " + err.Error()})
		return
	}

	valid, invalid := h.validImports(ctx, students)

	imported, duplicates, err := h.Pages.AdminStudents.AddMany(ctx, valid)
	if err != nil {
		h.handleError(c, err, "import students", "")
		return
	}
	if duplicates == nil {
		duplicates = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Import successful",
		"importedCount": imported,
		"skippedCount":  blank + len(invalid) + len(duplicates),
		"duplicates":    duplicates,
		"invalid":       invalid,
	})
}

// validImports keeps the rows that pass the same checks as AddStudent and returns the
// ids of the rest
func (h *APIHandler) validImports(ctx context.Context, students []models.Student) ([]models.Student, []string) {
	valid := make([]models.Student, 0, len(students))
	invalid := []string{}
	for _, s := range students {
		req := StudentRequest{ID: s.ID, Name: s.Name, Grade: s.Grade, Email: s.Email, Status: s.Status}
		if err := h.validate.Struct(req); err != nil {
			h.logger.DebugContext(ctx, "Skipping invalid import row", "id", s.ID, "errors", validationMessages(err))
			invalid = append(invalid, s.ID)
			continue
		}
		valid = append(valid, req.toModel())
	}
	return valid, invalid
}

// --- Teacher-facing student handlers ---

// GetTeacherStudents handles GET /api/teacher/students
func (h *APIHandler) GetTeacherStudents(c *gin.Context) {
	listRecords(h, c, h.Pages.TeacherStudents, studentView, "retrieve students")
}

// DeleteTeacherStudent handles DELETE /api/teacher/students/:id
func (h *APIHandler) DeleteTeacherStudent(c *gin.Context) {
	deleteRecord(h, c, h.Pages.TeacherStudents, "remove student")
}

// --- Admin teacher handlers ---

// GetAllTeachers handles GET /api/admin/teachers
func (h *APIHandler) GetAllTeachers(c *gin.Context) {
	listRecords(h, c, h.Pages.Teachers, teacherView, "retrieve teachers")
}

// GetTeacherByID handles GET /api/admin/teachers/:id
func (h *APIHandler) GetTeacherByID(c *gin.Context) {
	getRecord(h, c, h.Pages.Teachers, teacherView, "retrieve teacher")
}

// AddTeacher handles POST /api/admin/teachers
func (h *APIHandler) AddTeacher(c *gin.Context) {
	var req TeacherRequest
	if !h.bind(c, &req) {
		return
	}
	createRecord(h, c, h.Pages.Teachers, req.toModel(), teacherView, "add teacher")
}

// UpdateTeacher handles PUT /api/admin/teachers/:id
func (h *APIHandler) UpdateTeacher(c *gin.Context) {
	var req TeacherRequest
	if !h.bindWith(c, &req, func() { req.ID = c.Param("id") }) {
		return
	}
	updateRecord(h, c, h.Pages.Teachers, req.toModel(), teacherView, "update teacher")
}

// DeleteTeacher handles DELETE /api/admin/teachers/:id
func (h *APIHandler) DeleteTeacher(c *gin.Context) {
	deleteRecord(h, c, h.Pages.Teachers, "delete teacher")
}

// GetTeacherDirectory handles GET /api/teacher/teachers, a read-only projection of the
// admin teacher roster
func (h *APIHandler) GetTeacherDirectory(c *gin.Context) {
	q := c.Query("q")
	teachers, err := h.Pages.Teachers.Load(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "retrieve directory", "")
		return
	}
	entries := make([]models.DirectoryEntry, 0, len(teachers))
	for _, t := range teachers {
		entries = append(entries, directoryEntry(t))
	}
	entries = crud.Match(entries, q, func(e models.DirectoryEntry) []string {
		return []string{e.Name, e.Email, e.Department}
	})

	items := make([]DirectoryView, 0, len(entries))
	for _, e := range entries {
		items = append(items, directoryView(e))
	}
	c.JSON(http.StatusOK, ListResponse[DirectoryView]{Items: items, Total: len(items), Query: q})
}

// --- Class handlers ---

// GetAllClasses handles GET /api/admin/classes
func (h *APIHandler) GetAllClasses(c *gin.Context) {
	listRecords(h, c, h.Pages.Classes, classView, "retrieve classes")
}

// GetClassByID handles GET /api/admin/classes/:id
func (h *APIHandler) GetClassByID(c *gin.Context) {
	getRecord(h, c, h.Pages.Classes, classView, "retrieve class details")
}

// AddClass handles POST /api/admin/classes
func (h *APIHandler) AddClass(c *gin.Context) {
	var req ClassRequest
	if !h.bind(c, &req) {
		return
	}
	createRecord(h, c, h.Pages.Classes, req.toModel(), classView, "add class")
}

// UpdateClass handles PUT /api/admin/classes/:id
func (h *APIHandler) UpdateClass(c *gin.Context) {
	var req ClassRequest
	if !h.bind(c, &req) {
		return
	}
	updateRecord(h, c, h.Pages.Classes, req.toModel(), classView, "update class")
}

// DeleteClass handles DELETE /api/admin/classes/:id
func (h *APIHandler) DeleteClass(c *gin.Context) {
	deleteRecord(h, c, h.Pages.Classes, "delete class")
}

// --- Schedule handlers ---

// GetAllSchedules handles GET /api/admin/schedules
func (h *APIHandler) GetAllSchedules(c *gin.Context) {
	listRecords(h, c, h.Pages.Schedules, identity[models.Schedule], "retrieve schedules")
}

// GetScheduleByID handles GET /api/admin/schedules/:id
func (h *APIHandler) GetScheduleByID(c *gin.Context) {
	getRecord(h, c, h.Pages.Schedules, identity[models.Schedule], "retrieve schedule")
}

// AddSchedule handles POST /api/admin/schedules
func (h *APIHandler) AddSchedule(c *gin.Context) {
	var req ScheduleRequest
	if !h.bind(c, &req) {
		return
	}
	createRecord(h, c, h.Pages.Schedules, req.toModel(), identity[models.Schedule], "add schedule")
}

// UpdateSchedule handles PUT /api/admin/schedules/:id
func (h *APIHandler) UpdateSchedule(c *gin.Context) {
	var req ScheduleRequest
	if !h.bind(c, &req) {
		return
	}
	updateRecord(h, c, h.Pages.Schedules, req.toModel(), identity[models.Schedule], "update schedule")
}

// DeleteSchedule handles DELETE /api/admin/schedules/:id
func (h *APIHandler) DeleteSchedule(c *gin.Context) {
	deleteRecord(h, c, h.Pages.Schedules, "delete schedule")
}

// GetTeacherAgenda handles GET /api/teacher/schedules
func (h *APIHandler) GetTeacherAgenda(c *gin.Context) {
	schedules, err := h.Pages.Schedules.Load(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "retrieve agenda", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"teacher": h.AgendaTeacher,
		"days":    agenda.Group(schedules, h.AgendaTeacher),
	})
}

// --- Event handlers ---

// GetAllEvents handles GET /api/admin/events
func (h *APIHandler) GetAllEvents(c *gin.Context) {
	listRecords(h, c, h.Pages.Events, identity[models.Event], "retrieve events")
}

// GetEventByID handles GET /api/admin/events/:id
func (h *APIHandler) GetEventByID(c *gin.Context) {
	getRecord(h, c, h.Pages.Events, identity[models.Event], "retrieve event")
}

// AddEvent handles POST /api/admin/events
func (h *APIHandler) AddEvent(c *gin.Context) {
	var req EventRequest
	if !h.bind(c, &req) {
		return
	}
	createRecord(h, c, h.Pages.Events, req.toModel(), identity[models.Event], "add event")
}

// UpdateEvent handles PUT /api/admin/events/:id
func (h *APIHandler) UpdateEvent(c *gin.Context) {
	var req EventRequest
	if !h.bind(c, &req) {
		return
	}
	updateRecord(h, c, h.Pages.Events, req.toModel(), identity[models.Event], "update event")
}

// DeleteEvent handles DELETE /api/admin/events/:id
func (h *APIHandler) DeleteEvent(c *gin.Context) {
	deleteRecord(h, c, h.Pages.Events, "delete event")
}

// --- Health ---

// HealthCheck reports liveness and whether the store answers
func (h *APIHandler) HealthCheck(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		h.logger.WarnContext(c.Request.Context(), "Store ping failed", "error", err)
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "attendancepro-server",
	})
}

// PingHandler handles GET /api/ping
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}
