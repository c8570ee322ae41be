package handlers

import "github.com/gin-gonic/gin"

// SetupRoutes registers every endpoint. Roles are route groups only; there is no auth.
func (h *APIHandler) SetupRoutes(router *gin.Engine) {
	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/ping", PingHandler)

		admin := api.Group("/admin")
		{
			students := admin.Group("/students")
			students.GET("", h.GetAllStudents)
			students.POST("", h.AddStudent)
			students.POST("/import", h.ImportStudents)
			students.GET("/:id", h.GetStudentByID)
			students.PUT("/:id", h.UpdateStudent)
			students.DELETE("/:id", h.DeleteStudent)

			teachers := admin.Group("/teachers")
			teachers.GET("", h.GetAllTeachers)
			teachers.POST("", h.AddTeacher)
			teachers.GET("/:id", h.GetTeacherByID)
			teachers.PUT("/:id", h.UpdateTeacher)
			teachers.DELETE("/:id", h.DeleteTeacher)

			classes := admin.Group("/classes")
			classes.GET("", h.GetAllClasses)
			classes.POST("", h.AddClass)
			classes.GET("/:id", h.GetClassByID)
			classes.PUT("/:id", h.UpdateClass)
			classes.DELETE("/:id", h.DeleteClass)

			schedules := admin.Group("/schedules")
			schedules.GET("", h.GetAllSchedules)
			schedules.POST("", h.AddSchedule)
			schedules.GET("/:id", h.GetScheduleByID)
			schedules.PUT("/:id", h.UpdateSchedule)
			schedules.DELETE("/:id", h.DeleteSchedule)

			events := admin.Group("/events")
			events.GET("", h.GetAllEvents)
			events.POST("", h.AddEvent)
			events.GET("/:id", h.GetEventByID)
			events.PUT("/:id", h.UpdateEvent)
			events.DELETE("/:id", h.DeleteEvent)
		}

		teacher := api.Group("/teacher")
		{
			teacher.GET("/students", h.GetTeacherStudents)
			teacher.DELETE("/students/:id", h.DeleteTeacherStudent)
			teacher.GET("/teachers", h.GetTeacherDirectory)
			teacher.GET("/schedules", h.GetTeacherAgenda)
		}

		reports := api.Group("/reports")
		{
			reports.GET("", h.GetReports)
			reports.GET("/options", h.GetReportOptions)
			reports.GET("/export", h.ExportReports)
		}
	}
}
