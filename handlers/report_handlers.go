package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"attendancepro-server-go/reports"
)

// QueryDateLayout is the format of the from/to report parameters
const QueryDateLayout = "2006-01-02"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportFilter reads grade, subject, teacher, from and to from the query string
func reportFilter(c *gin.Context) (reports.Filter, error) {
	f := reports.Filter{
		Grade:   c.Query("grade"),
		Subject: c.Query("subject"),
		Teacher: c.Query("teacher"),
	}
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(QueryDateLayout, raw)
		if err != nil {
			return f, fmt.Errorf("invalid %s date %q, expected YYYY-MM-DD", p.name, raw)
		}
		*p.dst = &t
	}
	return f, nil
}

// GetReports handles GET /api/reports
func (h *APIHandler) GetReports(c *gin.Context) {
	f, err := reportFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	c.JSON(http.StatusOK, h.Reports.Query(f, page))
}

// GetReportOptions handles GET /api/reports/options
func (h *APIHandler) GetReportOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.Reports.Options())
}

// ExportReports handles GET /api/reports/export with the same filters as GetReports
func (h *APIHandler) ExportReports(c *gin.Context) {
	f, err := reportFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	n, err := h.Reports.Export(&buf, f)
	if err != nil {
		h.handleError(c, err, "export report", "")
		return
	}
	h.logger.InfoContext(c.Request.Context(), "Exported attendance report", "rows", n)

	filename := fmt.Sprintf("attendance-report-%s.xlsx", time.Now().Format(QueryDateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("X-Row-Count", strconv.Itoa(n))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
