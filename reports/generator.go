package reports

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"attendancepro-server-go/models"
)

// Values the mock generator draws from
var (
	Teachers = []string{"Mr. John Smith", "Dr. Sarah Miller", "Ms. Elena Rose", "Mr. Robert Fox"}
	Subjects = []string{"Mathematics", "Physics", "English Literature", "History", "Chemistry", "Biology"}
	Grades   = []string{"10 - B", "11 - A", "12 - C", "9 - A", "10 - A", "11 - B"}
)

// DisplayDateLayout formats ReportRow.Date, e.g. "Jan 2, 2006"
const DisplayDateLayout = "Jan 2, 2006"

// Generator produces mock attendance rows
type Generator struct {
	Rand *rand.Rand
	Now  func() time.Time
}

// NewGenerator seeds from seed, or from the clock when seed is 0
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		Rand: rand.New(rand.NewSource(seed)),
		Now:  time.Now,
	}
}

// Generate returns n rows from the last 30 days, newest first
func (g *Generator) Generate(n int) []models.ReportRow {
	today := g.Now()
	rows := make([]models.ReportRow, 0, n)

	for i := 0; i < n; i++ {
		date := today.AddDate(0, 0, -g.Rand.Intn(30))

		total := 35 + g.Rand.Intn(10) // 35-44 students
		absent := g.Rand.Intn(8)      // 0-7 absentees
		present := total - absent
		pct := math.Round(float64(present)/float64(total)*1000) / 10

		rows = append(rows, models.ReportRow{
			ID:           i + 1,
			Date:         date.Format(DisplayDateLayout),
			RawDate:      date,
			GradeSection: Grades[g.Rand.Intn(len(Grades))],
			Subject:      Subjects[g.Rand.Intn(len(Subjects))],
			Teacher:      Teachers[g.Rand.Intn(len(Teachers))],
			Present:      present,
			Absent:       absent,
			Percentage:   pct,
		})
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].RawDate.After(rows[b].RawDate)
	})
	return rows
}
