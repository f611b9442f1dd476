package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-records-api/internal/models"
	"github.com/noah-isme/campus-records-api/internal/repository"
	"github.com/noah-isme/campus-records-api/pkg/export"
)

// defaultImportDOB is used when a student row carries no date_of_birth
// column; the roster CSVs predate that field.
var defaultImportDOB = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ImportService turns CSV payloads into validated entities. Malformed rows
// are skipped and reported; they never reach the stores.
type ImportService struct {
	students *repository.StudentStore
	courses  *repository.CourseStore
	csv      *export.CSVExporter
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewImportService constructs the service.
func NewImportService(students *repository.StudentStore, courses *repository.CourseStore, csv *export.CSVExporter, metrics *MetricsService, logger *zap.Logger) *ImportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{
		students: students,
		courses:  courses,
		csv:      csv,
		metrics:  metrics,
		logger:   logger,
	}
}

// ImportReport summarises one import run.
type ImportReport struct {
	Entity   string   `json:"entity"`
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

func (r *ImportReport) skip(line int, reason string) {
	r.Skipped++
	r.Errors = append(r.Errors, fmt.Sprintf("row %d: %s", line, reason))
}

// ImportStudents parses a student CSV. Expected columns: student_id,
// reg_no, first_name, last_name, email, department; optional: middle_name,
// semester, date_of_birth (2006-01-02).
func (s *ImportService) ImportStudents(ctx context.Context, raw []byte) (*ImportReport, error) {
	data, err := s.csv.Parse(raw)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Entity: "students", Total: len(data.Rows)}
	for i, row := range data.Rows {
		line := i + 2
		name, err := models.NewName(row["first_name"], row["middle_name"], row["last_name"])
		if err != nil {
			report.skip(line, err.Error())
			s.metrics.RecordImportRow("students", "skipped")
			continue
		}

		dob := defaultImportDOB
		if rawDOB := strings.TrimSpace(row["date_of_birth"]); rawDOB != "" {
			parsed, err := time.Parse("2006-01-02", rawDOB)
			if err != nil {
				report.skip(line, "invalid date_of_birth: "+rawDOB)
				s.metrics.RecordImportRow("students", "skipped")
				continue
			}
			dob = parsed
		}

		student, err := models.NewStudent(row["student_id"], row["reg_no"], name, row["email"], dob, row["department"])
		if err != nil {
			report.skip(line, err.Error())
			s.metrics.RecordImportRow("students", "skipped")
			continue
		}
		if rawSem := strings.TrimSpace(row["semester"]); rawSem != "" {
			semester, err := strconv.Atoi(rawSem)
			if err != nil || student.SetCurrentSemester(semester) != nil {
				report.skip(line, "invalid semester: "+rawSem)
				s.metrics.RecordImportRow("students", "skipped")
				continue
			}
		}
		if err := s.students.Insert(student); err != nil {
			report.skip(line, err.Error())
			s.metrics.RecordImportRow("students", "skipped")
			continue
		}
		report.Imported++
		s.metrics.RecordImportRow("students", "imported")
	}

	s.logger.Info("student import finished",
		zap.Int("total", report.Total),
		zap.Int("imported", report.Imported),
		zap.Int("skipped", report.Skipped))
	return report, nil
}

// ImportCourses parses a course CSV. Expected columns: course_code, title,
// credits, department, semester; optional: instructor_id, max_capacity,
// description.
func (s *ImportService) ImportCourses(ctx context.Context, raw []byte) (*ImportReport, error) {
	data, err := s.csv.Parse(raw)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Entity: "courses", Total: len(data.Rows)}
	for i, row := range data.Rows {
		line := i + 2
		code, err := models.ParseCourseCode(row["course_code"])
		if err != nil {
			report.skip(line, err.Error())
			s.metrics.RecordImportRow("courses", "skipped")
			continue
		}
		credits, err := strconv.Atoi(strings.TrimSpace(row["credits"]))
		if err != nil {
			report.skip(line, "invalid credits: "+row["credits"])
			s.metrics.RecordImportRow("courses", "skipped")
			continue
		}
		semester, err := models.ParseSemester(row["semester"])
		if err != nil {
			report.skip(line, err.Error())
			s.metrics.RecordImportRow("courses", "skipped")
			continue
		}

		builder := models.NewCourseBuilder(code, row["title"]).
			Credits(credits).
			Semester(semester).
			Department(row["department"]).
			Description(row["description"]).
			Instructor(strings.TrimSpace(row["instructor_id"]))
		if rawCap := strings.TrimSpace(row["max_capacity"]); rawCap != "" {
			capacity, err := strconv.Atoi(rawCap)
			if err != nil {
				report.skip(line, "invalid max_capacity: "+rawCap)
				s.metrics.RecordImportRow("courses", "skipped")
				continue
			}
			builder.MaxCapacity(capacity)
		}

		course, err := builder.Build()
		if err != nil {
			report.skip(line, err.Error())
			s.metrics.RecordImportRow("courses", "skipped")
			continue
		}
		if err := s.courses.Insert(course); err != nil {
			report.skip(line, err.Error())
			s.metrics.RecordImportRow("courses", "skipped")
			continue
		}
		report.Imported++
		s.metrics.RecordImportRow("courses", "imported")
	}

	s.logger.Info("course import finished",
		zap.Int("total", report.Total),
		zap.Int("imported", report.Imported),
		zap.Int("skipped", report.Skipped))
	return report, nil
}
