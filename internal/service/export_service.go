package service

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-records-api/internal/repository"
	"github.com/noah-isme/campus-records-api/pkg/export"
	"github.com/noah-isme/campus-records-api/pkg/storage"
)

// exportsSubdir is the storage subdirectory snapshots land in.
const exportsSubdir = "exports"

// ExportService serializes point-in-time snapshots of the stores to CSV
// files on disk and renders PDF reports. Snapshots are not kept consistent
// with later mutations.
type ExportService struct {
	students    *repository.StudentStore
	courses     *repository.CourseStore
	enrollments *repository.EnrollmentStore
	store       *storage.LocalStorage
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
	logger      *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(students *repository.StudentStore, courses *repository.CourseStore, enrollments *repository.EnrollmentStore, store *storage.LocalStorage, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		students:    students,
		courses:     courses,
		enrollments: enrollments,
		store:       store,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		logger:      logger,
	}
}

// ExportResult describes one snapshot run.
type ExportResult struct {
	Directory string   `json:"directory"`
	Files     []string `json:"files"`
	Students  int      `json:"students"`
	Courses   int      `json:"courses"`
	Records   int      `json:"records"`
}

// Snapshot writes students, courses and enrollment CSVs under a
// timestamped directory in the export area.
func (s *ExportService) Snapshot(ctx context.Context) (*ExportResult, error) {
	dir := path.Join(exportsSubdir, time.Now().Format("2006-01-02_150405"))
	result := &ExportResult{Directory: dir}

	students := s.students.List()
	studentData := export.Dataset{
		Headers: []string{"student_id", "reg_no", "first_name", "middle_name", "last_name", "email", "department", "semester", "gpa", "active"},
	}
	for _, st := range students {
		studentData.Rows = append(studentData.Rows, map[string]string{
			"student_id":  st.ID,
			"reg_no":      st.RegistrationNumber,
			"first_name":  st.Name.First,
			"middle_name": st.Name.Middle,
			"last_name":   st.Name.Last,
			"email":       st.Email,
			"department":  st.Department,
			"semester":    strconv.Itoa(st.CurrentSemester),
			"gpa":         fmt.Sprintf("%.2f", st.GPA()),
			"active":      strconv.FormatBool(st.Active),
		})
	}
	if err := s.writeCSV(path.Join(dir, "students.csv"), studentData, result); err != nil {
		return nil, err
	}
	result.Students = len(students)

	courses := s.courses.List()
	courseData := export.Dataset{
		Headers: []string{"course_code", "title", "credits", "department", "semester", "instructor_id", "max_capacity", "enrolled", "active"},
	}
	for _, c := range courses {
		courseData.Rows = append(courseData.Rows, map[string]string{
			"course_code":   c.Code.String(),
			"title":         c.Title,
			"credits":       strconv.Itoa(c.Credits),
			"department":    c.Department,
			"semester":      string(c.Semester),
			"instructor_id": c.InstructorID,
			"max_capacity":  strconv.Itoa(c.MaxCapacity),
			"enrolled":      strconv.Itoa(c.CurrentEnrollment()),
			"active":        strconv.FormatBool(c.Active),
		})
	}
	if err := s.writeCSV(path.Join(dir, "courses.csv"), courseData, result); err != nil {
		return nil, err
	}
	result.Courses = len(courses)

	records := s.enrollments.List()
	recordData := export.Dataset{
		Headers: []string{"enrollment_id", "student_id", "course_code", "semester", "status", "marks", "grade", "enrolled_at"},
	}
	for _, e := range records {
		row := map[string]string{
			"enrollment_id": e.ID,
			"student_id":    e.StudentID,
			"course_code":   e.CourseCode,
			"semester":      string(e.Semester),
			"status":        string(e.Status),
			"enrolled_at":   e.EnrollmentDate.Format(time.RFC3339),
		}
		if e.HasMarks() {
			row["marks"] = fmt.Sprintf("%.1f", e.Marks)
			row["grade"] = string(e.Grade)
		}
		recordData.Rows = append(recordData.Rows, row)
	}
	if err := s.writeCSV(path.Join(dir, "enrollments.csv"), recordData, result); err != nil {
		return nil, err
	}
	result.Records = len(records)

	s.logger.Info("snapshot exported",
		zap.String("directory", dir),
		zap.Int("students", result.Students),
		zap.Int("courses", result.Courses),
		zap.Int("records", result.Records))
	return result, nil
}

func (s *ExportService) writeCSV(filename string, data export.Dataset, result *ExportResult) error {
	raw, err := s.csv.Render(data)
	if err != nil {
		return err
	}
	if _, err := s.store.Save(filename, raw); err != nil {
		return err
	}
	result.Files = append(result.Files, filename)
	return nil
}

// TranscriptPDF renders the student's transcript as a PDF document.
func (s *ExportService) TranscriptPDF(ctx context.Context, studentID string) ([]byte, error) {
	student, err := s.students.Get(studentID)
	if err != nil {
		return nil, err
	}

	grades := student.Grades()
	codes := make([]string, 0, len(grades))
	for code := range grades {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	data := export.Dataset{Headers: []string{"Course", "Grade", "Points"}}
	for _, code := range codes {
		grade := grades[code]
		data.Rows = append(data.Rows, map[string]string{
			"Course": code,
			"Grade":  string(grade),
			"Points": fmt.Sprintf("%.1f", grade.GradePoint()),
		})
	}

	standing := "Good Standing"
	if !student.InGoodStanding() {
		standing = "Academic Warning"
	}
	preamble := []string{
		"Student ID: " + student.ID,
		"Registration No: " + student.RegistrationNumber,
		"Name: " + student.Name.Full(),
		"Department: " + student.Department,
		fmt.Sprintf("Current Semester: %d", student.CurrentSemester),
		fmt.Sprintf("GPA: %.2f", student.GPA()),
		"Academic Standing: " + standing,
	}
	return s.pdf.RenderWithPreamble(data, "Student Transcript", preamble)
}

// CatalogPDF renders the course catalog as a PDF document.
func (s *ExportService) CatalogPDF(ctx context.Context) ([]byte, error) {
	data := export.Dataset{Headers: []string{"Code", "Title", "Credits", "Semester", "Enrolled", "Status"}}
	for _, c := range s.courses.List() {
		data.Rows = append(data.Rows, map[string]string{
			"Code":     c.Code.String(),
			"Title":    c.Title,
			"Credits":  strconv.Itoa(c.Credits),
			"Semester": c.Semester.DisplayName(),
			"Enrolled": fmt.Sprintf("%d/%d", c.CurrentEnrollment(), c.MaxCapacity),
			"Status":   c.StatusSummary(),
		})
	}
	return s.pdf.Render(data, "Course Catalog")
}

// ListExports returns the files under the export area.
func (s *ExportService) ListExports(ctx context.Context) ([]storage.FileInfo, error) {
	return s.store.List(exportsSubdir)
}
