package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-records-api/internal/models"
	"github.com/noah-isme/campus-records-api/internal/repository"
)

// AnalyticsService aggregates cross-entity statistics. Figures are computed
// on demand from the live stores; nothing is cached.
type AnalyticsService struct {
	students    *StudentService
	courses     *CourseService
	instructors *InstructorService
	enrollments *repository.EnrollmentStore
	logger      *zap.Logger
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(students *StudentService, courses *CourseService, instructors *InstructorService, enrollments *repository.EnrollmentStore, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{
		students:    students,
		courses:     courses,
		instructors: instructors,
		enrollments: enrollments,
		logger:      logger,
	}
}

// Overview is the aggregate snapshot across all stores.
type Overview struct {
	TotalStudents        int                        `json:"total_students"`
	ActiveStudents       int                        `json:"active_students"`
	TotalCourses         int                        `json:"total_courses"`
	ActiveCourses        int                        `json:"active_courses"`
	TotalInstructors     int                        `json:"total_instructors"`
	TotalEnrollments     int                        `json:"total_enrollments"`
	OpenEnrollments      int                        `json:"open_enrollments"`
	CompletedEnrollments int                        `json:"completed_enrollments"`
	WithdrawnEnrollments int                        `json:"withdrawn_enrollments"`
	FailedEnrollments    int                        `json:"failed_enrollments"`
	AverageGPA           float64                    `json:"average_gpa"`
	AverageFill          float64                    `json:"average_fill_percentage"`
	AverageTeachingLoad  float64                    `json:"average_teaching_load"`
	GPADistribution      map[string]int             `json:"gpa_distribution"`
	StudentsByDepartment map[string]int             `json:"students_by_department"`
	CoursesByDepartment  map[string]int             `json:"courses_by_department"`
	CoursesBySemester    map[models.Semester]int    `json:"courses_by_semester"`
	CourseStatus         map[string]int             `json:"course_status"`
	PassRate             float64                    `json:"pass_rate"`
	GradeCounts          map[models.LetterGrade]int `json:"grade_counts"`
}

// Snapshot computes the full overview.
func (s *AnalyticsService) Snapshot(ctx context.Context) Overview {
	ov := Overview{
		TotalStudents:        len(s.students.List(ctx)),
		ActiveStudents:       len(s.students.ActiveStudents(ctx)),
		TotalCourses:         len(s.courses.List(ctx)),
		ActiveCourses:        len(s.courses.ActiveCourses(ctx)),
		TotalInstructors:     len(s.instructors.List(ctx)),
		TotalEnrollments:     s.enrollments.Count(),
		AverageGPA:           s.students.AverageGPA(ctx),
		AverageFill:          s.courses.AverageEnrollmentPercentage(ctx),
		AverageTeachingLoad:  s.instructors.AverageTeachingLoad(ctx),
		GPADistribution:      s.students.GPADistribution(ctx),
		StudentsByDepartment: s.students.DepartmentCounts(ctx),
		CoursesByDepartment:  s.courses.DepartmentCounts(ctx),
		CoursesBySemester:    s.courses.SemesterCounts(ctx),
		CourseStatus:         make(map[string]int),
		GradeCounts:          make(map[models.LetterGrade]int),
	}

	for _, c := range s.courses.List(ctx) {
		ov.CourseStatus[c.StatusSummary()]++
	}

	graded := 0
	passed := 0
	for _, e := range s.enrollments.List() {
		switch e.Status {
		case models.EnrollmentStatusEnrolled:
			ov.OpenEnrollments++
		case models.EnrollmentStatusCompleted:
			ov.CompletedEnrollments++
		case models.EnrollmentStatusWithdrawn:
			ov.WithdrawnEnrollments++
		case models.EnrollmentStatusFailed:
			ov.FailedEnrollments++
		}
		if e.HasMarks() {
			graded++
			ov.GradeCounts[e.Grade]++
			if e.Grade.Passing() {
				passed++
			}
		}
	}
	if graded > 0 {
		ov.PassRate = float64(passed) / float64(graded) * 100.0
	}
	return ov
}

// Report renders the formatted institution report text.
func (s *AnalyticsService) Report(ctx context.Context) string {
	ov := s.Snapshot(ctx)

	var b strings.Builder
	line := strings.Repeat("=", 60) + "\n"
	thin := strings.Repeat("-", 60) + "\n"

	b.WriteString(line)
	b.WriteString("INSTITUTION OVERVIEW\n")
	b.WriteString(line)
	fmt.Fprintf(&b, "Students: %d (%d active)\n", ov.TotalStudents, ov.ActiveStudents)
	fmt.Fprintf(&b, "Courses: %d (%d active)\n", ov.TotalCourses, ov.ActiveCourses)
	fmt.Fprintf(&b, "Instructors: %d\n", ov.TotalInstructors)
	fmt.Fprintf(&b, "Enrollments: %d (%d open, %d completed, %d withdrawn, %d failed)\n",
		ov.TotalEnrollments, ov.OpenEnrollments, ov.CompletedEnrollments, ov.WithdrawnEnrollments, ov.FailedEnrollments)
	b.WriteString(thin)
	fmt.Fprintf(&b, "Average GPA: %.2f\n", ov.AverageGPA)
	fmt.Fprintf(&b, "Average Course Fill: %.1f%%\n", ov.AverageFill)
	fmt.Fprintf(&b, "Average Teaching Load: %.1f\n", ov.AverageTeachingLoad)
	fmt.Fprintf(&b, "Pass Rate: %.1f%%\n", ov.PassRate)

	b.WriteString(thin)
	b.WriteString("Course Status:\n")
	statuses := make([]string, 0, len(ov.CourseStatus))
	for status := range ov.CourseStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		fmt.Fprintf(&b, "  %-22s %d\n", status, ov.CourseStatus[status])
	}

	b.WriteString(thin)
	b.WriteString("GPA Distribution:\n")
	for _, band := range []string{"9.0+", "8.0 - 8.9", "7.0 - 7.9", "6.0 - 6.9", "5.0 - 5.9", "<5.0"} {
		fmt.Fprintf(&b, "  %-10s %d\n", band, ov.GPADistribution[band])
	}
	b.WriteString(line)
	return b.String()
}
