package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-records-api/internal/models"
	"github.com/noah-isme/campus-records-api/internal/repository"
	"github.com/noah-isme/campus-records-api/pkg/config"
	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

// RegistrarService owns the two-sided enrollment workflow: it keeps the
// student's course set, the course roster and the enrollment ledger in
// step. Either all three move or none do.
type RegistrarService struct {
	students    *repository.StudentStore
	courses     *repository.CourseStore
	enrollments *repository.EnrollmentStore
	registrar   config.RegistrarConfig
	logger      *zap.Logger
}

// NewRegistrarService constructs the service.
func NewRegistrarService(students *repository.StudentStore, courses *repository.CourseStore, enrollments *repository.EnrollmentStore, registrar config.RegistrarConfig, logger *zap.Logger) *RegistrarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrarService{
		students:    students,
		courses:     courses,
		enrollments: enrollments,
		registrar:   registrar,
		logger:      logger,
	}
}

// Enroll registers a student in a course: credit-limit check, course
// roster admission, student-side bookkeeping and a ledger record. A
// roster admission that cannot be mirrored on the student is rolled back.
func (s *RegistrarService) Enroll(ctx context.Context, studentID, courseCode string) (*models.Enrollment, error) {
	student, err := s.students.Get(studentID)
	if err != nil {
		return nil, err
	}
	course, err := s.courses.Get(courseCode)
	if err != nil {
		return nil, err
	}
	code := course.Code.String()
	if !course.Active {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("course %s is not active", code))
	}
	if student.IsEnrolledIn(code) {
		return nil, &appErrors.DuplicateEnrollmentError{StudentID: studentID, CourseCode: code}
	}

	current := len(student.EnrolledCourses()) * models.CreditWeight
	limit := s.registrar.MaxCoursesPerStudent * models.CreditWeight
	if current+course.Credits > limit {
		return nil, &appErrors.CreditLimitError{
			StudentID: studentID,
			Current:   current,
			Max:       limit,
			Attempted: course.Credits,
		}
	}

	admitted, err := course.EnrollStudent(studentID)
	if err != nil {
		return nil, err
	}
	if admitted && !student.EnrollInCourse(code) {
		course.UnenrollStudent(studentID)
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("student %s state changed during enrollment", studentID))
	}

	record, err := models.NewEnrollment(studentID, code, course.Semester)
	if err != nil {
		student.UnenrollFromCourse(code)
		course.UnenrollStudent(studentID)
		return nil, err
	}
	if err := s.enrollments.Insert(record); err != nil {
		student.UnenrollFromCourse(code)
		course.UnenrollStudent(studentID)
		return nil, err
	}

	s.logger.Info("enrollment completed",
		zap.String("enrollment_id", record.ID),
		zap.String("student_id", studentID),
		zap.String("course_code", code))
	return record, nil
}

// Drop withdraws a student from a course on all three sides.
func (s *RegistrarService) Drop(ctx context.Context, studentID, courseCode string) error {
	student, err := s.students.Get(studentID)
	if err != nil {
		return err
	}
	course, err := s.courses.Get(courseCode)
	if err != nil {
		return err
	}
	code := course.Code.String()
	if !student.IsEnrolledIn(code) {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s is not enrolled in %s", studentID, code))
	}

	student.UnenrollFromCourse(code)
	course.UnenrollStudent(studentID)
	if record, ok := s.enrollments.FindOpen(studentID, code); ok {
		if err := record.Withdraw(); err != nil {
			return err
		}
	}

	s.logger.Info("enrollment dropped",
		zap.String("student_id", studentID),
		zap.String("course_code", code))
	return nil
}

// Grade records marks on the open ledger record and mirrors the derived
// letter grade onto the student.
func (s *RegistrarService) Grade(ctx context.Context, studentID, courseCode string, marks float64) (*models.Enrollment, error) {
	student, err := s.students.Get(studentID)
	if err != nil {
		return nil, err
	}
	course, err := s.courses.Get(courseCode)
	if err != nil {
		return nil, err
	}
	code := course.Code.String()
	if !student.IsEnrolledIn(code) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("student %s is not enrolled in %s", studentID, code))
	}

	record, ok := s.enrollments.FindOpen(studentID, code)
	if !ok {
		// Re-grading a closed record: pick the most recent one.
		all := s.enrollments.ByStudent(studentID)
		for i := len(all) - 1; i >= 0; i-- {
			if all[i].CourseCode == code && all[i].Status != models.EnrollmentStatusWithdrawn {
				record = all[i]
				ok = true
				break
			}
		}
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no enrollment record for %s in %s", studentID, code))
	}

	if err := record.RecordMarks(marks); err != nil {
		return nil, err
	}
	if err := student.RecordGrade(code, record.Grade); err != nil {
		return nil, err
	}

	s.logger.Info("marks recorded",
		zap.String("enrollment_id", record.ID),
		zap.String("student_id", studentID),
		zap.String("course_code", code),
		zap.Float64("marks", marks),
		zap.String("grade", string(record.Grade)))
	return record, nil
}

// Record returns a ledger record by id.
func (s *RegistrarService) Record(ctx context.Context, id string) (*models.Enrollment, error) {
	return s.enrollments.Get(id)
}

// Records returns the full ledger in insertion order.
func (s *RegistrarService) Records(ctx context.Context) []*models.Enrollment {
	return s.enrollments.List()
}

// RecordsByStudent returns the ledger entries for one student.
func (s *RegistrarService) RecordsByStudent(ctx context.Context, studentID string) []*models.Enrollment {
	return s.enrollments.ByStudent(studentID)
}

// RecordsByCourse returns the ledger entries for one course.
func (s *RegistrarService) RecordsByCourse(ctx context.Context, courseCode string) []*models.Enrollment {
	return s.enrollments.ByCourse(courseCode)
}
