package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-records-api/internal/models"
	"github.com/noah-isme/campus-records-api/internal/repository"
	"github.com/noah-isme/campus-records-api/pkg/config"
	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

type registrarFixture struct {
	students    *repository.StudentStore
	courses     *repository.CourseStore
	enrollments *repository.EnrollmentStore
	svc         *RegistrarService
}

func newRegistrarFixture(t *testing.T) *registrarFixture {
	t.Helper()
	f := &registrarFixture{
		students:    repository.NewStudentStore(),
		courses:     repository.NewCourseStore(),
		enrollments: repository.NewEnrollmentStore(),
	}
	cfg := config.RegistrarConfig{MaxStudentsPerCourse: 30, MaxCoursesPerStudent: 6}
	f.svc = NewRegistrarService(f.students, f.courses, f.enrollments, cfg, zap.NewNop())
	return f
}

func (f *registrarFixture) addStudent(t *testing.T, id string) *models.Student {
	t.Helper()
	name, err := models.NewName("Test", "", "Student")
	require.NoError(t, err)
	student, err := models.NewStudent(id, "REG-"+id, name, id+"@example.edu", time.Date(2003, 1, 1, 0, 0, 0, 0, time.UTC), "CS")
	require.NoError(t, err)
	require.NoError(t, f.students.Insert(student))
	return student
}

func (f *registrarFixture) addCourse(t *testing.T, dept string, number, capacity int) *models.Course {
	t.Helper()
	code, err := models.NewCourseCode(dept, number, "A")
	require.NoError(t, err)
	course, err := models.NewCourseBuilder(code, "Course").
		Credits(3).
		Semester(models.SemesterFall).
		Department(dept).
		MaxCapacity(capacity).
		Build()
	require.NoError(t, err)
	require.NoError(t, f.courses.Insert(course))
	return course
}

func TestRegistrarEnroll(t *testing.T) {
	f := newRegistrarFixture(t)
	student := f.addStudent(t, "S001")
	course := f.addCourse(t, "CS", 101, 30)

	record, err := f.svc.Enroll(context.Background(), "S001", "cs101-a")
	require.NoError(t, err)

	assert.Equal(t, "CS101-A", record.CourseCode)
	assert.Equal(t, models.EnrollmentStatusEnrolled, record.Status)
	assert.True(t, student.IsEnrolledIn("CS101-A"))
	assert.True(t, course.IsStudentEnrolled("S001"))
	assert.Equal(t, 1, f.enrollments.Count())
}

func TestRegistrarEnrollUnknownEntities(t *testing.T) {
	f := newRegistrarFixture(t)
	f.addStudent(t, "S001")
	f.addCourse(t, "CS", 101, 30)

	_, err := f.svc.Enroll(context.Background(), "S999", "CS101-A")
	assert.Error(t, err)

	_, err = f.svc.Enroll(context.Background(), "S001", "XX999-A")
	assert.Error(t, err)
}

func TestRegistrarEnrollDuplicate(t *testing.T) {
	f := newRegistrarFixture(t)
	f.addStudent(t, "S001")
	f.addCourse(t, "CS", 101, 30)

	_, err := f.svc.Enroll(context.Background(), "S001", "CS101-A")
	require.NoError(t, err)

	_, err = f.svc.Enroll(context.Background(), "S001", "CS101-A")
	var dupErr *appErrors.DuplicateEnrollmentError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "S001", dupErr.StudentID)
	assert.Equal(t, "CS101-A", dupErr.CourseCode)
	assert.Equal(t, 1, f.enrollments.Count())
}

func TestRegistrarEnrollCreditLimit(t *testing.T) {
	f := newRegistrarFixture(t)
	f.addStudent(t, "S001")
	for i := 0; i < 7; i++ {
		f.addCourse(t, "CS", 101+i, 30)
	}

	for i := 0; i < 6; i++ {
		_, err := f.svc.Enroll(context.Background(), "S001", fmt.Sprintf("CS%d-A", 101+i))
		require.NoError(t, err)
	}

	_, err := f.svc.Enroll(context.Background(), "S001", "CS107-A")
	var limitErr *appErrors.CreditLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 18, limitErr.Current)
	assert.Equal(t, 18, limitErr.Max)
	assert.Equal(t, 3, limitErr.Attempted)
}

func TestRegistrarEnrollCapacityLeavesNoTrace(t *testing.T) {
	f := newRegistrarFixture(t)
	f.addStudent(t, "S001")
	f.addStudent(t, "S002")
	course := f.addCourse(t, "CS", 101, 1)

	_, err := f.svc.Enroll(context.Background(), "S001", "CS101-A")
	require.NoError(t, err)

	_, err = f.svc.Enroll(context.Background(), "S002", "CS101-A")
	var capErr *appErrors.CapacityError
	require.ErrorAs(t, err, &capErr)

	student, err := f.students.Get("S002")
	require.NoError(t, err)
	assert.False(t, student.IsEnrolledIn("CS101-A"))
	assert.False(t, course.IsStudentEnrolled("S002"))
	assert.Equal(t, 1, f.enrollments.Count())
}

func TestRegistrarEnrollInactiveCourse(t *testing.T) {
	f := newRegistrarFixture(t)
	f.addStudent(t, "S001")
	course := f.addCourse(t, "CS", 101, 30)
	course.Active = false

	_, err := f.svc.Enroll(context.Background(), "S001", "CS101-A")
	assert.Error(t, err)
}

func TestRegistrarDrop(t *testing.T) {
	f := newRegistrarFixture(t)
	student := f.addStudent(t, "S001")
	course := f.addCourse(t, "CS", 101, 30)

	record, err := f.svc.Enroll(context.Background(), "S001", "CS101-A")
	require.NoError(t, err)

	require.NoError(t, f.svc.Drop(context.Background(), "S001", "CS101-A"))
	assert.False(t, student.IsEnrolledIn("CS101-A"))
	assert.False(t, course.IsStudentEnrolled("S001"))
	assert.Equal(t, models.EnrollmentStatusWithdrawn, record.Status)

	assert.Error(t, f.svc.Drop(context.Background(), "S001", "CS101-A"))
}

func TestRegistrarGrade(t *testing.T) {
	f := newRegistrarFixture(t)
	student := f.addStudent(t, "S001")
	f.addCourse(t, "CS", 101, 30)

	_, err := f.svc.Enroll(context.Background(), "S001", "CS101-A")
	require.NoError(t, err)

	record, err := f.svc.Grade(context.Background(), "S001", "CS101-A", 85)
	require.NoError(t, err)
	assert.Equal(t, models.GradeA, record.Grade)
	assert.Equal(t, models.EnrollmentStatusCompleted, record.Status)
	assert.Equal(t, models.GradeA, student.Grades()["CS101-A"])

	// Re-grading replaces the earlier result.
	record, err = f.svc.Grade(context.Background(), "S001", "CS101-A", 30)
	require.NoError(t, err)
	assert.Equal(t, models.GradeF, record.Grade)
	assert.Equal(t, models.EnrollmentStatusFailed, record.Status)
}

func TestRegistrarGradeWithoutEnrollment(t *testing.T) {
	f := newRegistrarFixture(t)
	f.addStudent(t, "S001")
	f.addCourse(t, "CS", 101, 30)

	_, err := f.svc.Grade(context.Background(), "S001", "CS101-A", 85)
	assert.Error(t, err)
}
