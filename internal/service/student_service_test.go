package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-records-api/internal/models"
	"github.com/noah-isme/campus-records-api/internal/repository"
	"github.com/noah-isme/campus-records-api/pkg/config"
)

func newStudentService(t *testing.T) (*StudentService, *repository.StudentStore, *repository.CourseStore) {
	t.Helper()
	students := repository.NewStudentStore()
	courses := repository.NewCourseStore()
	cfg := config.RegistrarConfig{MaxStudentsPerCourse: 30, MaxCoursesPerStudent: 6}
	svc := NewStudentService(students, courses, cfg, validator.New(), zap.NewNop())
	return svc, students, courses
}

func createStudentReq(id, department string) CreateStudentRequest {
	return CreateStudentRequest{
		ID:                 id,
		RegistrationNumber: "2024" + department + id,
		Name:               models.Name{First: "Test", Last: "Student"},
		Email:              id + "@example.edu",
		DateOfBirth:        time.Date(2003, 1, 1, 0, 0, 0, 0, time.UTC),
		Department:         department,
	}
}

func TestStudentServiceCreate(t *testing.T) {
	svc, _, _ := newStudentService(t)

	student, err := svc.Create(context.Background(), createStudentReq("S001", "CS"))
	require.NoError(t, err)
	assert.Equal(t, "S001", student.ID)
	assert.Equal(t, 1, student.CurrentSemester)

	_, err = svc.Create(context.Background(), createStudentReq("S001", "CS"))
	assert.Error(t, err)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	svc, _, _ := newStudentService(t)

	req := createStudentReq("S001", "CS")
	req.Email = "not-an-email"
	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)

	req = createStudentReq("S002", "CS")
	req.ID = ""
	_, err = svc.Create(context.Background(), req)
	assert.Error(t, err)
}

func TestStudentServiceUpdate(t *testing.T) {
	svc, _, _ := newStudentService(t)
	_, err := svc.Create(context.Background(), createStudentReq("S001", "CS"))
	require.NoError(t, err)

	email := "new@example.edu"
	department := "EE"
	semester := 3
	student, err := svc.Update(context.Background(), "S001", UpdateStudentRequest{
		Email:      &email,
		Department: &department,
		Semester:   &semester,
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.edu", student.Email)
	assert.Equal(t, "EE", student.Department)
	assert.Equal(t, 3, student.CurrentSemester)

	bad := 9
	_, err = svc.Update(context.Background(), "S001", UpdateStudentRequest{Semester: &bad})
	assert.Error(t, err)
}

func TestStudentServiceActivateDeactivate(t *testing.T) {
	svc, _, _ := newStudentService(t)
	_, err := svc.Create(context.Background(), createStudentReq("S001", "CS"))
	require.NoError(t, err)

	changed, err := svc.Activate(context.Background(), "S001")
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = svc.Deactivate(context.Background(), "S001")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = svc.Deactivate(context.Background(), "S001")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestStudentServiceQueries(t *testing.T) {
	svc, students, _ := newStudentService(t)
	ctx := context.Background()

	for _, id := range []string{"S001", "S002"} {
		_, err := svc.Create(ctx, createStudentReq(id, "CS"))
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, createStudentReq("S003", "EE"))
	require.NoError(t, err)

	assert.Len(t, svc.ByDepartment(ctx, "cs"), 2)
	assert.Len(t, svc.ByDepartment(ctx, "EE"), 1)

	counts := svc.DepartmentCounts(ctx)
	assert.Equal(t, 2, counts["CS"])
	assert.Equal(t, 1, counts["EE"])

	found, err := svc.ByRegistrationPattern(ctx, "^2024CS")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = svc.ByRegistrationPattern(ctx, "(")
	assert.Error(t, err)

	// Give S001 a graded course so GPA queries have signal.
	s1, err := students.Get("S001")
	require.NoError(t, err)
	s1.EnrollInCourse("CS101-A")
	require.NoError(t, s1.RecordGrade("CS101-A", models.GradeA))

	inRange := svc.ByGPARange(ctx, 8.5, 9.5)
	require.Len(t, inRange, 1)
	assert.Equal(t, "S001", inRange[0].ID)

	top := svc.TopPerformers(ctx, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "S001", top[0].ID)

	assert.Len(t, svc.EnrolledIn(ctx, "CS101-A"), 1)
	assert.InDelta(t, 3.0, svc.AverageGPA(ctx), 1e-9)
}

func TestStudentServiceGPADistribution(t *testing.T) {
	svc, students, _ := newStudentService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createStudentReq("S001", "CS"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createStudentReq("S002", "CS"))
	require.NoError(t, err)

	s1, err := students.Get("S001")
	require.NoError(t, err)
	s1.EnrollInCourse("CS101-A")
	require.NoError(t, s1.RecordGrade("CS101-A", models.GradeS))

	dist := svc.GPADistribution(ctx)
	assert.Equal(t, 1, dist["9.0+"])
	assert.Equal(t, 1, dist["<5.0"])
}

func TestStudentServiceEnrollCreditLimit(t *testing.T) {
	svc, _, courses := newStudentService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createStudentReq("S001", "CS"))
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		code, err := models.NewCourseCode("CS", 101+i, "A")
		require.NoError(t, err)
		course, err := models.NewCourseBuilder(code, "Course").
			Credits(3).
			Semester(models.SemesterFall).
			Department("CS").
			Build()
		require.NoError(t, err)
		require.NoError(t, courses.Insert(course))
	}

	for i := 0; i < 6; i++ {
		code, err := models.NewCourseCode("CS", 101+i, "A")
		require.NoError(t, err)
		require.NoError(t, svc.Enroll(ctx, "S001", code.String()))
	}

	err = svc.Enroll(ctx, "S001", "CS107-A")
	assert.Error(t, err)
}

func TestStudentServiceBulkSetActive(t *testing.T) {
	svc, _, _ := newStudentService(t)
	ctx := context.Background()

	for _, id := range []string{"S001", "S002"} {
		_, err := svc.Create(ctx, createStudentReq(id, "CS"))
		require.NoError(t, err)
	}

	changed, err := svc.BulkSetActive(ctx, []string{"S001", "S002"}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)
	assert.Empty(t, svc.ActiveStudents(ctx))

	_, err = svc.BulkSetActive(ctx, []string{"S999"}, true)
	assert.Error(t, err)
}

func TestStudentServiceStatsSummary(t *testing.T) {
	svc, _, _ := newStudentService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createStudentReq("S001", "CS"))
	require.NoError(t, err)

	summary := svc.StatsSummary(ctx)
	assert.Contains(t, summary, "STUDENT STATISTICS")
	assert.Contains(t, summary, "Total Students: 1")
	assert.Contains(t, summary, "CS")
}
