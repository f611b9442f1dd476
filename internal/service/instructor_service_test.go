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
)

func newInstructorService(t *testing.T) (*InstructorService, *repository.InstructorStore) {
	t.Helper()
	instructors := repository.NewInstructorStore()
	svc := NewInstructorService(instructors, validator.New(), zap.NewNop())
	return svc, instructors
}

func createInstructorReq(id string) CreateInstructorRequest {
	return CreateInstructorRequest{
		ID:          id,
		EmployeeID:  "EMP-" + id,
		Name:        models.Name{First: "Test", Last: "Instructor"},
		Email:       id + "@example.edu",
		DateOfBirth: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		Department:  "CS",
		Designation: "Professor",
	}
}

func TestInstructorServiceCreate(t *testing.T) {
	svc, _ := newInstructorService(t)

	req := createInstructorReq("I001")
	req.Salary = 90000
	req.ExperienceYears = 8
	req.Qualifications = []string{"PhD", "PhD", "MSc"}

	instructor, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 90000.0, instructor.Salary)
	assert.True(t, instructor.Senior())
	assert.Equal(t, []string{"PhD", "MSc"}, instructor.Qualifications())

	_, err = svc.Create(context.Background(), createInstructorReq("I001"))
	assert.Error(t, err)
}

func TestInstructorServiceUpdate(t *testing.T) {
	svc, _ := newInstructorService(t)
	_, err := svc.Create(context.Background(), createInstructorReq("I001"))
	require.NoError(t, err)

	designation := "Associate Professor"
	salary := 95000.0
	instructor, err := svc.Update(context.Background(), "I001", UpdateInstructorRequest{
		Designation: &designation,
		Salary:      &salary,
	})
	require.NoError(t, err)
	assert.Equal(t, "Associate Professor", instructor.Designation)
	assert.Equal(t, 95000.0, instructor.Salary)

	negative := -1.0
	_, err = svc.Update(context.Background(), "I001", UpdateInstructorRequest{Salary: &negative})
	assert.Error(t, err)
}

func TestInstructorServiceQueries(t *testing.T) {
	svc, instructors := newInstructorService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createInstructorReq("I001"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createInstructorReq("I002"))
	require.NoError(t, err)

	heavy, err := instructors.Get("I001")
	require.NoError(t, err)
	for _, code := range []string{"CS101-A", "CS102-A", "CS103-A", "CS104-A", "CS105-A"} {
		heavy.AssignCourse(code)
	}

	assert.Len(t, svc.ByDepartment(ctx, "cs"), 2)
	overloaded := svc.Overloaded(ctx)
	require.Len(t, overloaded, 1)
	assert.Equal(t, "I001", overloaded[0].ID)
	assert.Len(t, svc.Teaching(ctx, "cs101-a"), 1)
	assert.InDelta(t, 2.5, svc.AverageTeachingLoad(ctx), 1e-9)
}

func TestInstructorServiceAddQualification(t *testing.T) {
	svc, _ := newInstructorService(t)
	_, err := svc.Create(context.Background(), createInstructorReq("I001"))
	require.NoError(t, err)

	added, err := svc.AddQualification(context.Background(), "I001", "PhD")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.AddQualification(context.Background(), "I001", "PhD")
	require.NoError(t, err)
	assert.False(t, added)

	_, err = svc.AddQualification(context.Background(), "I999", "PhD")
	assert.Error(t, err)
}

func TestInstructorServiceProfile(t *testing.T) {
	svc, _ := newInstructorService(t)
	_, err := svc.Create(context.Background(), createInstructorReq("I001"))
	require.NoError(t, err)

	profile, err := svc.Profile(context.Background(), "I001")
	require.NoError(t, err)
	assert.Contains(t, profile, "INSTRUCTOR PROFILE")
	assert.Contains(t, profile, "EMP-I001")
}
