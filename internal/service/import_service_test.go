package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-records-api/internal/repository"
	"github.com/noah-isme/campus-records-api/pkg/export"
)

func newImportService(t *testing.T) (*ImportService, *repository.StudentStore, *repository.CourseStore) {
	t.Helper()
	students := repository.NewStudentStore()
	courses := repository.NewCourseStore()
	svc := NewImportService(students, courses, export.NewCSVExporter(), NewMetricsService(), zap.NewNop())
	return svc, students, courses
}

func TestImportStudents(t *testing.T) {
	svc, students, _ := newImportService(t)

	csv := []byte("student_id,reg_no,first_name,last_name,email,department,semester\n" +
		"S001,2024CS001,Asha,Rao,asha@example.edu,CS,3\n" +
		"S002,2024CS002,Vikram,Shah,vikram@example.edu,CS,\n")

	report, err := svc.ImportStudents(context.Background(), csv)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 0, report.Skipped)

	student, err := students.Get("S001")
	require.NoError(t, err)
	assert.Equal(t, "2024CS001", student.RegistrationNumber)
	assert.Equal(t, 3, student.CurrentSemester)
}

func TestImportStudentsSkipsMalformedRows(t *testing.T) {
	svc, students, _ := newImportService(t)

	csv := []byte("student_id,reg_no,first_name,last_name,email,department\n" +
		"S001,2024CS001,Asha,Rao,asha@example.edu,CS\n" +
		",2024CS002,Vikram,Shah,vikram@example.edu,CS\n" +
		"S003,2024CS003,,Shah,missing-first@example.edu,CS\n" +
		"S004,2024CS004,Dev,Nair,not-an-email,CS\n" +
		"S001,2024CS005,Dup,Id,dup@example.edu,CS\n")

	report, err := svc.ImportStudents(context.Background(), csv)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 4, report.Skipped)
	assert.Len(t, report.Errors, 4)
	assert.Equal(t, 1, students.Count())
}

func TestImportStudentsDOBColumn(t *testing.T) {
	svc, students, _ := newImportService(t)

	csv := []byte("student_id,reg_no,first_name,last_name,email,department,date_of_birth\n" +
		"S001,2024CS001,Asha,Rao,asha@example.edu,CS,2003-05-12\n" +
		"S002,2024CS002,Vikram,Shah,vikram@example.edu,CS,12/05/2003\n")

	report, err := svc.ImportStudents(context.Background(), csv)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 1, report.Skipped)

	student, err := students.Get("S001")
	require.NoError(t, err)
	assert.Equal(t, 2003, student.DateOfBirth.Year())
}

func TestImportStudentsEmptyCSV(t *testing.T) {
	svc, _, _ := newImportService(t)
	_, err := svc.ImportStudents(context.Background(), []byte(""))
	assert.Error(t, err)
}

func TestImportCourses(t *testing.T) {
	svc, _, courses := newImportService(t)

	csv := []byte("course_code,title,credits,department,semester,max_capacity\n" +
		"CS101-A,Data Structures,3,CS,FALL,40\n" +
		"ee201-b,Circuits,4,EE,SPRING,\n")

	report, err := svc.ImportCourses(context.Background(), csv)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)

	course, err := courses.Get("CS101-A")
	require.NoError(t, err)
	assert.Equal(t, 40, course.MaxCapacity)

	course, err = courses.Get("EE201-B")
	require.NoError(t, err)
	assert.Equal(t, 30, course.MaxCapacity)
}

func TestImportCoursesSkipsMalformedRows(t *testing.T) {
	svc, _, courses := newImportService(t)

	csv := []byte("course_code,title,credits,department,semester\n" +
		"CS101-A,Data Structures,3,CS,FALL\n" +
		"BADCODE,Title,3,CS,FALL\n" +
		"CS102-A,Title,nine,CS,FALL\n" +
		"CS103-A,Title,3,CS,MONSOON\n" +
		"CS104-A,Title,9,CS,FALL\n")

	report, err := svc.ImportCourses(context.Background(), csv)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 4, report.Skipped)
	assert.Equal(t, 1, courses.Count())
}
