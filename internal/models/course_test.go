package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

func newTestCourse(t *testing.T, capacity int) *Course {
	t.Helper()
	code, err := NewCourseCode("CS", 101, "A")
	require.NoError(t, err)
	course, err := NewCourseBuilder(code, "Data Structures").
		Credits(3).
		Semester(SemesterFall).
		Department("CS").
		MaxCapacity(capacity).
		Build()
	require.NoError(t, err)
	return course
}

func TestCourseBuilderValidation(t *testing.T) {
	code, err := NewCourseCode("CS", 101, "A")
	require.NoError(t, err)

	_, err = NewCourseBuilder(code, "").Credits(3).Semester(SemesterFall).Department("CS").Build()
	assert.Error(t, err)

	_, err = NewCourseBuilder(code, "Algo").Credits(0).Semester(SemesterFall).Department("CS").Build()
	assert.Error(t, err)

	_, err = NewCourseBuilder(code, "Algo").Credits(7).Semester(SemesterFall).Department("CS").Build()
	assert.Error(t, err)

	_, err = NewCourseBuilder(code, "Algo").Credits(3).Department("CS").Build()
	assert.Error(t, err)

	_, err = NewCourseBuilder(code, "Algo").Credits(3).Semester(SemesterFall).Build()
	assert.Error(t, err)

	_, err = NewCourseBuilder(code, "Algo").Credits(3).Semester(SemesterFall).Department("CS").MaxCapacity(-1).Build()
	assert.Error(t, err)
}

func TestCourseBuilderDefaults(t *testing.T) {
	course := newTestCourse(t, 30)
	assert.Equal(t, 30, course.MaxCapacity)
	assert.True(t, course.Active)
	assert.Equal(t, "CS101-A", course.Code.String())
}

func TestEnrollStudentCapacity(t *testing.T) {
	course := newTestCourse(t, 2)

	added, err := course.EnrollStudent("S001")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = course.EnrollStudent("S002")
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, course.Full())

	_, err = course.EnrollStudent("S003")
	require.Error(t, err)
	var capErr *appErrors.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "CS101-A", capErr.CourseCode)
	assert.Equal(t, 2, capErr.Capacity)
	assert.Equal(t, 2, course.CurrentEnrollment())
}

func TestEnrollStudentDuplicateIsIdempotent(t *testing.T) {
	course := newTestCourse(t, 2)

	added, err := course.EnrollStudent("S001")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = course.EnrollStudent("S001")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 1, course.CurrentEnrollment())
}

func TestUnenrollStudent(t *testing.T) {
	course := newTestCourse(t, 2)
	_, err := course.EnrollStudent("S001")
	require.NoError(t, err)

	assert.True(t, course.UnenrollStudent("S001"))
	assert.False(t, course.UnenrollStudent("S001"))
	assert.Equal(t, 0, course.CurrentEnrollment())
}

func TestEnrollmentPercentageZeroCapacity(t *testing.T) {
	course := newTestCourse(t, 1)
	course.MaxCapacity = 0
	assert.Equal(t, 0.0, course.EnrollmentPercentage())
}

func TestAvailableSpotsNeverNegative(t *testing.T) {
	course := newTestCourse(t, 2)
	_, err := course.EnrollStudent("S001")
	require.NoError(t, err)
	_, err = course.EnrollStudent("S002")
	require.NoError(t, err)

	course.MaxCapacity = 1
	assert.Equal(t, 0, course.AvailableSpots())
}

func TestCourseStatusSummary(t *testing.T) {
	cases := []struct {
		enrolled int
		capacity int
		want     string
	}{
		{9, 10, "FULL/WAITLIST"},
		{8, 10, "HIGH_DEMAND"},
		{5, 10, "MODERATE_ENROLLMENT"},
		{3, 10, "LOW_ENROLLMENT"},
		{2, 10, "UNDERENROLLED"},
	}
	for _, tc := range cases {
		course := newTestCourse(t, tc.capacity)
		for i := 0; i < tc.enrolled; i++ {
			_, err := course.EnrollStudent(fmt.Sprintf("S%03d", i))
			require.NoError(t, err)
		}
		assert.Equal(t, tc.want, course.StatusSummary(), "%d/%d", tc.enrolled, tc.capacity)
	}
}

func TestPopularAndUnderenrolled(t *testing.T) {
	course := newTestCourse(t, 10)
	for i := 0; i < 9; i++ {
		_, err := course.EnrollStudent(fmt.Sprintf("S%03d", i))
		require.NoError(t, err)
	}
	assert.True(t, course.Popular())
	assert.False(t, course.Underenrolled())

	empty := newTestCourse(t, 10)
	assert.False(t, empty.Popular())
	assert.True(t, empty.Underenrolled())
}

func TestPrerequisites(t *testing.T) {
	course := newTestCourse(t, 10)

	assert.True(t, course.AddPrerequisite("cs100-a"))
	assert.False(t, course.AddPrerequisite("CS100-A"))
	assert.Equal(t, []string{"CS100-A"}, course.Prerequisites())
	assert.True(t, course.HasPrerequisites())

	assert.True(t, course.RemovePrerequisite("CS100-A"))
	assert.False(t, course.HasPrerequisites())
}
