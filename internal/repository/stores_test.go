package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-records-api/internal/models"
)

func makeStudent(t *testing.T, id string) *models.Student {
	t.Helper()
	name, err := models.NewName("Test", "", "Student")
	require.NoError(t, err)
	student, err := models.NewStudent(id, "REG-"+id, name, id+"@example.edu", time.Date(2003, 1, 1, 0, 0, 0, 0, time.UTC), "CS")
	require.NoError(t, err)
	return student
}

func makeCourse(t *testing.T, dept string, number int) *models.Course {
	t.Helper()
	code, err := models.NewCourseCode(dept, number, "A")
	require.NoError(t, err)
	course, err := models.NewCourseBuilder(code, "Course").
		Credits(3).
		Semester(models.SemesterFall).
		Department(dept).
		Build()
	require.NoError(t, err)
	return course
}

func TestStudentStoreInsertionOrderAndDuplicates(t *testing.T) {
	store := NewStudentStore()

	require.NoError(t, store.Insert(makeStudent(t, "S002")))
	require.NoError(t, store.Insert(makeStudent(t, "S001")))
	assert.Error(t, store.Insert(makeStudent(t, "S001")))

	all := store.List()
	require.Len(t, all, 2)
	assert.Equal(t, "S002", all[0].ID)
	assert.Equal(t, "S001", all[1].ID)
	assert.Equal(t, 2, store.Count())
}

func TestStudentStoreGetAndDelete(t *testing.T) {
	store := NewStudentStore()
	require.NoError(t, store.Insert(makeStudent(t, "S001")))

	got, err := store.Get("S001")
	require.NoError(t, err)
	assert.Equal(t, "S001", got.ID)

	_, err = store.Get("S999")
	assert.Error(t, err)

	require.NoError(t, store.Delete("S001"))
	assert.Error(t, store.Delete("S001"))
	assert.Equal(t, 0, store.Count())
}

func TestStudentStoreSearch(t *testing.T) {
	store := NewStudentStore()
	require.NoError(t, store.Insert(makeStudent(t, "S001")))
	require.NoError(t, store.Insert(makeStudent(t, "S002")))

	found := store.Search(func(s *models.Student) bool { return s.ID == "S002" })
	require.Len(t, found, 1)
	assert.Equal(t, "S002", found[0].ID)
}

func TestCourseStoreKeyNormalisation(t *testing.T) {
	store := NewCourseStore()
	require.NoError(t, store.Insert(makeCourse(t, "CS", 101)))

	got, err := store.Get(" cs101-a ")
	require.NoError(t, err)
	assert.Equal(t, "CS101-A", got.Code.String())
	assert.True(t, store.Exists("cs101-a"))

	assert.Error(t, store.Insert(makeCourse(t, "CS", 101)))
}

func TestEnrollmentStoreFindOpen(t *testing.T) {
	store := NewEnrollmentStore()

	first, err := models.NewEnrollment("S001", "CS101-A", models.SemesterFall)
	require.NoError(t, err)
	require.NoError(t, store.Insert(first))

	found, ok := store.FindOpen("S001", "cs101-a")
	require.True(t, ok)
	assert.Equal(t, first.ID, found.ID)

	require.NoError(t, first.Withdraw())
	_, ok = store.FindOpen("S001", "CS101-A")
	assert.False(t, ok)
}

func TestEnrollmentStoreByStudentAndCourse(t *testing.T) {
	store := NewEnrollmentStore()

	a, err := models.NewEnrollment("S001", "CS101-A", models.SemesterFall)
	require.NoError(t, err)
	b, err := models.NewEnrollment("S002", "CS101-A", models.SemesterFall)
	require.NoError(t, err)
	require.NoError(t, store.Insert(a))
	require.NoError(t, store.Insert(b))

	assert.Len(t, store.ByStudent("S001"), 1)
	assert.Len(t, store.ByCourse("CS101-A"), 2)
	assert.Equal(t, 2, store.Count())
}
