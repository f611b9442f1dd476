package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStudent(t *testing.T) *Student {
	t.Helper()
	name, err := NewName("Asha", "", "Rao")
	require.NoError(t, err)
	student, err := NewStudent("S001", "2024CS001", name, "asha@example.edu", time.Date(2003, 5, 12, 0, 0, 0, 0, time.UTC), "CS")
	require.NoError(t, err)
	return student
}

func TestNewStudentValidation(t *testing.T) {
	name, err := NewName("Asha", "", "Rao")
	require.NoError(t, err)
	dob := time.Date(2003, 5, 12, 0, 0, 0, 0, time.UTC)

	_, err = NewStudent("", "2024CS001", name, "asha@example.edu", dob, "CS")
	assert.Error(t, err)

	_, err = NewStudent("S001", "", name, "asha@example.edu", dob, "CS")
	assert.Error(t, err)

	_, err = NewStudent("S001", "2024CS001", name, "not-an-email", dob, "CS")
	assert.Error(t, err)

	_, err = NewStudent("S001", "2024CS001", name, "asha@example.edu", time.Now().Add(24*time.Hour), "CS")
	assert.Error(t, err)
}

func TestEnrollInCourseNormalisesAndDeduplicates(t *testing.T) {
	s := newTestStudent(t)

	assert.True(t, s.EnrollInCourse(" cs101-a "))
	assert.False(t, s.EnrollInCourse("CS101-A"))
	assert.True(t, s.IsEnrolledIn("cs101-a"))
	assert.Equal(t, []string{"CS101-A"}, s.EnrolledCourses())
}

func TestUnenrollDropsGrade(t *testing.T) {
	s := newTestStudent(t)
	s.EnrollInCourse("CS101-A")
	require.NoError(t, s.RecordGrade("CS101-A", GradeA))

	assert.True(t, s.UnenrollFromCourse("CS101-A"))
	assert.False(t, s.IsEnrolledIn("CS101-A"))
	assert.Empty(t, s.Grades())
	assert.False(t, s.UnenrollFromCourse("CS101-A"))
}

func TestRecordGradeRequiresEnrollment(t *testing.T) {
	s := newTestStudent(t)

	err := s.RecordGrade("CS101-A", GradeA)
	assert.Error(t, err)

	s.EnrollInCourse("CS101-A")
	assert.NoError(t, s.RecordGrade("CS101-A", GradeA))
	assert.Error(t, s.RecordGrade("CS101-A", LetterGrade("X")))
}

func TestGPAFlatCreditWeight(t *testing.T) {
	s := newTestStudent(t)
	assert.Equal(t, 0.0, s.GPA())

	s.EnrollInCourse("CS101-A")
	s.EnrollInCourse("MA201-B")
	require.NoError(t, s.RecordGrade("CS101-A", GradeA))
	require.NoError(t, s.RecordGrade("MA201-B", GradeB))

	// (9.0*3 + 8.0*3) / 6 credits
	assert.InDelta(t, 8.5, s.GPA(), 1e-9)
}

func TestCompletedAndPendingCourses(t *testing.T) {
	s := newTestStudent(t)
	s.EnrollInCourse("CS101-A")
	s.EnrollInCourse("MA201-B")
	require.NoError(t, s.RecordGrade("CS101-A", GradeS))

	assert.Equal(t, []string{"CS101-A"}, s.CompletedCourses())
	assert.Equal(t, []string{"MA201-B"}, s.PendingCourses())
}

func TestInGoodStanding(t *testing.T) {
	s := newTestStudent(t)
	assert.True(t, s.InGoodStanding())

	s.EnrollInCourse("CS101-A")
	require.NoError(t, s.RecordGrade("CS101-A", GradeF))
	assert.False(t, s.InGoodStanding())
}

func TestAuditTrailTouchesLastModified(t *testing.T) {
	s := newTestStudent(t)
	trail := s.AuditTrail()
	require.Len(t, trail, 1)
	assert.Contains(t, trail[0], "Student created: Asha Rao")

	before := s.LastModified
	time.Sleep(5 * time.Millisecond)
	s.AddAuditEntry("Manual note")
	assert.True(t, s.LastModified.After(before))
	assert.Len(t, s.AuditTrail(), 2)
}

func TestTranscriptRendering(t *testing.T) {
	s := newTestStudent(t)
	s.EnrollInCourse("CS101-A")
	require.NoError(t, s.RecordGrade("CS101-A", GradeA))

	transcript := s.Transcript()
	assert.Contains(t, transcript, "STUDENT TRANSCRIPT")
	assert.Contains(t, transcript, "CS101-A")
	assert.Contains(t, transcript, "Current GPA: 9.00")
	assert.Contains(t, transcript, "Good Standing")
}
