package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnrollment(t *testing.T) *Enrollment {
	t.Helper()
	e, err := NewEnrollment("S001", "cs101-a", SemesterFall)
	require.NoError(t, err)
	return e
}

func TestNewEnrollment(t *testing.T) {
	e := newTestEnrollment(t)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "CS101-A", e.CourseCode)
	assert.Equal(t, EnrollmentStatusEnrolled, e.Status)
	assert.True(t, e.Active)
	assert.False(t, e.HasMarks())

	_, err := NewEnrollment("", "CS101-A", SemesterFall)
	assert.Error(t, err)
	_, err = NewEnrollment("S001", "", SemesterFall)
	assert.Error(t, err)
	_, err = NewEnrollment("S001", "CS101-A", Semester("BOGUS"))
	assert.Error(t, err)
}

func TestRecordMarksDerivesStatus(t *testing.T) {
	e := newTestEnrollment(t)

	require.NoError(t, e.RecordMarks(85))
	assert.Equal(t, GradeA, e.Grade)
	assert.Equal(t, EnrollmentStatusCompleted, e.Status)
	assert.True(t, e.Passed())
	assert.False(t, e.CompletionDate.IsZero())

	// Re-recording replaces the earlier result.
	require.NoError(t, e.RecordMarks(20))
	assert.Equal(t, GradeF, e.Grade)
	assert.Equal(t, EnrollmentStatusFailed, e.Status)
	assert.False(t, e.Passed())
}

func TestRecordMarksRange(t *testing.T) {
	e := newTestEnrollment(t)
	assert.Error(t, e.RecordMarks(-0.1))
	assert.Error(t, e.RecordMarks(100.1))
	assert.NoError(t, e.RecordMarks(0))
	assert.NoError(t, e.RecordMarks(100))
}

func TestWithdraw(t *testing.T) {
	e := newTestEnrollment(t)
	require.NoError(t, e.Withdraw())
	assert.Equal(t, EnrollmentStatusWithdrawn, e.Status)
	assert.False(t, e.Active)
	assert.False(t, e.CompletionDate.IsZero())

	// Only an open record can be withdrawn.
	assert.Error(t, e.Withdraw())
}

func TestRecordMarksOnWithdrawnRejected(t *testing.T) {
	e := newTestEnrollment(t)
	require.NoError(t, e.Withdraw())
	assert.Error(t, e.RecordMarks(75))
}

func TestWithdrawAfterCompletionRejected(t *testing.T) {
	e := newTestEnrollment(t)
	require.NoError(t, e.RecordMarks(75))
	assert.Error(t, e.Withdraw())
}

func TestGradePointsHelper(t *testing.T) {
	e := newTestEnrollment(t)
	assert.Equal(t, 0.0, e.GradePoints(3))

	require.NoError(t, e.RecordMarks(92))
	assert.Equal(t, 30.0, e.GradePoints(3))
}

func TestEnrollmentReport(t *testing.T) {
	e := newTestEnrollment(t)
	require.NoError(t, e.RecordMarks(67))

	report := e.Report()
	assert.Contains(t, report, "ENROLLMENT RECORD")
	assert.Contains(t, report, "CS101-A")
	assert.Contains(t, report, "Marks: 67.0")
}
