package repository

import (
	"fmt"

	"github.com/noah-isme/campus-records-api/internal/models"
	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

// EnrollmentStore is an in-memory enrollment record collection keyed by the
// record's uuid. Iteration follows insertion order; not safe for concurrent
// use.
type EnrollmentStore struct {
	order []string
	byID  map[string]*models.Enrollment
}

func NewEnrollmentStore() *EnrollmentStore {
	return &EnrollmentStore{byID: make(map[string]*models.Enrollment)}
}

// Insert adds a new enrollment record; a duplicate id is rejected.
func (s *EnrollmentStore) Insert(enrollment *models.Enrollment) error {
	if _, ok := s.byID[enrollment.ID]; ok {
		return appErrors.Clone(appErrors.ErrAlreadyExists, fmt.Sprintf("enrollment %s already exists", enrollment.ID))
	}
	s.byID[enrollment.ID] = enrollment
	s.order = append(s.order, enrollment.ID)
	return nil
}

// Get returns the enrollment with the given id.
func (s *EnrollmentStore) Get(id string) (*models.Enrollment, error) {
	enrollment, ok := s.byID[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("enrollment %s not found", id))
	}
	return enrollment, nil
}

// List returns all enrollment records in insertion order.
func (s *EnrollmentStore) List() []*models.Enrollment {
	out := make([]*models.Enrollment, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Search returns the records matching the predicate, in insertion order.
func (s *EnrollmentStore) Search(match func(*models.Enrollment) bool) []*models.Enrollment {
	out := make([]*models.Enrollment, 0)
	for _, id := range s.order {
		if enrollment := s.byID[id]; match(enrollment) {
			out = append(out, enrollment)
		}
	}
	return out
}

// FindOpen returns the active ENROLLED record for a student and course, if
// one exists.
func (s *EnrollmentStore) FindOpen(studentID, courseCode string) (*models.Enrollment, bool) {
	for _, id := range s.order {
		e := s.byID[id]
		if e.StudentID == studentID && e.CourseCode == courseKey(courseCode) && e.Status == models.EnrollmentStatusEnrolled {
			return e, true
		}
	}
	return nil, false
}

// ByStudent returns all records for a student in insertion order.
func (s *EnrollmentStore) ByStudent(studentID string) []*models.Enrollment {
	return s.Search(func(e *models.Enrollment) bool { return e.StudentID == studentID })
}

// ByCourse returns all records for a course in insertion order.
func (s *EnrollmentStore) ByCourse(courseCode string) []*models.Enrollment {
	key := courseKey(courseCode)
	return s.Search(func(e *models.Enrollment) bool { return e.CourseCode == key })
}

// Count returns the number of stored records.
func (s *EnrollmentStore) Count() int {
	return len(s.order)
}
