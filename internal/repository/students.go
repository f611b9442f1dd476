package repository

import (
	"fmt"

	"github.com/noah-isme/campus-records-api/internal/models"
	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

// StudentStore is an in-memory student collection. Iteration follows
// insertion order. The store is not safe for concurrent use; callers
// serialize access.
type StudentStore struct {
	order []string
	byID  map[string]*models.Student
}

func NewStudentStore() *StudentStore {
	return &StudentStore{byID: make(map[string]*models.Student)}
}

// Insert adds a new student; a duplicate id is rejected.
func (s *StudentStore) Insert(student *models.Student) error {
	if _, ok := s.byID[student.ID]; ok {
		return appErrors.Clone(appErrors.ErrAlreadyExists, fmt.Sprintf("student %s already exists", student.ID))
	}
	s.byID[student.ID] = student
	s.order = append(s.order, student.ID)
	return nil
}

// Get returns the student with the given id.
func (s *StudentStore) Get(id string) (*models.Student, error) {
	student, ok := s.byID[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", id))
	}
	return student, nil
}

// Exists reports membership without an error round trip.
func (s *StudentStore) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// List returns all students in insertion order.
func (s *StudentStore) List() []*models.Student {
	out := make([]*models.Student, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Search returns the students matching the predicate, in insertion order.
func (s *StudentStore) Search(match func(*models.Student) bool) []*models.Student {
	out := make([]*models.Student, 0)
	for _, id := range s.order {
		if student := s.byID[id]; match(student) {
			out = append(out, student)
		}
	}
	return out
}

// Delete removes a student by id.
func (s *StudentStore) Delete(id string) error {
	if _, ok := s.byID[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", id))
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of stored students.
func (s *StudentStore) Count() int {
	return len(s.order)
}
