package repository

import (
	"fmt"

	"github.com/noah-isme/campus-records-api/internal/models"
	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

// InstructorStore is an in-memory instructor collection. Iteration follows
// insertion order; not safe for concurrent use.
type InstructorStore struct {
	order []string
	byID  map[string]*models.Instructor
}

func NewInstructorStore() *InstructorStore {
	return &InstructorStore{byID: make(map[string]*models.Instructor)}
}

// Insert adds a new instructor; a duplicate id is rejected.
func (s *InstructorStore) Insert(instructor *models.Instructor) error {
	if _, ok := s.byID[instructor.ID]; ok {
		return appErrors.Clone(appErrors.ErrAlreadyExists, fmt.Sprintf("instructor %s already exists", instructor.ID))
	}
	s.byID[instructor.ID] = instructor
	s.order = append(s.order, instructor.ID)
	return nil
}

// Get returns the instructor with the given id.
func (s *InstructorStore) Get(id string) (*models.Instructor, error) {
	instructor, ok := s.byID[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("instructor %s not found", id))
	}
	return instructor, nil
}

// Exists reports membership without an error round trip.
func (s *InstructorStore) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// List returns all instructors in insertion order.
func (s *InstructorStore) List() []*models.Instructor {
	out := make([]*models.Instructor, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Search returns the instructors matching the predicate, in insertion order.
func (s *InstructorStore) Search(match func(*models.Instructor) bool) []*models.Instructor {
	out := make([]*models.Instructor, 0)
	for _, id := range s.order {
		if instructor := s.byID[id]; match(instructor) {
			out = append(out, instructor)
		}
	}
	return out
}

// Delete removes an instructor by id.
func (s *InstructorStore) Delete(id string) error {
	if _, ok := s.byID[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("instructor %s not found", id))
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

// Count returns the number of stored instructors.
func (s *InstructorStore) Count() int {
	return len(s.order)
}
