package repository

import (
	"fmt"
	"strings"

	"github.com/noah-isme/campus-records-api/internal/models"
	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

// CourseStore is an in-memory course collection keyed by course code.
// Iteration follows insertion order; not safe for concurrent use.
type CourseStore struct {
	order  []string
	byCode map[string]*models.Course
}

func NewCourseStore() *CourseStore {
	return &CourseStore{byCode: make(map[string]*models.Course)}
}

func courseKey(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Insert adds a new course; a duplicate code is rejected.
func (s *CourseStore) Insert(course *models.Course) error {
	key := courseKey(course.Code.String())
	if _, ok := s.byCode[key]; ok {
		return appErrors.Clone(appErrors.ErrAlreadyExists, fmt.Sprintf("course %s already exists", key))
	}
	s.byCode[key] = course
	s.order = append(s.order, key)
	return nil
}

// Get returns the course with the given code.
func (s *CourseStore) Get(code string) (*models.Course, error) {
	course, ok := s.byCode[courseKey(code)]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %s not found", courseKey(code)))
	}
	return course, nil
}

// Exists reports membership without an error round trip.
func (s *CourseStore) Exists(code string) bool {
	_, ok := s.byCode[courseKey(code)]
	return ok
}

// List returns all courses in insertion order.
func (s *CourseStore) List() []*models.Course {
	out := make([]*models.Course, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.byCode[key])
	}
	return out
}

// Search returns the courses matching the predicate, in insertion order.
func (s *CourseStore) Search(match func(*models.Course) bool) []*models.Course {
	out := make([]*models.Course, 0)
	for _, key := range s.order {
		if course := s.byCode[key]; match(course) {
			out = append(out, course)
		}
	}
	return out
}

// Delete removes a course by code.
func (s *CourseStore) Delete(code string) error {
	key := courseKey(code)
	if _, ok := s.byCode[key]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %s not found", key))
	}
	delete(s.byCode, key)
	for i, existing := range s.order {
		if existing == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of stored courses.
func (s *CourseStore) Count() int {
	return len(s.order)
}
