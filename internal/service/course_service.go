package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-records-api/internal/models"
	"github.com/noah-isme/campus-records-api/internal/repository"
	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

// CourseService handles the course catalog: creation, instructor
// assignment and catalog queries.
type CourseService struct {
	courses     *repository.CourseStore
	instructors *repository.InstructorStore
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCourseService constructs the service.
func NewCourseService(courses *repository.CourseStore, instructors *repository.InstructorStore, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		courses:     courses,
		instructors: instructors,
		validator:   validate,
		logger:      logger,
	}
}

// CreateCourseRequest describes the course creation payload.
type CreateCourseRequest struct {
	Department    string   `json:"department" validate:"required"`
	Number        int      `json:"number" validate:"required,min=1"`
	Section       string   `json:"section" validate:"required"`
	Title         string   `json:"title" validate:"required"`
	Credits       int      `json:"credits" validate:"required,min=1,max=6"`
	Semester      string   `json:"semester" validate:"required"`
	InstructorID  string   `json:"instructor_id"`
	Description   string   `json:"description"`
	MaxCapacity   int      `json:"max_capacity" validate:"omitempty,min=1"`
	Prerequisites []string `json:"prerequisites"`
}

// UpdateCourseRequest describes the mutable course fields.
type UpdateCourseRequest struct {
	Title       *string `json:"title"`
	Credits     *int    `json:"credits" validate:"omitempty,min=1,max=6"`
	Description *string `json:"description"`
	MaxCapacity *int    `json:"max_capacity" validate:"omitempty,min=1"`
}

// Create builds and stores a new course.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.StructCtx(ctx, req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	code, err := models.NewCourseCode(req.Department, req.Number, req.Section)
	if err != nil {
		return nil, err
	}
	semester, err := models.ParseSemester(req.Semester)
	if err != nil {
		return nil, err
	}
	if req.InstructorID != "" && !s.instructors.Exists(req.InstructorID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("instructor %s not found", req.InstructorID))
	}

	builder := models.NewCourseBuilder(code, req.Title).
		Credits(req.Credits).
		Semester(semester).
		Department(req.Department).
		Description(req.Description).
		Instructor(req.InstructorID)
	if req.MaxCapacity > 0 {
		builder.MaxCapacity(req.MaxCapacity)
	}
	for _, prereq := range req.Prerequisites {
		builder.Prerequisite(prereq)
	}

	course, err := builder.Build()
	if err != nil {
		return nil, err
	}
	if err := s.courses.Insert(course); err != nil {
		return nil, err
	}
	if req.InstructorID != "" {
		if instructor, err := s.instructors.Get(req.InstructorID); err == nil {
			instructor.AssignCourse(course.Code.String())
		}
	}
	s.logger.Info("course created",
		zap.String("course_code", course.Code.String()),
		zap.String("semester", string(course.Semester)))
	return course, nil
}

// Update applies the provided catalog changes.
func (s *CourseService) Update(ctx context.Context, code string, req UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.StructCtx(ctx, req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	course, err := s.courses.Get(code)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		if err := course.SetTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Credits != nil {
		if err := course.SetCredits(*req.Credits); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.MaxCapacity != nil {
		if err := course.SetMaxCapacity(*req.MaxCapacity); err != nil {
			return nil, err
		}
	}
	return course, nil
}

// Get returns a course by code.
func (s *CourseService) Get(ctx context.Context, code string) (*models.Course, error) {
	return s.courses.Get(code)
}

// List returns all courses in catalog order.
func (s *CourseService) List(ctx context.Context) []*models.Course {
	return s.courses.List()
}

// Activate marks a course active; false when already active.
func (s *CourseService) Activate(ctx context.Context, code string) (bool, error) {
	course, err := s.courses.Get(code)
	if err != nil {
		return false, err
	}
	if course.Active {
		return false, nil
	}
	course.Active = true
	return true, nil
}

// Deactivate marks a course inactive; false when already inactive.
func (s *CourseService) Deactivate(ctx context.Context, code string) (bool, error) {
	course, err := s.courses.Get(code)
	if err != nil {
		return false, err
	}
	if !course.Active {
		return false, nil
	}
	course.Active = false
	return true, nil
}

// AssignInstructor points the course at the instructor and updates the
// instructor's teaching set. Returns false without error when the
// instructor does not exist.
func (s *CourseService) AssignInstructor(ctx context.Context, code, instructorID string) (bool, error) {
	course, err := s.courses.Get(code)
	if err != nil {
		return false, err
	}
	instructor, err := s.instructors.Get(instructorID)
	if err != nil {
		return false, nil
	}
	if course.InstructorID != "" && course.InstructorID != instructorID {
		if previous, err := s.instructors.Get(course.InstructorID); err == nil {
			previous.UnassignCourse(course.Code.String())
		}
	}
	course.InstructorID = instructorID
	instructor.AssignCourse(course.Code.String())
	s.logger.Info("instructor assigned",
		zap.String("course_code", course.Code.String()),
		zap.String("instructor_id", instructorID))
	return true, nil
}

// ByDepartment returns courses in the given department.
func (s *CourseService) ByDepartment(ctx context.Context, department string) []*models.Course {
	return s.courses.Search(func(c *models.Course) bool {
		return strings.EqualFold(c.Department, department)
	})
}

// BySemester returns courses running in the given semester.
func (s *CourseService) BySemester(ctx context.Context, semester models.Semester) []*models.Course {
	return s.courses.Search(func(c *models.Course) bool {
		return c.Semester == semester
	})
}

// ByInstructor returns courses taught by the given instructor.
func (s *CourseService) ByInstructor(ctx context.Context, instructorID string) []*models.Course {
	return s.courses.Search(func(c *models.Course) bool {
		return c.InstructorID == instructorID
	})
}

// ActiveCourses returns the active subset.
func (s *CourseService) ActiveCourses(ctx context.Context) []*models.Course {
	return s.courses.Search(func(c *models.Course) bool { return c.Active })
}

// WithAvailableSpots returns courses that still accept enrollments.
func (s *CourseService) WithAvailableSpots(ctx context.Context) []*models.Course {
	return s.courses.Search(func(c *models.Course) bool {
		return c.Active && !c.Full()
	})
}

// Popular returns courses enrolled above 80% of capacity.
func (s *CourseService) Popular(ctx context.Context) []*models.Course {
	return s.courses.Search((*models.Course).Popular)
}

// Underenrolled returns courses enrolled below 30% of capacity.
func (s *CourseService) Underenrolled(ctx context.Context) []*models.Course {
	return s.courses.Search((*models.Course).Underenrolled)
}

// ByCreditRange returns courses whose credits fall in [min, max].
func (s *CourseService) ByCreditRange(ctx context.Context, min, max int) []*models.Course {
	return s.courses.Search(func(c *models.Course) bool {
		return c.Credits >= min && c.Credits <= max
	})
}

// WithPrerequisites returns courses that declare at least one prerequisite.
func (s *CourseService) WithPrerequisites(ctx context.Context) []*models.Course {
	return s.courses.Search((*models.Course).HasPrerequisites)
}

// TitleSearch returns courses whose title contains the query,
// case-insensitive.
func (s *CourseService) TitleSearch(ctx context.Context, query string) []*models.Course {
	query = strings.ToLower(strings.TrimSpace(query))
	return s.courses.Search(func(c *models.Course) bool {
		return query != "" && strings.Contains(strings.ToLower(c.Title), query)
	})
}

// StatusGroups buckets course codes by their enrollment status summary.
func (s *CourseService) StatusGroups(ctx context.Context) map[string][]string {
	groups := make(map[string][]string)
	for _, c := range s.courses.List() {
		status := c.StatusSummary()
		groups[status] = append(groups[status], c.Code.String())
	}
	return groups
}

// CreditCounts returns the course count per credit value.
func (s *CourseService) CreditCounts(ctx context.Context) map[int]int {
	counts := make(map[int]int)
	for _, c := range s.courses.List() {
		counts[c.Credits]++
	}
	return counts
}

// SortedByAvailability returns courses ordered by free spots, descending;
// ties keep catalog order.
func (s *CourseService) SortedByAvailability(ctx context.Context) []*models.Course {
	all := s.courses.List()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].AvailableSpots() > all[j].AvailableSpots()
	})
	return all
}

// SortedByEnrollment returns courses ordered by roster size, descending;
// ties keep catalog order.
func (s *CourseService) SortedByEnrollment(ctx context.Context) []*models.Course {
	all := s.courses.List()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CurrentEnrollment() > all[j].CurrentEnrollment()
	})
	return all
}

// DepartmentCounts returns the course count per department.
func (s *CourseService) DepartmentCounts(ctx context.Context) map[string]int {
	counts := make(map[string]int)
	for _, c := range s.courses.List() {
		counts[c.Department]++
	}
	return counts
}

// SemesterCounts returns the course count per semester.
func (s *CourseService) SemesterCounts(ctx context.Context) map[models.Semester]int {
	counts := make(map[models.Semester]int)
	for _, c := range s.courses.List() {
		counts[c.Semester]++
	}
	return counts
}

// AverageEnrollmentPercentage returns the mean fill across all courses.
func (s *CourseService) AverageEnrollmentPercentage(ctx context.Context) float64 {
	all := s.courses.List()
	if len(all) == 0 {
		return 0.0
	}
	var total float64
	for _, c := range all {
		total += c.EnrollmentPercentage()
	}
	return total / float64(len(all))
}

// Catalog renders the formatted course catalog text.
func (s *CourseService) Catalog(ctx context.Context) string {
	var b strings.Builder
	line := strings.Repeat("=", 70) + "\n"

	b.WriteString(line)
	b.WriteString("COURSE CATALOG\n")
	b.WriteString(line)
	all := s.courses.List()
	if len(all) == 0 {
		b.WriteString("No courses in catalog.\n")
	} else {
		fmt.Fprintf(&b, "%-12s %-30s %-8s %-10s %s\n", "CODE", "TITLE", "CREDITS", "SEMESTER", "STATUS")
		b.WriteString(strings.Repeat("-", 70) + "\n")
		for _, c := range all {
			title := c.Title
			if len(title) > 30 {
				title = title[:27] + "..."
			}
			fmt.Fprintf(&b, "%-12s %-30s %-8d %-10s %s\n",
				c.Code.String(), title, c.Credits, c.Semester.DisplayName(), c.StatusSummary())
		}
	}
	b.WriteString(line)
	fmt.Fprintf(&b, "Total Courses: %d | Average Fill: %.1f%%\n", len(all), s.AverageEnrollmentPercentage(ctx))
	b.WriteString(line)
	return b.String()
}
