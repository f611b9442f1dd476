package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-records-api/internal/models"
	"github.com/noah-isme/campus-records-api/internal/repository"
	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

// InstructorService handles teaching staff records and workload queries.
type InstructorService struct {
	instructors *repository.InstructorStore
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewInstructorService constructs the service.
func NewInstructorService(instructors *repository.InstructorStore, validate *validator.Validate, logger *zap.Logger) *InstructorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructorService{
		instructors: instructors,
		validator:   validate,
		logger:      logger,
	}
}

// CreateInstructorRequest describes the hiring payload.
type CreateInstructorRequest struct {
	ID              string      `json:"id" validate:"required"`
	EmployeeID      string      `json:"employee_id" validate:"required"`
	Name            models.Name `json:"name"`
	Email           string      `json:"email" validate:"required,email"`
	DateOfBirth     time.Time   `json:"date_of_birth" validate:"required"`
	Department      string      `json:"department" validate:"required"`
	Designation     string      `json:"designation" validate:"required"`
	Salary          float64     `json:"salary" validate:"omitempty,min=0"`
	ExperienceYears int         `json:"experience_years" validate:"omitempty,min=0"`
	Qualifications  []string    `json:"qualifications"`
}

// UpdateInstructorRequest describes the mutable staff fields.
type UpdateInstructorRequest struct {
	Email           *string  `json:"email" validate:"omitempty,email"`
	Designation     *string  `json:"designation"`
	Salary          *float64 `json:"salary" validate:"omitempty,min=0"`
	ExperienceYears *int     `json:"experience_years" validate:"omitempty,min=0"`
}

// Create records a new instructor.
func (s *InstructorService) Create(ctx context.Context, req CreateInstructorRequest) (*models.Instructor, error) {
	if err := s.validator.StructCtx(ctx, req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	name, err := models.NewName(req.Name.First, req.Name.Middle, req.Name.Last)
	if err != nil {
		return nil, err
	}
	instructor, err := models.NewInstructor(req.ID, req.EmployeeID, name, req.Email, req.DateOfBirth, req.Department, req.Designation)
	if err != nil {
		return nil, err
	}
	if err := instructor.SetSalary(req.Salary); err != nil {
		return nil, err
	}
	if err := instructor.SetExperienceYears(req.ExperienceYears); err != nil {
		return nil, err
	}
	for _, q := range req.Qualifications {
		instructor.AddQualification(q)
	}
	if err := s.instructors.Insert(instructor); err != nil {
		return nil, err
	}
	s.logger.Info("instructor recorded",
		zap.String("instructor_id", instructor.ID),
		zap.String("employee_id", instructor.EmployeeID))
	return instructor, nil
}

// Update applies the provided staff changes.
func (s *InstructorService) Update(ctx context.Context, id string, req UpdateInstructorRequest) (*models.Instructor, error) {
	if err := s.validator.StructCtx(ctx, req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	instructor, err := s.instructors.Get(id)
	if err != nil {
		return nil, err
	}
	if req.Email != nil {
		if err := instructor.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Designation != nil {
		if strings.TrimSpace(*req.Designation) == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "designation cannot be empty")
		}
		instructor.Designation = *req.Designation
	}
	if req.Salary != nil {
		if err := instructor.SetSalary(*req.Salary); err != nil {
			return nil, err
		}
	}
	if req.ExperienceYears != nil {
		if err := instructor.SetExperienceYears(*req.ExperienceYears); err != nil {
			return nil, err
		}
	}
	return instructor, nil
}

// Get returns an instructor by id.
func (s *InstructorService) Get(ctx context.Context, id string) (*models.Instructor, error) {
	return s.instructors.Get(id)
}

// List returns all instructors in hiring order.
func (s *InstructorService) List(ctx context.Context) []*models.Instructor {
	return s.instructors.List()
}

// AddQualification records a qualification; false on duplicates.
func (s *InstructorService) AddQualification(ctx context.Context, id, qualification string) (bool, error) {
	instructor, err := s.instructors.Get(id)
	if err != nil {
		return false, err
	}
	return instructor.AddQualification(qualification), nil
}

// Profile renders the formatted profile for an instructor.
func (s *InstructorService) Profile(ctx context.Context, id string) (string, error) {
	instructor, err := s.instructors.Get(id)
	if err != nil {
		return "", err
	}
	return instructor.Profile(), nil
}

// ByDepartment returns instructors in the given department.
func (s *InstructorService) ByDepartment(ctx context.Context, department string) []*models.Instructor {
	return s.instructors.Search(func(i *models.Instructor) bool {
		return strings.EqualFold(i.Department, department)
	})
}

// Overloaded returns instructors teaching above the comfortable load.
func (s *InstructorService) Overloaded(ctx context.Context) []*models.Instructor {
	return s.instructors.Search((*models.Instructor).Overloaded)
}

// Senior returns instructors with more than five years of experience or
// service.
func (s *InstructorService) Senior(ctx context.Context) []*models.Instructor {
	return s.instructors.Search((*models.Instructor).Senior)
}

// Teaching returns instructors assigned to the given course.
func (s *InstructorService) Teaching(ctx context.Context, courseCode string) []*models.Instructor {
	return s.instructors.Search(func(i *models.Instructor) bool {
		return i.IsTeaching(courseCode)
	})
}

// AverageTeachingLoad returns the mean course count per instructor.
func (s *InstructorService) AverageTeachingLoad(ctx context.Context) float64 {
	all := s.instructors.List()
	if len(all) == 0 {
		return 0.0
	}
	total := 0
	for _, i := range all {
		total += i.TeachingLoad()
	}
	return float64(total) / float64(len(all))
}
