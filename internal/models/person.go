package models

import (
	"fmt"
	"strings"
	"time"

	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

// PersonInfo is implemented by the concrete person variants. It replaces
// subclass dispatch: each variant supplies its type tag and detail line.
type PersonInfo interface {
	PersonType() string
	DisplayInfo() string
}

// Person is the identity record embedded by Student and Instructor.
type Person struct {
	ID           string    `json:"id"`
	Name         Name      `json:"name"`
	Email        string    `json:"email"`
	DateOfBirth  time.Time `json:"date_of_birth"`
	RegisteredAt time.Time `json:"registered_at"`
	Active       bool      `json:"active"`
}

func newPerson(id string, name Name, email string, dateOfBirth time.Time) (Person, error) {
	if strings.TrimSpace(id) == "" {
		return Person{}, appErrors.Clone(appErrors.ErrValidation, "person id cannot be empty")
	}
	if !strings.Contains(email, "@") {
		return Person{}, appErrors.Clone(appErrors.ErrValidation, "valid email required")
	}
	if dateOfBirth.IsZero() || !dateOfBirth.Before(time.Now()) {
		return Person{}, appErrors.Clone(appErrors.ErrValidation, "date of birth must be in the past")
	}
	return Person{
		ID:           id,
		Name:         name,
		Email:        email,
		DateOfBirth:  dateOfBirth,
		RegisteredAt: time.Now(),
		Active:       true,
	}, nil
}

// SetEmail replaces the email after validation.
func (p *Person) SetEmail(email string) error {
	if !strings.Contains(email, "@") {
		return appErrors.Clone(appErrors.ErrValidation, "valid email required")
	}
	p.Email = email
	return nil
}

// Age returns the age in whole years.
func (p *Person) Age() int {
	return time.Now().Year() - p.DateOfBirth.Year()
}

// Activate marks the person active.
func (p *Person) Activate() {
	p.Active = true
}

// Deactivate marks the person inactive.
func (p *Person) Deactivate() {
	p.Active = false
}

// SummaryAs formats the one-line person summary for the given variant tag.
func (p *Person) SummaryAs(personType string) string {
	state := "Active"
	if !p.Active {
		state = "Inactive"
	}
	return fmt.Sprintf("[%s] %s (%s) - %s", personType, p.Name.Full(), p.Email, state)
}
