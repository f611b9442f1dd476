package models

import (
	"strings"

	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

// Name is an immutable person name. Middle is optional; First and Last must
// be non-empty after trimming.
type Name struct {
	First  string `json:"first"`
	Middle string `json:"middle,omitempty"`
	Last   string `json:"last"`
}

// NewName validates and canonicalises the name components.
func NewName(first, middle, last string) (Name, error) {
	name := Name{
		First:  strings.TrimSpace(first),
		Middle: strings.TrimSpace(middle),
		Last:   strings.TrimSpace(last),
	}
	if name.First == "" || name.Last == "" {
		return Name{}, appErrors.Clone(appErrors.ErrValidation, "first name and last name are required")
	}
	return name, nil
}

// Full returns the formatted full name.
func (n Name) Full() string {
	if n.Middle == "" {
		return n.First + " " + n.Last
	}
	return n.First + " " + n.Middle + " " + n.Last
}

// Initials returns dotted initials, e.g. "J.D." or "J.A.D.".
func (n Name) Initials() string {
	var b strings.Builder
	for _, part := range []string{n.First, n.Middle, n.Last} {
		if part != "" {
			b.WriteByte(part[0])
			b.WriteByte('.')
		}
	}
	return b.String()
}

func (n Name) String() string {
	return n.Full()
}
