package models

import "fmt"

// LetterGrade represents an academic grade letter.
type LetterGrade string

// Grade letters from best to worst.
const (
	GradeS LetterGrade = "S"
	GradeA LetterGrade = "A"
	GradeB LetterGrade = "B"
	GradeC LetterGrade = "C"
	GradeD LetterGrade = "D"
	GradeE LetterGrade = "E"
	GradeF LetterGrade = "F"
)

type gradeInfo struct {
	point       float64
	description string
}

var gradeTable = map[LetterGrade]gradeInfo{
	GradeS: {10.0, "Outstanding"},
	GradeA: {9.0, "Excellent"},
	GradeB: {8.0, "Very Good"},
	GradeC: {7.0, "Good"},
	GradeD: {6.0, "Satisfactory"},
	GradeE: {5.0, "Pass"},
	GradeF: {0.0, "Fail"},
}

// GradeFromMarks maps a numeric mark to exactly one grade. The function is
// total: anything below 40 (including negatives) is F.
func GradeFromMarks(marks float64) LetterGrade {
	switch {
	case marks >= 90.0:
		return GradeS
	case marks >= 80.0:
		return GradeA
	case marks >= 70.0:
		return GradeB
	case marks >= 60.0:
		return GradeC
	case marks >= 50.0:
		return GradeD
	case marks >= 40.0:
		return GradeE
	default:
		return GradeF
	}
}

// Valid reports whether the letter is a known grade.
func (g LetterGrade) Valid() bool {
	_, ok := gradeTable[g]
	return ok
}

// GradePoint returns the numeric grade point (10.0 down to 0.0).
func (g LetterGrade) GradePoint() float64 {
	return gradeTable[g].point
}

// Description returns the human-readable grade description.
func (g LetterGrade) Description() string {
	return gradeTable[g].description
}

// Passing reports whether the grade is anything other than F.
func (g LetterGrade) Passing() bool {
	return g != GradeF
}

// GradePoints returns the total grade points earned for the given credits.
func (g LetterGrade) GradePoints(credits int) float64 {
	return g.GradePoint() * float64(credits)
}

func (g LetterGrade) String() string {
	return fmt.Sprintf("%s (%.1f) - %s", string(g), g.GradePoint(), g.Description())
}
