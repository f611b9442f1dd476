package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSemester(t *testing.T) {
	s, err := ParseSemester(" fall ")
	require.NoError(t, err)
	assert.Equal(t, SemesterFall, s)
	assert.Equal(t, "Fall", s.DisplayName())
	assert.Equal(t, 3, s.Code())

	_, err = ParseSemester("MONSOON")
	assert.Error(t, err)
}

func TestSemesterByCode(t *testing.T) {
	s, err := SemesterByCode(1)
	require.NoError(t, err)
	assert.Equal(t, SemesterSpring, s)

	_, err = SemesterByCode(9)
	assert.Error(t, err)
}
