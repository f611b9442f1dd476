package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewName(t *testing.T) {
	name, err := NewName(" Asha ", "K", " Rao ")
	require.NoError(t, err)
	assert.Equal(t, "Asha K Rao", name.Full())
	assert.Equal(t, "A.K.R.", name.Initials())

	_, err = NewName("", "", "Rao")
	assert.Error(t, err)
	_, err = NewName("Asha", "", "  ")
	assert.Error(t, err)
}

func TestNameWithoutMiddle(t *testing.T) {
	name, err := NewName("Asha", "", "Rao")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", name.Full())
	assert.Equal(t, "A.R.", name.Initials())
}
