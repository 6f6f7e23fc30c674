package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifierReusesReleasedIDs(t *testing.T) {
	first, second := "first", "second"
	a := IdentifierAcquireNewID(&first)
	b := IdentifierAcquireNewID(&second)
	defer IdentifierReleaseID(b)

	assert.NotEqual(t, InvalidID, a)
	assert.NotEqual(t, a, b)
	assert.Same(t, &first, IdentifierOwner(a))

	require.NoError(t, IdentifierReleaseID(a))
	assert.Nil(t, IdentifierOwner(a))

	third := "third"
	c := IdentifierAcquireNewID(&third)
	defer IdentifierReleaseID(c)
	assert.Equal(t, a, c, "lowest free id is handed out again")
}

func TestIdentifierReleaseOutOfRange(t *testing.T) {
	owner := "owner"
	id := IdentifierAcquireNewID(&owner)
	defer IdentifierReleaseID(id)

	assert.Error(t, IdentifierReleaseID(InvalidID))
	assert.Error(t, IdentifierReleaseID(id+1000))
	assert.Nil(t, IdentifierOwner(InvalidID))
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, LogLevelWarn, level)

	_, err = ParseLogLevel("loud")
	assert.Error(t, err)
}
