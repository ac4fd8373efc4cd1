package form

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/formease/formease-server/internal/llm"
)

func TestMergeFillsEveryNonEmptyField(t *testing.T) {
	fields := llm.DetailFields{
		FirstName:         "John",
		Surname:           "Doe",
		Address:           "10 Elm St, Anytown",
		Postcode:          "AN1 1AA",
		Email:             "john@x.com",
		FavoriteTimeOfDay: "Morning",
	}

	var state State
	filled := MergeExtracted(fields, &state)

	assert.Equal(t, 6, filled)
	assert.Equal(t, "John", state.FirstName)
	assert.Equal(t, "Doe", state.Surname)
	assert.Equal(t, "10 Elm St, Anytown", state.Address)
	assert.Equal(t, "AN1 1AA", state.Postcode)
	assert.Equal(t, "john@x.com", state.Email)
	assert.Equal(t, "Morning", state.FavoriteTimeOfDay)
}

func TestMergeNeverOverwritesWithEmptiness(t *testing.T) {
	state := State{Address: "10 Elm St", Email: "old@x.com"}
	fields := llm.DetailFields{FirstName: "John", Address: ""}

	filled := MergeExtracted(fields, &state)

	assert.Equal(t, 1, filled)
	assert.Equal(t, "10 Elm St", state.Address)
	assert.Equal(t, "old@x.com", state.Email)
	assert.Equal(t, "John", state.FirstName)
}

func TestMergeOverwritesExistingValuesWithNonEmptyOnes(t *testing.T) {
	state := State{FirstName: "Jane"}
	fields := llm.DetailFields{FirstName: "John"}

	filled := MergeExtracted(fields, &state)

	assert.Equal(t, 1, filled)
	assert.Equal(t, "John", state.FirstName)
}

func TestMergeIsIdempotent(t *testing.T) {
	fields := llm.DetailFields{
		FirstName: "John",
		Surname:   "Doe",
		Postcode:  "AN1 1AA",
	}

	once := State{Address: "kept"}
	MergeExtracted(fields, &once)

	twice := State{Address: "kept"}
	MergeExtracted(fields, &twice)
	filled := MergeExtracted(fields, &twice)

	assert.Equal(t, once, twice)
	assert.Equal(t, 3, filled)
}

func TestMergeOfEmptyRecordWritesNothing(t *testing.T) {
	state := State{FirstName: "Jane", Address: "somewhere"}
	before := state

	filled := MergeExtracted(llm.DetailFields{}, &state)

	assert.Equal(t, 0, filled)
	assert.Equal(t, before, state)
}

func TestMergeIgnoresCallerOnlyFields(t *testing.T) {
	state := State{CreateLogin: true}
	MergeExtracted(llm.DetailFields{FirstName: "John"}, &state)
	assert.True(t, state.CreateLogin)
}
