package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Movie      string `validate:"required,uuid4"`
	SeatNumber string `validate:"required,min=1,max=10"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{
		Movie:      "c7b3b8a0-1111-4222-8333-444455556666",
		SeatNumber: "A1",
	})
	assert.Nil(t, errs)
}

func TestValidateStructReportsFields(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{
		Movie:      "not-a-uuid",
		SeatNumber: "",
	})
	require.Len(t, errs, 2)
	assert.Equal(t, "Must be a valid UUID", errs["Movie"])
	assert.Equal(t, "This field is required", errs["SeatNumber"])
}

func TestFormatValidationErrors(t *testing.T) {
	out := FormatValidationErrors(map[string]string{"Movie": "Must be a valid UUID"})
	assert.Equal(t, "Movie: Must be a valid UUID", out)
}
