package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	DateStart string `json:"date_start" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	WeekCount int    `json:"week_count" validate:"min=1,max=52"`
}

func TestValidateStructPasses(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{
		ProductID: "6f1f64ab-64b2-4a26-9e0d-7c3f8d9b2a11",
		DateStart: "2026-06-01T00:00:00Z",
		WeekCount: 12,
	})
	require.Empty(t, errs)
}

func TestValidateStructMessages(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{
		ProductID: "not-a-uuid",
		DateStart: "01-06-2026",
		WeekCount: 0,
	})

	require.Equal(t, "Must be a valid UUID", errs["ProductID"])
	require.Equal(t, "Must be an RFC 3339 timestamp", errs["DateStart"])
	require.Equal(t, "Minimum is 1", errs["WeekCount"])
}

func TestValidateStructRequired(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{WeekCount: 1})
	require.Equal(t, "This field is required", errs["ProductID"])
}

func TestFormatValidationErrors(t *testing.T) {
	msg := FormatValidationErrors(map[string]string{"date_end": "This field is required"})
	require.Equal(t, "date_end: This field is required", msg)
}
