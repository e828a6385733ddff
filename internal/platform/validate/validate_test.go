// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package validate_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammateam/callboard/internal/platform/apperr"
	"github.com/ammateam/callboard/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "fullname", "Мария Петрова", false},
		{"empty_string", "fullname", "", true},
		{"whitespace_only", "fullname", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_OneOf checks rejection of values outside a closed set.
*/
func TestValidator_OneOf(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"known_code", "CONFIRMED", true},
		{"unknown_code", "PENDING", false},
		{"lowercase_not_coerced", "confirmed", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.OneOf("status", tt.value, "DRAFT", "CONFIRMED", "CANCELED")

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_EndAfterStart checks the optional end-time ordering rule.
*/
func TestValidator_EndAfterStart(t *testing.T) {
	start := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	after := start.Add(2 * time.Hour)
	equal := start

	tests := []struct {
		name    string
		end     *time.Time
		isValid bool
	}{
		{"absent_end", nil, true},
		{"end_after_start", &after, true},
		{"end_equals_start", &equal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.EndAfterStart("end_at", start, tt.end)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_PositiveAmount checks that zero and negative amounts fail.
*/
func TestValidator_PositiveAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		isValid bool
	}{
		{"positive", "1500.50", true},
		{"smallest_positive", "0.01", true},
		{"zero", "0", false},
		{"negative", "-10", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.PositiveAmount("amount", decimal.RequireFromString(tt.amount))

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("title", "Гроза").
		MaxLen("title", "Гроза", 200).
		UUID("play_id", "0195c9a2-4be1-7c3e-9f1a-2b3c4d5e6f70").
		RequiredTime("start_at", time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "").                        // Fails
		UUID("play_id", "not-a-uuid").                // Fails
		Custom("days", true, "Must be 7 to 31 days"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
