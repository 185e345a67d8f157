package serverutils

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerPayload struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Role     string `validate:"omitempty,oneof=borrower broker admin"`
}

func TestValidateStructPasses(t *testing.T) {
	err := ValidateStruct(&registerPayload{
		Email:    "user@example.com",
		Password: "supersecret",
		Role:     "borrower",
	})
	assert.NoError(t, err)
}

func TestValidateStructReportsMissingFields(t *testing.T) {
	err := ValidateStruct(&registerPayload{})
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.True(t, errors.As(err, &fiberErr))
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
	assert.Contains(t, fiberErr.Message, "email is required")
	assert.Contains(t, fiberErr.Message, "password is required")
}

func TestValidateStructFormatsTagMessages(t *testing.T) {
	tests := []struct {
		name    string
		payload registerPayload
		want    string
	}{
		{
			name:    "bad email",
			payload: registerPayload{Email: "not-an-email", Password: "supersecret"},
			want:    "email must be a valid email address",
		},
		{
			name:    "too short",
			payload: registerPayload{Email: "user@example.com", Password: "short"},
			want:    "password must be at least 8 characters",
		},
		{
			name:    "bad enum",
			payload: registerPayload{Email: "user@example.com", Password: "supersecret", Role: "owner"},
			want:    "role must be one of [borrower broker admin]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.payload)
			require.Error(t, err)

			var fiberErr *fiber.Error
			require.True(t, errors.As(err, &fiberErr))
			assert.Contains(t, fiberErr.Message, tt.want)
		})
	}
}
