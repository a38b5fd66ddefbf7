package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Role    string `json:"roleType" validate:"required,role"`
	Message string `json:"message" validate:"notblank"`
}

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	require.NoError(t, Register(v))
	return v
}

func TestRoleTag(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(signup{Role: "alumni", Message: "hi"}))
	assert.NoError(t, v.Struct(signup{Role: "ADMIN", Message: "hi"}))

	err := v.Struct(signup{Role: "INSTRUCTOR", Message: "hi"})
	var fieldErrs validator.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, "roleType", fieldErrs[0].Field(), "errors report the json name")
	assert.Equal(t, TagRole, fieldErrs[0].Tag())
}

func TestNotBlankTag(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(signup{Role: "STUDENT", Message: " \t "})
	var fieldErrs validator.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, "message", fieldErrs[0].Field())
	assert.Equal(t, TagNotBlank, fieldErrs[0].Tag())
}

func TestRegisterGinValidators(t *testing.T) {
	require.NoError(t, RegisterGinValidators())
	require.NoError(t, RegisterGinValidators())
}
