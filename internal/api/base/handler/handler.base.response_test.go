package basehdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raghavkapoor31/Organization-Management-Service/internal/common"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/global"
)

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidateInputReturnsFieldDetails(t *testing.T) {
	global.InitValidator()
	var h BaseHandler

	err := h.ValidateInput(&loginForm{Email: "khong-phai-email", Password: "ngan"})
	require.Error(t, err)
	require.ErrorIs(t, err, common.ErrInvalidInput)

	var customErr *common.Error
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, common.ErrCodeValidationInput.Code, customErr.Code.Code)
	assert.Equal(t, common.ErrInvalidInput.Error(), customErr.Message)
	assert.Equal(t, common.StatusBadRequest, customErr.StatusCode)

	details, ok := customErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "Email")
	assert.Contains(t, details, "Password")
}

func TestValidateInputAcceptsValidStruct(t *testing.T) {
	global.InitValidator()
	var h BaseHandler

	assert.NoError(t, h.ValidateInput(&loginForm{Email: "admin@acme.vn", Password: "matkhau123"}))
}
