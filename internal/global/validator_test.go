package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noXSSInput struct {
	Name string `validate:"required,no_xss"`
}

func TestValidateNoXSS(t *testing.T) {
	InitValidator()
	require.NotNil(t, Validate)

	valid := []string{
		"Acme Corp",
		"Tổ chức ABC",
		"Acme <Corp>", // Tag lạ nhưng không nằm trong danh sách nguy hiểm
	}
	for _, name := range valid {
		assert.NoError(t, Validate.Struct(noXSSInput{Name: name}), name)
	}

	invalid := []string{
		"<script>alert(1)</script>",
		"javascript:alert(1)",
		"<img src=x onerror=alert(1)>",
		"<IFRAME src=evil>",
		"eval(document.cookie)",
	}
	for _, name := range invalid {
		assert.Error(t, Validate.Struct(noXSSInput{Name: name}), name)
	}
}
