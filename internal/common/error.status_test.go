package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorSentinelStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"thiếu token", ErrTokenMissing, StatusUnauthorized},
		{"sai thông tin đăng nhập", ErrInvalidCredentials, StatusUnauthorized},
		{"không có quyền trên tổ chức", ErrOrgAccessDenied, StatusForbidden},
		{"tên tổ chức trùng", ErrOrgNameExists, StatusConflict},
		{"email trùng", ErrEmailExists, StatusConflict},
		{"partition trùng", ErrPartitionExists, StatusConflict},
		{"không tìm thấy tổ chức", ErrOrgNotFound, StatusNotFound},
		{"lỗi tạo partition", ErrPartitionCreate, StatusInternalServerError},
		{"lỗi migrate partition", ErrPartitionMigrate, StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var customErr *Error
			require.True(t, errors.As(tt.err, &customErr))
			assert.Equal(t, tt.expected, customErr.StatusCode)
		})
	}
}

func TestErrorIsMatchesSameSentinel(t *testing.T) {
	assert.True(t, errors.Is(ErrOrgNotFound, ErrOrgNotFound))
	assert.False(t, errors.Is(ErrOrgNotFound, ErrOrgNameExists))

	// Lỗi tạo qua NewError với cùng code và message cũng match
	clone := NewError(ErrCodeTenantNotFound, "Không tìm thấy tổ chức", StatusNotFound, nil)
	assert.True(t, errors.Is(clone, ErrOrgNotFound))
}

func TestConvertMongoError(t *testing.T) {
	t.Run("nil giữ nguyên nil", func(t *testing.T) {
		assert.NoError(t, ConvertMongoError(nil))
	})

	t.Run("không có document", func(t *testing.T) {
		assert.ErrorIs(t, ConvertMongoError(mongo.ErrNoDocuments), ErrNotFound)
	})

	t.Run("ErrNotFound đi qua không bị bọc lại", func(t *testing.T) {
		assert.ErrorIs(t, ConvertMongoError(ErrNotFound), ErrNotFound)
	})

	t.Run("duplicate key", func(t *testing.T) {
		dupErr := mongo.WriteException{
			WriteErrors: mongo.WriteErrors{
				{Code: 11000, Message: "E11000 duplicate key error"},
			},
		}
		assert.ErrorIs(t, ConvertMongoError(dupErr), ErrDuplicate)
	})

	t.Run("lỗi không nhận diện được trả về lỗi hệ thống chung", func(t *testing.T) {
		err := ConvertMongoError(errors.New("lỗi lạ"))
		var customErr *Error
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, ErrCodeDatabase.Code, customErr.Code.Code)
		assert.Equal(t, StatusInternalServerError, customErr.StatusCode)
	})
}
