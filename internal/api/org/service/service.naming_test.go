package orgsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePartitionName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tên có khoảng trắng",
			input:    "Acme Corp",
			expected: "org_acme_corp",
		},
		{
			name:     "tên có ký tự đặc biệt cho cùng kết quả",
			input:    "Acme-Corp",
			expected: "org_acme_corp",
		},
		{
			name:     "tên có số",
			input:    "Acme Corp II",
			expected: "org_acme_corp_ii",
		},
		{
			name:     "nhiều ký tự đặc biệt liên tiếp gộp thành một underscore",
			input:    "Acme!!!Corp",
			expected: "org_acme_corp",
		},
		{
			name:     "underscore ở đầu và cuối bị cắt",
			input:    "_Acme Corp_",
			expected: "org_acme_corp",
		},
		{
			name:     "toàn ký tự đặc biệt rơi về tên mặc định",
			input:    "!!!",
			expected: "org_org_default",
		},
		{
			name:     "chuỗi rỗng rơi về tên mặc định",
			input:    "",
			expected: "org_org_default",
		},
		{
			name:     "bắt đầu bằng số vẫn hợp lệ",
			input:    "123 Corp",
			expected: "org_123_corp",
		},
		{
			name:     "ký tự ngoài ASCII bị thay bằng underscore",
			input:    "Tổ chức",
			expected: "org_t_ch_c",
		},
		{
			name:     "giữ nguyên underscore giữa chuỗi",
			input:    "acme_corp",
			expected: "org_acme_corp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DerivePartitionName(tt.input))
		})
	}
}

func TestDerivePartitionNameDeterministic(t *testing.T) {
	// Cùng input phải luôn cho cùng output
	first := DerivePartitionName("Acme Corp")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DerivePartitionName("Acme Corp"))
	}
}
