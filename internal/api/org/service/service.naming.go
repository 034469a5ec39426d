package orgsvc

import (
	"regexp"
	"strings"
)

var (
	invalidCharsPattern   = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	repeatedUnderscoreRgx = regexp.MustCompile(`_+`)
)

// DerivePartitionName chuyển tên tổ chức thành tên partition hợp lệ trong MongoDB.
// Hàm này thuần túy và deterministic: cùng một input luôn cho cùng một output,
// nên hai tên tổ chức khác nhau có thể đụng nhau (ví dụ "Acme Corp" và "Acme-Corp").
// Caller phải kiểm tra trùng partition trước khi dùng kết quả.
//
// Các bước biến đổi:
//  1. Thay mọi ký tự ngoài [a-zA-Z0-9_] bằng '_'
//  2. Gộp các chuỗi '_' liên tiếp thành một
//  3. Cắt '_' ở đầu và cuối
//  4. Nếu rỗng hoặc không bắt đầu bằng chữ/số thì chèn tiền tố bổ sung
//  5. Lowercase và gắn tiền tố "org_"
//
// Ví dụ: "Acme Corp" -> "org_acme_corp"
func DerivePartitionName(organizationName string) string {
	sanitized := invalidCharsPattern.ReplaceAllString(organizationName, "_")
	sanitized = repeatedUnderscoreRgx.ReplaceAllString(sanitized, "_")
	sanitized = strings.Trim(sanitized, "_")

	if sanitized == "" {
		sanitized = "org_default"
	} else if !isAlnum(rune(sanitized[0])) {
		sanitized = "org_" + sanitized
	}

	return "org_" + strings.ToLower(sanitized)
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
