package orgmodels

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeAdmin là giá trị claim "type" cho token của admin tổ chức.
const TokenTypeAdmin = "admin"

// AdminClaims là payload JWT cấp cho admin sau khi đăng nhập.
// Subject chứa ObjectID hex của admin, OrganizationName scope token
// vào đúng một tổ chức.
type AdminClaims struct {
	OrganizationName string `json:"organization_name"`
	TokenType        string `json:"type"`
	jwt.RegisteredClaims
}
