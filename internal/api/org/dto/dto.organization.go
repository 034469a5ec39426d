// Package orgdto chứa các DTO cho request/response của domain tổ chức.
package orgdto

import (
	"time"
)

// OrgCreateInput là dữ liệu đầu vào để tạo tổ chức mới kèm admin đầu tiên.
type OrgCreateInput struct {
	OrganizationName string `json:"organization_name" validate:"required,min=1,max=100,no_xss"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
}

// OrgGetInput là dữ liệu đầu vào để tra cứu tổ chức theo tên.
type OrgGetInput struct {
	OrganizationName string `json:"organization_name" validate:"required,min=1,max=100"`
}

// OrgUpdateInput là dữ liệu đầu vào để cập nhật tổ chức.
// NewOrganizationName là optional: nếu có thì thực hiện rename kèm migrate
// partition, nếu không thì chỉ rotate credential admin.
type OrgUpdateInput struct {
	OrganizationName    string `json:"organization_name" validate:"required,min=1,max=100"`
	NewOrganizationName string `json:"new_organization_name,omitempty" validate:"omitempty,min=1,max=100,no_xss"`
	Email               string `json:"email" validate:"required,email"`
	Password            string `json:"password" validate:"required,min=8"`
}

// OrgDeleteInput là dữ liệu đầu vào để xóa tổ chức.
type OrgDeleteInput struct {
	OrganizationName string `json:"organization_name" validate:"required,min=1,max=100"`
}

// AdminLoginInput là dữ liệu đầu vào cho đăng nhập admin.
type AdminLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OrgResponse là dữ liệu trả về cho các thao tác tra cứu/tạo/cập nhật tổ chức.
type OrgResponse struct {
	ID                string    `json:"id"`
	OrganizationName  string    `json:"organization_name"`
	OrgCollectionName string    `json:"org_collection_name"`
	AdminUserID       string    `json:"admin_user_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// OrgDeleteResponse xác nhận tổ chức đã bị xóa.
type OrgDeleteResponse struct {
	Message          string `json:"message"`
	OrganizationName string `json:"organization_name"`
}

// AdminLoginResponse là dữ liệu trả về sau khi đăng nhập thành công.
type AdminLoginResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	OrganizationName string `json:"organization_name"`
	AdminID          string `json:"admin_id"`
}
