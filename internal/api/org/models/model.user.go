package orgmodels

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminUser lưu thông tin đăng nhập của admin một tổ chức.
// Mỗi tổ chức có đúng một admin, liên kết qua OrganizationName.
// HashedPassword không bao giờ được serialize ra JSON.
type AdminUser struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email            string             `json:"email" bson:"email" index:"unique"`
	HashedPassword   string             `json:"-" bson:"hashed_password"`
	OrganizationName string             `json:"organization_name" bson:"organization_name"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
}
