// Package orgmodels chứa các model MongoDB cho domain tổ chức.
package orgmodels

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization lưu metadata của một tổ chức trong master collection.
// Mỗi tổ chức sở hữu đúng một partition (collection riêng trong master DB)
// có tên lưu ở OrgCollectionName.
type Organization struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrganizationName  string             `json:"organization_name" bson:"organization_name" index:"unique"`     // Tên hiển thị, duy nhất toàn hệ thống
	OrgCollectionName string             `json:"org_collection_name" bson:"org_collection_name" index:"unique"` // Tên partition derive từ tên tổ chức
	AdminUserID       primitive.ObjectID `json:"admin_user_id" bson:"admin_user_id"`                            // Admin duy nhất của tổ chức
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}
