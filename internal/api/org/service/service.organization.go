// Package orgsvc chứa business logic cho vòng đời tổ chức:
// tạo, tra cứu, đổi tên kèm migrate partition và xóa.
package orgsvc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/raghavkapoor31/Organization-Management-Service/internal/api/base/service"
	orgdto "github.com/raghavkapoor31/Organization-Management-Service/internal/api/org/dto"
	orgmodels "github.com/raghavkapoor31/Organization-Management-Service/internal/api/org/models"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/common"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/global"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/logger"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/utility"
)

// OrganizationService điều phối các thao tác nhiều bước giữa ba nơi lưu trữ:
// master collection organizations, master collection admin_users và các
// partition của tenant. Các bước ghi được bọc trong Saga để hoàn tác khi
// một bước giữa chừng thất bại.
type OrganizationService struct {
	orgService   basesvc.BaseServiceMongo[orgmodels.Organization]
	adminService basesvc.BaseServiceMongo[orgmodels.AdminUser]
	partitions   PartitionStore
}

// NewOrganizationService tạo service với các dependency tiêm từ ngoài.
func NewOrganizationService(
	orgService basesvc.BaseServiceMongo[orgmodels.Organization],
	adminService basesvc.BaseServiceMongo[orgmodels.AdminUser],
	partitions PartitionStore,
) *OrganizationService {
	return &OrganizationService{
		orgService:   orgService,
		adminService: adminService,
		partitions:   partitions,
	}
}

// NewOrganizationServiceDefault tạo service trên các master collection đã
// đăng ký trong registry và partition store của database toàn cục.
// Partition của tenant không đi qua registry vì tên của chúng động.
func NewOrganizationServiceDefault() *OrganizationService {
	return NewOrganizationService(
		basesvc.NewBaseServiceMongo[orgmodels.Organization](global.GetCollection(global.MongoDB_ColNames.Organizations)),
		basesvc.NewBaseServiceMongo[orgmodels.AdminUser](global.GetCollection(global.MongoDB_ColNames.AdminUsers)),
		NewMongoPartitionStore(global.GetMasterDB()),
	)
}

// Create tạo tổ chức mới cùng admin đầu tiên và partition riêng.
// Thứ tự ghi: admin -> organization -> partition. Nếu tạo partition thất bại,
// cả hai bản ghi metadata được hoàn tác để không còn tổ chức mồ côi.
func (s *OrganizationService) Create(ctx context.Context, input *orgdto.OrgCreateInput) (*orgdto.OrgResponse, error) {
	// Kiểm tra tên tổ chức đã tồn tại chưa
	nameExists, err := s.orgService.DocumentExists(ctx, bson.M{"organization_name": input.OrganizationName})
	if err != nil {
		return nil, err
	}
	if nameExists {
		return nil, common.ErrOrgNameExists
	}

	// Kiểm tra email admin đã đăng ký chưa
	emailExists, err := s.adminService.DocumentExists(ctx, bson.M{"email": input.Email})
	if err != nil {
		return nil, err
	}
	if emailExists {
		return nil, common.ErrEmailExists
	}

	// Hai tên tổ chức khác nhau có thể derive ra cùng một partition,
	// nên phải kiểm tra đụng độ ở mức partition trước khi ghi gì cả
	partitionName := DerivePartitionName(input.OrganizationName)
	partitionExists, err := s.partitions.Exists(ctx, partitionName)
	if err != nil {
		return nil, err
	}
	if partitionExists {
		return nil, common.ErrPartitionExists
	}

	hashedPassword, err := utility.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeInternalServer,
			"Không thể băm mật khẩu",
			common.StatusInternalServerError,
			err,
		)
	}

	var createdAdmin orgmodels.AdminUser
	var createdOrg orgmodels.Organization

	saga := NewSaga().
		AddStep(SagaStep{
			Name: "insert-admin",
			Run: func(ctx context.Context) error {
				admin, err := s.adminService.InsertOne(ctx, orgmodels.AdminUser{
					Email:            input.Email,
					HashedPassword:   hashedPassword,
					OrganizationName: input.OrganizationName,
				})
				if err != nil {
					return err
				}
				createdAdmin = admin
				return nil
			},
			Undo: func(ctx context.Context) error {
				return s.adminService.DeleteById(ctx, createdAdmin.ID)
			},
		}).
		AddStep(SagaStep{
			Name: "insert-organization",
			Run: func(ctx context.Context) error {
				org, err := s.orgService.InsertOne(ctx, orgmodels.Organization{
					OrganizationName:  input.OrganizationName,
					OrgCollectionName: partitionName,
					AdminUserID:       createdAdmin.ID,
				})
				if err != nil {
					return err
				}
				createdOrg = org
				return nil
			},
			Undo: func(ctx context.Context) error {
				return s.orgService.DeleteById(ctx, createdOrg.ID)
			},
		}).
		AddStep(SagaStep{
			Name: "create-partition",
			Run: func(ctx context.Context) error {
				return s.partitions.Create(ctx, partitionName)
			},
		})

	if err := saga.Execute(ctx); err != nil {
		return nil, err
	}

	logger.GetAuditLogger().WithField("organization_name", createdOrg.OrganizationName).Info("Đã tạo tổ chức mới")
	return toOrgResponse(&createdOrg), nil
}

// Get tra cứu tổ chức theo tên hiển thị.
func (s *OrganizationService) Get(ctx context.Context, organizationName string) (*orgdto.OrgResponse, error) {
	org, err := s.orgService.FindOne(ctx, bson.M{"organization_name": organizationName}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrOrgNotFound
		}
		return nil, err
	}
	return toOrgResponse(&org), nil
}

// Update cập nhật tổ chức. Credential admin (email + mật khẩu) luôn được
// rotate. Nếu input có tên mới thì đổi tên tổ chức kèm migrate partition:
// tạo partition mới, sao chép dữ liệu, cập nhật metadata rồi xóa partition cũ.
// actorOrg là tên tổ chức trong token của người gọi.
func (s *OrganizationService) Update(ctx context.Context, actorOrg string, input *orgdto.OrgUpdateInput) (*orgdto.OrgResponse, error) {
	org, err := s.orgService.FindOne(ctx, bson.M{"organization_name": input.OrganizationName}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrOrgNotFound
		}
		return nil, err
	}

	// Token chỉ có quyền trên đúng tổ chức của nó
	if actorOrg != input.OrganizationName {
		return nil, common.ErrOrgAccessDenied
	}

	finalName := input.OrganizationName
	renaming := input.NewOrganizationName != "" && input.NewOrganizationName != input.OrganizationName

	if renaming {
		if err := s.migratePartition(ctx, &org, input.NewOrganizationName); err != nil {
			return nil, err
		}
		finalName = input.NewOrganizationName
	}

	// Rotate credential admin trong mọi trường hợp
	hashedPassword, err := utility.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeInternalServer,
			"Không thể băm mật khẩu",
			common.StatusInternalServerError,
			err,
		)
	}
	if _, err := s.adminService.UpdateOne(ctx, bson.M{"_id": org.AdminUserID}, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"email":           input.Email,
			"hashed_password": hashedPassword,
		},
	}, nil); err != nil {
		return nil, err
	}

	// Nếu không đổi tên, vẫn phải đẩy updated_at của tổ chức lên
	if !renaming {
		if _, err := s.orgService.UpdateOne(ctx, bson.M{"organization_name": finalName}, &basesvc.UpdateData{
			Set: map[string]interface{}{},
		}, nil); err != nil {
			return nil, err
		}
	}

	updated, err := s.orgService.FindOne(ctx, bson.M{"organization_name": finalName}, nil)
	if err != nil {
		return nil, err
	}

	logger.GetAuditLogger().WithField("organization_name", finalName).Info("Đã cập nhật tổ chức")
	return toOrgResponse(&updated), nil
}

// migratePartition đổi tên tổ chức và chuyển dữ liệu sang partition mới.
// Partition mới chỉ tồn tại sau khi sao chép thành công; sao chép thất bại
// thì partition mới bị xóa và partition cũ giữ nguyên.
func (s *OrganizationService) migratePartition(ctx context.Context, org *orgmodels.Organization, newName string) error {
	// Tên mới không được trùng với tổ chức khác
	nameExists, err := s.orgService.DocumentExists(ctx, bson.M{"organization_name": newName})
	if err != nil {
		return err
	}
	if nameExists {
		return common.ErrOrgNameExists
	}

	newPartition := DerivePartitionName(newName)
	partitionExists, err := s.partitions.Exists(ctx, newPartition)
	if err != nil {
		return err
	}
	if partitionExists {
		return common.ErrPartitionExists
	}

	oldPartition := org.OrgCollectionName
	oldName := org.OrganizationName

	// Sau khi sao chép xong, partition mới không được drop nữa: bước metadata
	// phía sau có thể đã ghi một phần, drop lúc đó sẽ làm org record trỏ vào
	// collection không tồn tại. Partition mới chỉ được drop khi org record
	// còn nguyên trạng thái cũ.
	copyCommitted := false

	saga := NewSaga().
		AddStep(SagaStep{
			Name: "create-new-partition",
			Run: func(ctx context.Context) error {
				return s.partitions.Create(ctx, newPartition)
			},
			Undo: func(ctx context.Context) error {
				if copyCommitted {
					return nil
				}
				return s.partitions.Drop(ctx, newPartition)
			},
		}).
		AddStep(SagaStep{
			Name: "copy-partition-data",
			Run: func(ctx context.Context) error {
				oldExists, err := s.partitions.Exists(ctx, oldPartition)
				if err != nil {
					return err
				}
				if oldExists {
					if err := s.partitions.CopyData(ctx, oldPartition, newPartition); err != nil {
						return err
					}
				}
				copyCommitted = true
				return nil
			},
		}).
		AddStep(SagaStep{
			Name: "update-organization-metadata",
			Run: func(ctx context.Context) error {
				_, err := s.orgService.UpdateOne(ctx, bson.M{"_id": org.ID}, &basesvc.UpdateData{
					Set: map[string]interface{}{
						"organization_name":   newName,
						"org_collection_name": newPartition,
					},
				}, nil)
				return err
			},
			Undo: func(ctx context.Context) error {
				_, err := s.orgService.UpdateOne(ctx, bson.M{"_id": org.ID}, &basesvc.UpdateData{
					Set: map[string]interface{}{
						"organization_name":   oldName,
						"org_collection_name": oldPartition,
					},
				}, nil)
				return err
			},
		}).
		AddStep(SagaStep{
			Name: "update-admin-organization",
			Run: func(ctx context.Context) error {
				_, err := s.adminService.UpdateOne(ctx, bson.M{"_id": org.AdminUserID}, &basesvc.UpdateData{
					Set: map[string]interface{}{
						"organization_name": newName,
					},
				}, nil)
				return err
			},
		})

	if err := saga.Execute(ctx); err != nil {
		return err
	}

	// Partition cũ chỉ bị xóa sau khi migrate hoàn tất. Lỗi ở đây không
	// làm hỏng dữ liệu (partition mới đã đầy đủ) nên chỉ ghi log.
	if err := s.partitions.Drop(ctx, oldPartition); err != nil {
		logger.GetErrorLogger().WithError(err).WithField("partition", oldPartition).Error("Không thể xóa partition cũ sau khi migrate")
	}

	return nil
}

// Delete xóa tổ chức: drop partition, xóa admin rồi xóa metadata tổ chức.
// actorOrg là tên tổ chức trong token của người gọi.
func (s *OrganizationService) Delete(ctx context.Context, actorOrg string, input *orgdto.OrgDeleteInput) (*orgdto.OrgDeleteResponse, error) {
	org, err := s.orgService.FindOne(ctx, bson.M{"organization_name": input.OrganizationName}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrOrgNotFound
		}
		return nil, err
	}

	if actorOrg != input.OrganizationName {
		return nil, common.ErrOrgAccessDenied
	}

	// Drop partition trước. Lỗi drop không chặn việc xóa metadata,
	// partition mồ côi vô hại hơn metadata mồ côi.
	if err := s.partitions.Drop(ctx, org.OrgCollectionName); err != nil {
		logger.GetErrorLogger().WithError(err).WithField("partition", org.OrgCollectionName).Error("Không thể xóa partition khi xóa tổ chức")
	}

	if err := s.adminService.DeleteById(ctx, org.AdminUserID); err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	if err := s.orgService.DeleteOne(ctx, bson.M{"organization_name": input.OrganizationName}); err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	logger.GetAuditLogger().WithField("organization_name", input.OrganizationName).Info("Đã xóa tổ chức")
	return &orgdto.OrgDeleteResponse{
		Message:          "Organization deleted successfully",
		OrganizationName: input.OrganizationName,
	}, nil
}

// toOrgResponse chuyển model sang DTO response, đổi ObjectID sang hex string.
func toOrgResponse(org *orgmodels.Organization) *orgdto.OrgResponse {
	return &orgdto.OrgResponse{
		ID:                org.ID.Hex(),
		OrganizationName:  org.OrganizationName,
		OrgCollectionName: org.OrgCollectionName,
		AdminUserID:       org.AdminUserID.Hex(),
		CreatedAt:         org.CreatedAt,
		UpdatedAt:         org.UpdatedAt,
	}
}
