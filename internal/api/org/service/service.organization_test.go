package orgsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	orgdto "github.com/raghavkapoor31/Organization-Management-Service/internal/api/org/dto"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/common"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/utility"
)

func createInput(name, email string) *orgdto.OrgCreateInput {
	return &orgdto.OrgCreateInput{
		OrganizationName: name,
		Email:            email,
		Password:         "matkhau123",
	}
}

func TestCreateOrganization(t *testing.T) {
	svc, orgs, admins, partitions := newTestOrganizationService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, createInput("Acme Corp", "admin@acme.vn"))
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", resp.OrganizationName)
	assert.Equal(t, "org_acme_corp", resp.OrgCollectionName)
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.AdminUserID)

	// Metadata và partition đều đã tồn tại
	require.Len(t, orgs.items, 1)
	require.Len(t, admins.items, 1)
	exists, err := partitions.Exists(ctx, "org_acme_corp")
	require.NoError(t, err)
	assert.True(t, exists)

	// Admin liên kết đúng tổ chức, mật khẩu đã được băm
	admin := admins.items[0]
	assert.Equal(t, "Acme Corp", admin.OrganizationName)
	assert.NotEqual(t, "matkhau123", admin.HashedPassword)
	assert.True(t, utility.VerifyPassword("matkhau123", admin.HashedPassword))
	assert.Equal(t, admin.ID, orgs.items[0].AdminUserID)
}

func TestCreateOrganizationDuplicateName(t *testing.T) {
	svc, orgs, admins, _ := newTestOrganizationService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Acme Corp", "admin@acme.vn"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, createInput("Acme Corp", "other@acme.vn"))
	require.ErrorIs(t, err, common.ErrOrgNameExists)

	// Không có bản ghi thừa nào được tạo
	assert.Len(t, orgs.items, 1)
	assert.Len(t, admins.items, 1)
}

func TestCreateOrganizationDuplicateEmail(t *testing.T) {
	svc, orgs, admins, _ := newTestOrganizationService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Acme Corp", "admin@acme.vn"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, createInput("Globex", "admin@acme.vn"))
	require.ErrorIs(t, err, common.ErrEmailExists)

	assert.Len(t, orgs.items, 1)
	assert.Len(t, admins.items, 1)
}

func TestCreateOrganizationPartitionCollision(t *testing.T) {
	svc, orgs, admins, _ := newTestOrganizationService()
	ctx := context.Background()

	// "Acme Corp" và "Acme-Corp" derive ra cùng một partition
	_, err := svc.Create(ctx, createInput("Acme Corp", "admin@acme.vn"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, createInput("Acme-Corp", "other@acme.vn"))
	require.ErrorIs(t, err, common.ErrPartitionExists)

	// Không được ghi metadata nào trước khi phát hiện đụng độ
	assert.Len(t, orgs.items, 1)
	assert.Len(t, admins.items, 1)
}

func TestCreateOrganizationRollbackOnPartitionFailure(t *testing.T) {
	svc, orgs, admins, partitions := newTestOrganizationService()
	partitions.createErr = common.ErrPartitionCreate
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Acme Corp", "admin@acme.vn"))
	require.ErrorIs(t, err, common.ErrPartitionCreate)

	// Cả org lẫn admin đều phải được hoàn tác, không còn bản ghi mồ côi
	assert.Empty(t, orgs.items)
	assert.Empty(t, admins.items)
}

func TestGetOrganization(t *testing.T) {
	svc, _, _, _ := newTestOrganizationService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("Acme Corp", "admin@acme.vn"))
	require.NoError(t, err)

	resp, err := svc.Get(ctx, "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, "org_acme_corp", resp.OrgCollectionName)
}

func TestGetOrganizationNotFound(t *testing.T) {
	svc, _, _, _ := newTestOrganizationService()

	_, err := svc.Get(context.Background(), "Không Tồn Tại")
	require.ErrorIs(t, err, common.ErrOrgNotFound)
}

func TestUpdateOrganizationRotatesCredentials(t *testing.T) {
	svc, _, admins, _ := newTestOrganizationService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Acme Corp", "admin@acme.vn"))
	require.NoError(t, err)

	resp, err := svc.Update(ctx, "Acme Corp", &orgdto.OrgUpdateInput{
		OrganizationName: "Acme Corp",
		Email:            "moi@acme.vn",
		Password:         "matkhaumoi456",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", resp.OrganizationName)

	admin := admins.items[0]
	assert.Equal(t, "moi@acme.vn", admin.Email)
	assert.True(t, utility.VerifyPassword("matkhaumoi456", admin.HashedPassword))
	assert.False(t, utility.VerifyPassword("matkhau123", admin.HashedPassword))
}

func TestUpdateOrganizationForbiddenForOtherOrg(t *testing.T) {
	svc, _, admins, _ := newTestOrganizationService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Acme Corp", "admin@acme.vn"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "Globex", &orgdto.OrgUpdateInput{
		OrganizationName: "Acme Corp",
		Email:            "moi@acme.vn",
		Password:         "matkhaumoi456",
	})
	require.ErrorIs(t, err, common.ErrOrgAccessDenied)

	// Không có gì thay đổi
	assert.Equal(t, "admin@acme.vn", admins.items[0].Email)
}

func TestUpdateOrganizationNotFound(t *testing.T) {
	svc, _, _, _ := newTestOrganizationService()

	_, err := svc.Update(context.Background(), "Acme Corp", &orgdto.OrgUpdateInput{
		OrganizationName: "Acme Corp",
		Email:            "moi@acme.vn",
		Password:         "matkhaumoi456",
	})
	require.ErrorIs(t, err, common.ErrOrgNotFound)
}

func TestUpdateOrganizationRenameMigratesPartition(t *testing.T) {
	svc, orgs, admins, partitions := newTestOrganizationService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Acme Corp", "admin@acme.vn"))
	require.NoError(t, err)

	// Gieo dữ liệu vào partition cũ để kiểm tra migrate
	partitions.data["org_acme_corp"] = append(partitions.data["org_acme_corp"],
		bson.M{"doc": 1},
		bson.M{"doc": 2},
	)

	resp, err := svc.Update(ctx, "Acme Corp", &orgdto.OrgUpdateInput{
		OrganizationName:    "Acme Corp",
		NewOrganizationName: "Acme Corp II",
		Email:               "moi@acme.vn",
		Password:            "matkhaumoi456",
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp II", resp.OrganizationName)
	assert.Equal(t, "org_acme_corp_ii", resp.OrgCollectionName)

	// Dữ liệu đã sang partition mới, partition cũ không còn
	assert.Len(t, partitions.data["org_acme_corp_ii"], 2)
	_, oldExists := partitions.data["org_acme_corp"]
	assert.False(t, oldExists)

	// Metadata và admin đều trỏ sang tên mới
	assert.Equal(t, "Acme Corp II", orgs.items[0].OrganizationName)
	assert.Equal(t, "org_acme_corp_ii", orgs.items[0].OrgCollectionName)
	assert.Equal(t, "Acme Corp II", admins.items[0].OrganizationName)
}

func TestUpdateOrganizationRenameConflict(t *testing.T) {
	svc, _, _, _ := newTestOrganizationService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Acme Corp", "admin@acme.vn"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createInput("Globex", "admin@globex.vn"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "Acme Corp", &orgdto.OrgUpdateInput{
		OrganizationName:    "Acme Corp",
		NewOrganizationName: "Globex",
		Email:               "moi@acme.vn",
		Password:            "matkhaumoi456",
	})
	require.ErrorIs(t, err, common.ErrOrgNameExists)
}

func TestUpdateOrganizationRenameRollbackOnCopyFailure(t *testing.T) {
	svc, orgs, _, partitions := newTestOrganizationService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Acme Corp", "admin@acme.vn"))
	require.NoError(t, err)
	partitions.copyErr = common.ErrPartitionMigrate

	_, err = svc.Update(ctx, "Acme Corp", &orgdto.OrgUpdateInput{
		OrganizationName:    "Acme Corp",
		NewOrganizationName: "Acme Corp II",
		Email:               "moi@acme.vn",
		Password:            "matkhaumoi456",
	})
	require.ErrorIs(t, err, common.ErrPartitionMigrate)

	// Partition mới bị dọn, partition cũ và metadata giữ nguyên
	_, newExists := partitions.data["org_acme_corp_ii"]
	assert.False(t, newExists)
	_, oldExists := partitions.data["org_acme_corp"]
	assert.True(t, oldExists)
	assert.Equal(t, "Acme Corp", orgs.items[0].OrganizationName)
	assert.Equal(t, "org_acme_corp", orgs.items[0].OrgCollectionName)
}

func TestUpdateOrganizationRenameRollbackOnAdminStepFailure(t *testing.T) {
	svc, orgs, admins, partitions := newTestOrganizationService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Acme Corp", "admin@acme.vn"))
	require.NoError(t, err)
	partitions.data["org_acme_corp"] = append(partitions.data["org_acme_corp"], bson.M{"doc": 1})

	// Bước update-admin-organization chạy sau khi metadata đã ghi
	admins.updateErr = common.ErrMongoWrite

	_, err = svc.Update(ctx, "Acme Corp", &orgdto.OrgUpdateInput{
		OrganizationName:    "Acme Corp",
		NewOrganizationName: "Acme Corp II",
		Email:               "moi@acme.vn",
		Password:            "matkhaumoi456",
	})
	require.ErrorIs(t, err, common.ErrMongoWrite)

	// Metadata được hoàn tác về tên và partition cũ
	assert.Equal(t, "Acme Corp", orgs.items[0].OrganizationName)
	assert.Equal(t, "org_acme_corp", orgs.items[0].OrgCollectionName)

	// Partition cũ còn nguyên dữ liệu, admin chưa bị đổi tổ chức
	assert.Len(t, partitions.data["org_acme_corp"], 1)
	assert.Equal(t, "Acme Corp", admins.items[0].OrganizationName)

	// Dữ liệu đã sao chép xong nên partition mới không bị drop khi hoàn tác
	_, newExists := partitions.data["org_acme_corp_ii"]
	assert.True(t, newExists)
}

func TestDeleteOrganization(t *testing.T) {
	svc, orgs, admins, partitions := newTestOrganizationService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Acme Corp", "admin@acme.vn"))
	require.NoError(t, err)

	resp, err := svc.Delete(ctx, "Acme Corp", &orgdto.OrgDeleteInput{OrganizationName: "Acme Corp"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", resp.OrganizationName)
	assert.NotEmpty(t, resp.Message)

	// Cả ba nơi lưu trữ đều sạch
	assert.Empty(t, orgs.items)
	assert.Empty(t, admins.items)
	_, exists := partitions.data["org_acme_corp"]
	assert.False(t, exists)

	// Xóa lần hai phải trả về không tìm thấy
	_, err = svc.Delete(ctx, "Acme Corp", &orgdto.OrgDeleteInput{OrganizationName: "Acme Corp"})
	require.ErrorIs(t, err, common.ErrOrgNotFound)
}

func TestDeleteOrganizationForbiddenForOtherOrg(t *testing.T) {
	svc, orgs, _, _ := newTestOrganizationService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Acme Corp", "admin@acme.vn"))
	require.NoError(t, err)

	_, err = svc.Delete(ctx, "Globex", &orgdto.OrgDeleteInput{OrganizationName: "Acme Corp"})
	require.ErrorIs(t, err, common.ErrOrgAccessDenied)
	assert.Len(t, orgs.items, 1)
}
