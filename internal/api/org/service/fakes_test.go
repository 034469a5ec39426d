package orgsvc

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/raghavkapoor31/Organization-Management-Service/internal/api/base/service"
	orgmodels "github.com/raghavkapoor31/Organization-Management-Service/internal/api/org/models"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/common"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/logger"
)

func TestMain(m *testing.M) {
	// Log ra stdout trong test, không ghi file
	_ = logger.Init(&logger.LogConfig{
		Level:  "error",
		Format: "text",
		Output: "stdout",
	})
	os.Exit(m.Run())
}

// fakeStore là in-memory implementation của BaseServiceMongo cho test,
// chỉ hỗ trợ các filter bson.M mà OrganizationService thực sự dùng.
// UpdateOne giữ đúng contract của BaseServiceMongoImpl: match theo filter
// trước khi ghi, trả về bản ghi sau khi ghi.
type fakeStore[T any] struct {
	items     []*T
	match     func(item *T, filter bson.M) bool
	applySet  func(item *T, set map[string]interface{})
	setID     func(item *T, id primitive.ObjectID)
	insertErr error
	updateErr error
}

func (s *fakeStore[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T
	if s.insertErr != nil {
		return zero, s.insertErr
	}
	item := data
	s.setID(&item, primitive.NewObjectID())
	s.items = append(s.items, &item)
	return item, nil
}

func (s *fakeStore[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var zero T
	f := filter.(bson.M)
	for _, item := range s.items {
		if s.match(item, f) {
			return *item, nil
		}
	}
	return zero, common.ErrNotFound
}

func (s *fakeStore[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	f := filter.(bson.M)
	results := []T{}
	for _, item := range s.items {
		if s.match(item, f) {
			results = append(results, *item)
		}
	}
	return results, nil
}

func (s *fakeStore[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

func (s *fakeStore[T]) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (T, error) {
	var zero T
	if s.updateErr != nil {
		return zero, s.updateErr
	}
	ud, err := basesvc.ToUpdateData(update)
	if err != nil {
		return zero, err
	}
	f := filter.(bson.M)
	for _, item := range s.items {
		if s.match(item, f) {
			s.applySet(item, ud.Set)
			return *item, nil
		}
	}
	return zero, common.ErrNotFound
}

func (s *fakeStore[T]) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts *options.FindOneAndUpdateOptions) (T, error) {
	return s.UpdateOne(ctx, filter, update, nil)
}

func (s *fakeStore[T]) DeleteOne(ctx context.Context, filter interface{}) error {
	f := filter.(bson.M)
	for i, item := range s.items {
		if s.match(item, f) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (s *fakeStore[T]) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteOne(ctx, bson.M{"_id": id})
}

func (s *fakeStore[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	f := filter.(bson.M)
	var count int64
	for _, item := range s.items {
		if s.match(item, f) {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	count, err := s.CountDocuments(ctx, filter)
	return count > 0, err
}

func newFakeOrgStore() *fakeStore[orgmodels.Organization] {
	return &fakeStore[orgmodels.Organization]{
		match: func(item *orgmodels.Organization, filter bson.M) bool {
			for key, value := range filter {
				switch key {
				case "organization_name":
					if item.OrganizationName != value.(string) {
						return false
					}
				case "org_collection_name":
					if item.OrgCollectionName != value.(string) {
						return false
					}
				case "_id":
					if item.ID != value.(primitive.ObjectID) {
						return false
					}
				default:
					return false
				}
			}
			return true
		},
		applySet: func(item *orgmodels.Organization, set map[string]interface{}) {
			for key, value := range set {
				switch key {
				case "organization_name":
					item.OrganizationName = value.(string)
				case "org_collection_name":
					item.OrgCollectionName = value.(string)
				}
			}
			item.UpdatedAt = time.Now().UTC()
		},
		setID: func(item *orgmodels.Organization, id primitive.ObjectID) {
			item.ID = id
			item.CreatedAt = time.Now().UTC()
			item.UpdatedAt = item.CreatedAt
		},
	}
}

func newFakeAdminStore() *fakeStore[orgmodels.AdminUser] {
	return &fakeStore[orgmodels.AdminUser]{
		match: func(item *orgmodels.AdminUser, filter bson.M) bool {
			for key, value := range filter {
				switch key {
				case "email":
					if item.Email != value.(string) {
						return false
					}
				case "organization_name":
					if item.OrganizationName != value.(string) {
						return false
					}
				case "_id":
					if item.ID != value.(primitive.ObjectID) {
						return false
					}
				default:
					return false
				}
			}
			return true
		},
		applySet: func(item *orgmodels.AdminUser, set map[string]interface{}) {
			for key, value := range set {
				switch key {
				case "email":
					item.Email = value.(string)
				case "hashed_password":
					item.HashedPassword = value.(string)
				case "organization_name":
					item.OrganizationName = value.(string)
				}
			}
		},
		setID: func(item *orgmodels.AdminUser, id primitive.ObjectID) {
			item.ID = id
			item.CreatedAt = time.Now().UTC()
		},
	}
}

// fakePartitionStore là in-memory implementation của PartitionStore.
type fakePartitionStore struct {
	data      map[string][]bson.M
	createErr error
	copyErr   error
}

func newFakePartitionStore() *fakePartitionStore {
	return &fakePartitionStore{data: map[string][]bson.M{}}
}

func (s *fakePartitionStore) Create(ctx context.Context, name string) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.data[name] = []bson.M{}
	return nil
}

func (s *fakePartitionStore) Drop(ctx context.Context, name string) error {
	delete(s.data, name)
	return nil
}

func (s *fakePartitionStore) Exists(ctx context.Context, name string) (bool, error) {
	_, ok := s.data[name]
	return ok, nil
}

func (s *fakePartitionStore) CopyData(ctx context.Context, source, target string) error {
	if s.copyErr != nil {
		return s.copyErr
	}
	s.data[target] = append(s.data[target], s.data[source]...)
	return nil
}

// newTestOrganizationService tạo service trên toàn bộ fake store.
func newTestOrganizationService() (*OrganizationService, *fakeStore[orgmodels.Organization], *fakeStore[orgmodels.AdminUser], *fakePartitionStore) {
	orgs := newFakeOrgStore()
	admins := newFakeAdminStore()
	partitions := newFakePartitionStore()
	return NewOrganizationService(orgs, admins, partitions), orgs, admins, partitions
}
