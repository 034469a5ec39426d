package orgsvc

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/raghavkapoor31/Organization-Management-Service/internal/common"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/logger"
)

// PartitionStore quản lý vòng đời các partition (collection riêng của từng
// tổ chức trong master DB). Mọi thao tác đều nhận tên partition đã derive
// sẵn từ DerivePartitionName.
type PartitionStore interface {
	// Create tạo partition mới. Partition phải chưa tồn tại.
	Create(ctx context.Context, name string) error
	// Drop xóa partition cùng toàn bộ dữ liệu trong đó.
	Drop(ctx context.Context, name string) error
	// Exists kiểm tra partition đã tồn tại chưa.
	Exists(ctx context.Context, name string) (bool, error)
	// CopyData sao chép toàn bộ document từ partition nguồn sang partition đích.
	CopyData(ctx context.Context, source, target string) error
}

// MongoPartitionStore triển khai PartitionStore trên một *mongo.Database.
type MongoPartitionStore struct {
	db *mongo.Database
}

// NewMongoPartitionStore tạo partition store trên database cho trước.
func NewMongoPartitionStore(db *mongo.Database) *MongoPartitionStore {
	return &MongoPartitionStore{db: db}
}

// Create tạo collection cho partition bằng cách insert rồi delete một
// document đánh dấu. MongoDB tạo collection lazily nên cần ghi một lần
// để collection tồn tại thật sự (và xuất hiện trong ListCollectionNames).
func (s *MongoPartitionStore) Create(ctx context.Context, name string) error {
	coll := s.db.Collection(name)

	if _, err := coll.InsertOne(ctx, bson.M{"_initialized": true}); err != nil {
		logger.GetErrorLogger().WithError(err).WithField("partition", name).Error("Không thể tạo partition")
		return common.ErrPartitionCreate
	}
	if _, err := coll.DeleteOne(ctx, bson.M{"_initialized": true}); err != nil {
		logger.GetErrorLogger().WithError(err).WithField("partition", name).Error("Không thể dọn document khởi tạo partition")
		return common.ErrPartitionCreate
	}
	return nil
}

// Drop xóa partition. Drop một collection không tồn tại trong MongoDB
// là no-op nên hàm này idempotent.
func (s *MongoPartitionStore) Drop(ctx context.Context, name string) error {
	if err := s.db.Collection(name).Drop(ctx); err != nil {
		logger.GetErrorLogger().WithError(err).WithField("partition", name).Error("Không thể xóa partition")
		return common.ConvertMongoError(err)
	}
	return nil
}

// Exists kiểm tra partition theo danh sách collection của database.
func (s *MongoPartitionStore) Exists(ctx context.Context, name string) (bool, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return len(names) > 0, nil
}

// CopyData sao chép toàn bộ document từ source sang target, giữ nguyên _id.
// Source rỗng là hợp lệ và không ghi gì vào target.
func (s *MongoPartitionStore) CopyData(ctx context.Context, source, target string) error {
	cursor, err := s.db.Collection(source).Find(ctx, bson.D{})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var documents []interface{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return common.ErrPartitionMigrate
		}
		documents = append(documents, doc)
	}
	if err := cursor.Err(); err != nil {
		return common.ConvertMongoError(err)
	}

	if len(documents) == 0 {
		return nil
	}

	if _, err := s.db.Collection(target).InsertMany(ctx, documents); err != nil {
		logger.GetErrorLogger().WithError(err).WithFields(logrus.Fields{
			"source": source,
			"target": target,
		}).Error("Không thể sao chép dữ liệu giữa các partition")
		return common.ErrPartitionMigrate
	}
	return nil
}
