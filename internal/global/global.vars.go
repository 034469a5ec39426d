package global

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/raghavkapoor31/Organization-Management-Service/config"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/registry"
)

// MasterCollectionName chứa tên các master collection trong MongoDB.
// Các partition của tenant không nằm ở đây: tên của chúng được derive động
// từ tên tổ chức.
type MasterCollectionName struct {
	Organizations string // Tên collection cho metadata tổ chức
	AdminUsers    string // Tên collection cho thông tin đăng nhập admin
}

// Các biến toàn cục, khởi tạo tại cmd/server trước khi nhận request
// (contract: init-before-use, xem cmd/server/init.go)
var Validate *validator.Validate                  // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                 // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration    // Cấu hình của server
var MongoDB_ColNames = *new(MasterCollectionName) // Tên các master collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các master collection

// GetMasterDB trả về database master. Panic nếu gọi trước khi init
// (đây là lỗi lập trình, không phải lỗi runtime).
func GetMasterDB() *mongo.Database {
	if MongoDB_Session == nil || MongoDB_ServerConfig == nil {
		panic("global: MongoDB session not initialized, call cmd/server init first")
	}
	return MongoDB_Session.Database(MongoDB_ServerConfig.MongoDB_DBName_Master)
}

// GetCollection lấy master collection theo tên từ RegistryCollections.
// Nếu collection chưa được đăng ký thì mở từ master DB và cache vào registry.
func GetCollection(name string) *mongo.Collection {
	coll, err := RegistryCollections.GetOrCreate(name, func() (*mongo.Collection, error) {
		return GetMasterDB().Collection(name), nil
	})
	if err != nil {
		panic(fmt.Sprintf("global: cannot resolve collection %s: %v", name, err))
	}
	return coll
}
