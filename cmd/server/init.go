package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/raghavkapoor31/Organization-Management-Service/config"
	orgmodels "github.com/raghavkapoor31/Organization-Management-Service/internal/api/org/models"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/database"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initRegistry()         // Đăng ký các master collection vào registry
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Organizations = "organizations"
	global.MongoDB_ColNames.AdminUsers = "admin_users"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các master collection nếu chưa có
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName_Master
	if err := database.EnsureMasterCollections(global.MongoDB_Session, dbName, []string{
		global.MongoDB_ColNames.Organizations,
		global.MongoDB_ColNames.AdminUsers,
	}); err != nil {
		logrus.Fatalf("Failed to ensure master collections: %v", err)
	}

	// Khởi tạo các index cho các master collection
	db := global.MongoDB_Session.Database(dbName)
	if err := database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Organizations), orgmodels.Organization{}); err != nil {
		logrus.Fatalf("Failed to create indexes for organizations: %v", err)
	}
	if err := database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.AdminUsers), orgmodels.AdminUser{}); err != nil {
		logrus.Fatalf("Failed to create indexes for admin_users: %v", err)
	}
	logrus.Info("Ensured master collections and indexes")
}

// Hàm đăng ký các master collection vào registry toàn cục
func initRegistry() {
	db := global.GetMasterDB()
	for _, name := range []string{
		global.MongoDB_ColNames.Organizations,
		global.MongoDB_ColNames.AdminUsers,
	} {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			logrus.Fatalf("Failed to register collection %s: %v", name, err)
		}
	}
	logrus.Info("Initialized collection registry")
}
