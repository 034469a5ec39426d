package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/raghavkapoor31/Organization-Management-Service/internal/database"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/global"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/logger"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự động đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server
func main_thread() {
	app := InitFiberApp()

	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()

	// Bắt SIGINT/SIGTERM để shutdown gọn: đóng server rồi ngắt kết nối MongoDB
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit
		log.Infof("Received signal %s, shutting down...", sig)

		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error during server shutdown")
		}
		if err := database.CloseInstance(global.MongoDB_Session); err != nil {
			log.WithError(err).Error("Error disconnecting MongoDB")
		}
	}()

	log.Infof("Starting Fiber server on %s", cfg.Address)
	if err := app.Listen(cfg.Address); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Chạy Fiber server trên main thread
	main_thread()
}
