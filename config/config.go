package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng.
// Toàn bộ cấu hình được cung cấp từ bên ngoài qua file env hoặc biến môi trường,
// logic nghiệp vụ không tự sinh ra giá trị cấu hình nào.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`                   // Địa chỉ server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`              // URI kết nối MongoDB
	MongoDB_DBName_Master string `env:"MONGODB_DBNAME_MASTER" envDefault:"master_db"` // Tên database master (chứa organizations, admin_users và các partition của tenant)
	JwtSecret             string `env:"JWT_SECRET,required"`                          // Bí mật ký JWT
	JwtAlgorithm          string `env:"JWT_ALGORITHM" envDefault:"HS256"`             // Thuật toán ký JWT
	JwtExpirationHours    int    `env:"JWT_EXPIRATION_HOURS" envDefault:"24"`         // Thời hạn token (giờ)
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`                  // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`    // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`              // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`            // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`         // Bật/tắt rate limiting
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Tìm thư mục config/env bằng cách đi lên từ thư mục hiện tại
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc dữ liệu cấu hình từ file env (nếu có) và biến môi trường.
// Nếu không tìm thấy file env vẫn tiếp tục parse từ biến môi trường,
// hỗ trợ deployment qua container chỉ set env vars.
func NewConfig() *Configuration {
	envPath := getEnvPath()
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			// Không fatal: biến môi trường có thể đã được set từ bên ngoài
			fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
