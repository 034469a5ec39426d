package orgsvc

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/raghavkapoor31/Organization-Management-Service/internal/api/base/service"
	orgdto "github.com/raghavkapoor31/Organization-Management-Service/internal/api/org/dto"
	orgmodels "github.com/raghavkapoor31/Organization-Management-Service/internal/api/org/models"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/common"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/global"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/logger"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/utility"
)

// TokenService phát hành và xác thực JWT cho admin tổ chức.
type TokenService struct {
	adminService    basesvc.BaseServiceMongo[orgmodels.AdminUser]
	secret          []byte
	method          *jwt.SigningMethodHMAC
	expirationHours int
}

// NewTokenService tạo TokenService với các dependency tiêm từ ngoài.
// algorithm là tên thuật toán ký (HS256, HS384, HS512). Secret là shared key
// nên chỉ họ HMAC được chấp nhận, tên khác fallback về HS256.
func NewTokenService(adminService basesvc.BaseServiceMongo[orgmodels.AdminUser], secret, algorithm string, expirationHours int) *TokenService {
	method, _ := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	return &TokenService{
		adminService:    adminService,
		secret:          []byte(secret),
		method:          method,
		expirationHours: expirationHours,
	}
}

// NewTokenServiceDefault tạo TokenService trên master collection đã đăng ký
// trong registry và config toàn cục.
func NewTokenServiceDefault() *TokenService {
	return NewTokenService(
		basesvc.NewBaseServiceMongo[orgmodels.AdminUser](global.GetCollection(global.MongoDB_ColNames.AdminUsers)),
		global.MongoDB_ServerConfig.JwtSecret,
		global.MongoDB_ServerConfig.JwtAlgorithm,
		global.MongoDB_ServerConfig.JwtExpirationHours,
	)
}

// CreateAdminToken phát hành JWT HS256 cho admin.
// Subject là hex ObjectID của admin, claim organization_name scope token
// vào tổ chức của admin đó.
func (s *TokenService) CreateAdminToken(adminID, organizationName string) (string, error) {
	now := time.Now()
	claims := orgmodels.AdminClaims{
		OrganizationName: organizationName,
		TokenType:        orgmodels.TokenTypeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expirationHours) * time.Hour)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", common.NewError(
			common.ErrCodeAuthToken,
			"Không thể phát hành token",
			common.StatusInternalServerError,
			err,
		)
	}
	return signed, nil
}

// VerifyAdminToken xác thực JWT và trả về claims nếu hợp lệ.
// Token sai thuật toán, sai chữ ký, thiếu claim hoặc sai type đều bị từ chối.
func (s *TokenService) VerifyAdminToken(tokenString string) (*orgmodels.AdminClaims, error) {
	claims := &orgmodels.AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}

	if !token.Valid || claims.Subject == "" || claims.OrganizationName == "" || claims.TokenType != orgmodels.TokenTypeAdmin {
		return nil, common.ErrTokenInvalid
	}

	return claims, nil
}

// Authenticate xác thực email/mật khẩu và trả về token đăng nhập.
// Email không tồn tại và mật khẩu sai trả về cùng một lỗi để không
// tiết lộ email nào đã đăng ký.
func (s *TokenService) Authenticate(ctx context.Context, input *orgdto.AdminLoginInput) (*orgdto.AdminLoginResponse, error) {
	admin, err := s.adminService.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utility.VerifyPassword(input.Password, admin.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}

	adminID := admin.ID.Hex()
	token, err := s.CreateAdminToken(adminID, admin.OrganizationName)
	if err != nil {
		return nil, err
	}

	logger.GetAuditLogger().WithField("organization_name", admin.OrganizationName).Info("Admin đăng nhập thành công")

	return &orgdto.AdminLoginResponse{
		AccessToken:      token,
		TokenType:        "bearer",
		OrganizationName: admin.OrganizationName,
		AdminID:          adminID,
	}, nil
}
