package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/config"
	"github.com/Samanvis-dev/LunchBoxExpress/utils"

	"github.com/golang-jwt/jwt/v4"
)

const tokenIssuer = "lunchbox-express"

// InterfaceJWTService 定义JWT服务接口
type InterfaceJWTService interface {
	GenerateToken(user *models.User) (string, error)
	ParseToken(tokenString string) (*Identity, error)
	Login(username, password string) (*LoginResult, error)
}

// Identity 通过校验的令牌中携带的身份
type Identity struct {
	UserID    uint        `json:"user_id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	IssuedAt  time.Time   `json:"issued_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// LoginUser 登录成功后返回的账户摘要
type LoginUser struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

// LoginResult 表示登录结果
type LoginResult struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// JWTClaims 定义JWT令牌的声明结构
type JWTClaims struct {
	UserID   uint        `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTService 提供JWT相关服务
type JWTService struct {
	secretKey    string
	issuer       string
	ttl          time.Duration
	demoPassword string
	accounts     InterfaceAccountService
	now          func() time.Time
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(cfg *config.Config, accounts InterfaceAccountService) InterfaceJWTService {
	return &JWTService{
		secretKey:    cfg.JWTSecretKey,
		issuer:       tokenIssuer,
		ttl:          cfg.TokenTTL(),
		demoPassword: cfg.DemoUniversalPassword,
		accounts:     accounts,
		now:          time.Now,
	}
}

// WithClock 替换时钟，测试中用于模拟签发和过期时间
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	s.now = now
	return s
}

// GenerateToken 生成JWT令牌，有效期默认24小时
func (s *JWTService) GenerateToken(user *models.User) (string, error) {
	issuedAt := s.now()
	claims := &JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ParseToken 验证令牌签名和有效期，返回其中的身份
func (s *JWTService) ParseToken(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	// 时间相关的校验使用服务自己的时钟
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := &JWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	now := s.now()
	if !claims.VerifyExpiresAt(now, true) || !claims.VerifyNotBefore(now, false) {
		return nil, ErrTokenInvalid
	}
	if _, ok := models.ParseRole(string(claims.Role)); !ok || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}

	identity := &Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}
	identity.ExpiresAt = claims.ExpiresAt.Time
	return identity, nil
}

// Login 校验用户名和密码，成功后签发令牌并更新最后登录时间
func (s *JWTService) Login(username, password string) (*LoginResult, error) {
	user, err := s.accounts.FindByUsername(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.passwordMatches(user, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.UpdateLastLogin(user.ID); err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		User: LoginUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		},
	}, nil
}

// passwordMatches 演示模式下统一密码对所有账户有效，否则比较 bcrypt 哈希
func (s *JWTService) passwordMatches(user *models.User, password string) bool {
	if s.demoPassword != "" && password == s.demoPassword {
		return true
	}
	return utils.CheckPasswordHash(password, user.PasswordHash)
}
