package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/heartlink/internal/config"
	"github.com/heartlink/internal/logger"
	"github.com/heartlink/internal/models"
	"github.com/heartlink/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService 令牌服务：签发短期访问 JWT 与长期刷新令牌
type TokenService struct {
	cfg         *config.Config
	refreshRepo repository.RefreshTokenRepository
}

// NewTokenService 创建令牌服务实例
func NewTokenService(cfg *config.Config, refreshRepo repository.RefreshTokenRepository) *TokenService {
	return &TokenService{
		cfg:         cfg,
		refreshRepo: refreshRepo,
	}
}

// AccessClaims 访问令牌声明
type AccessClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenPair 一次签发的访问令牌与刷新令牌
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// GenerateTokenPair 为用户签发访问令牌与刷新令牌。
// 刷新令牌仅以 SHA-256 哈希落库，明文只出现在本次响应里。
func (s *TokenService) GenerateTokenPair(user *models.User) (*TokenPair, error) {
	accessToken, expiresAt, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	rawRefresh, err := randomHexToken(64)
	if err != nil {
		return nil, err
	}
	record := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashRefreshToken(rawRefresh),
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.RefreshToken.ExpireDays) * 24 * time.Hour),
	}
	if err := s.refreshRepo.Create(record); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *TokenService) generateAccessToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.cfg.JWT.ExpireMinutes) * time.Minute)

	claims := AccessClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// VerifyAccessToken 解析并校验访问令牌。
// 过期、签名错误、算法不符等原因对外统一折叠为一种失败，
// 具体原因只进日志，避免给探测者提供区分信息。
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		logger.Debugw("access_token_rejected", "error", err)
		return nil, ErrAccessTokenInvalid
	}
	if claims, ok := token.Claims.(*AccessClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrAccessTokenInvalid
}

// RotateRefreshToken 用旧刷新令牌换取新令牌对。
// 按用户加哈希查找，令牌归属不符、未知或过期统一返回失败；
// 旧令牌立即吊销（轮换一次性消费）。
func (s *TokenService) RotateRefreshToken(userID uint, rawRefresh string, loadUser func(uint) (*models.User, error)) (*TokenPair, *models.User, error) {
	record, err := s.refreshRepo.FindActiveByUserAndHash(userID, hashRefreshToken(rawRefresh), time.Now())
	if err != nil {
		return nil, nil, err
	}
	if record == nil {
		return nil, nil, ErrRefreshTokenInvalid
	}

	user, err := loadUser(record.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || user.IsSuspended {
		return nil, nil, ErrRefreshTokenInvalid
	}

	if err := s.refreshRepo.Revoke(record.ID); err != nil {
		return nil, nil, err
	}

	pair, err := s.GenerateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// RevokeRefreshToken 吊销该用户的指定刷新令牌（登出单设备）
func (s *TokenService) RevokeRefreshToken(userID uint, rawRefresh string) error {
	return s.refreshRepo.RevokeByHash(userID, hashRefreshToken(rawRefresh))
}

// RevokeAllUserTokens 吊销该用户的全部刷新令牌（全设备下线）
func (s *TokenService) RevokeAllUserTokens(userID uint) error {
	return s.refreshRepo.RevokeAllForUser(userID)
}

// hashRefreshToken 刷新令牌落库前的哈希
func hashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// randomHexToken 生成 n 字节熵的十六进制令牌
func randomHexToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
