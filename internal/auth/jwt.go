package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity 会话身份类别
type Identity string

const (
	IdentityInvestor Identity = "investor"
	IdentityTeam     Identity = "team"
	IdentityAdmin    Identity = "admin"
)

// Claims JWT 负载
type Claims struct {
	SubjectId int64    `json:"subject_id"`
	Identity  Identity `json:"identity"`
	Name      string   `json:"name"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("无效的 Token")

// TokenManager 签发和校验会话 Token
type TokenManager struct {
	secret []byte
	expire time.Duration
}

// NewTokenManager 创建 TokenManager，expireHrs 为 Token 有效小时数
func NewTokenManager(secret string, expireHrs int) *TokenManager {
	if expireHrs <= 0 {
		expireHrs = 24
	}
	return &TokenManager{
		secret: []byte(secret),
		expire: time.Duration(expireHrs) * time.Hour,
	}
}

// Generate 签发 Token
func (m *TokenManager) Generate(subjectId int64, identity Identity, name string) (string, error) {
	claims := Claims{
		SubjectId: subjectId,
		Identity:  identity,
		Name:      name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse 解析并校验 Token
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
