// Package jwt 处理 JWT 认证
package jwt

import (
	"errors"
	"time"

	jwtpkg "github.com/golang-jwt/jwt/v4"

	"seth/pkg/app"
	"seth/pkg/config"
	"seth/pkg/logger"
)

var (
	// ErrTokenExpired token 已过期
	ErrTokenExpired = errors.New("令牌已过期")
	// ErrTokenMalformed 请求令牌格式有误
	ErrTokenMalformed = errors.New("请求令牌格式有误")
	// ErrTokenInvalid 请求令牌无效
	ErrTokenInvalid = errors.New("请求令牌无效")
)

// JWT 对象
type JWT struct {
	// 密钥，用以加密 JWT
	SignKey []byte
	// 刷新 Token 的最大过期时间
	MaxRefresh time.Duration
}

// CustomClaims 自定义载荷
type CustomClaims struct {
	UserID uint64 `json:"user_id"`
	jwtpkg.RegisteredClaims
}

// NewJWT 创建一个 jwt 对象
func NewJWT() *JWT {
	return &JWT{
		SignKey:    []byte(config.GetString("app.key")),
		MaxRefresh: time.Duration(config.GetInt64("jwt.max_refresh_time")) * time.Minute,
	}
}

// IssueToken 生成 Token，登录成功时调用
func (j *JWT) IssueToken(userID uint64) string {
	// 1. 构造用户 claims 信息（负荷）
	expireAtTime := j.expireAtTime()
	claims := CustomClaims{
		userID,
		jwtpkg.RegisteredClaims{
			NotBefore: jwtpkg.NewNumericDate(app.TimenowInTimezone()),
			IssuedAt:  jwtpkg.NewNumericDate(app.TimenowInTimezone()),
			ExpiresAt: jwtpkg.NewNumericDate(expireAtTime),
			Issuer:    config.GetString("app.name"),
		},
	}

	// 2. 根据 claims 生成 token 对象
	token, err := j.createToken(claims)
	if err != nil {
		logger.LogIf(err)
		return ""
	}

	return token
}

// ParserToken 解析 Token，中间件中调用
func (j *JWT) ParserToken(tokenString string) (*CustomClaims, error) {
	// 1. 调用 jwt 库解析用户传参的 Token
	token, err := j.parseTokenString(tokenString)

	// 2. 解析出错
	if err != nil {
		validationErr, ok := err.(*jwtpkg.ValidationError)
		if ok {
			if validationErr.Errors == jwtpkg.ValidationErrorMalformed {
				return nil, ErrTokenMalformed
			}
			if validationErr.Errors == jwtpkg.ValidationErrorExpired {
				return nil, ErrTokenExpired
			}
		}
		return nil, ErrTokenInvalid
	}

	// 3. 将 token 中的 claims 信息解析出来并断言成 CustomClaims 对象
	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}

// createToken 创建 Token，内部使用，外部请调用 IssueToken
func (j *JWT) createToken(claims CustomClaims) (string, error) {
	token := jwtpkg.NewWithClaims(jwtpkg.SigningMethodHS256, claims)
	return token.SignedString(j.SignKey)
}

// parseTokenString 使用 jwtpkg.ParseWithClaims 解析 Token
func (j *JWT) parseTokenString(tokenString string) (*jwtpkg.Token, error) {
	return jwtpkg.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwtpkg.Token) (interface{}, error) {
		return j.SignKey, nil
	})
}

// expireAtTime 过期时间
func (j *JWT) expireAtTime() time.Time {
	timenow := app.TimenowInTimezone()

	var expireTime int64
	if config.GetBool("app.debug") {
		expireTime = config.GetInt64("jwt.debug_expire_time")
	} else {
		expireTime = config.GetInt64("jwt.expire_time")
	}

	return timenow.Add(time.Duration(expireTime) * time.Minute)
}
