package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tattoo-studio-api/internal/services"
	"tattoo-studio-api/pkg/lambda"
)

// Identity modes
const (
	// AuthModeHeader trusts the X-User-Id header as sent by the client
	AuthModeHeader = "header"
	// AuthModeToken requires a signed JWT carrying the user id
	AuthModeToken = "token"
)

// Identity headers
const (
	HeaderUserID        = "X-User-Id"
	HeaderAuthToken     = "X-Auth-Token"
	HeaderAuthorization = "Authorization"
)

var (
	ErrMissingIdentity = errors.New("missing caller identity")
	ErrInvalidIdentity = errors.New("invalid caller identity")
)

// Claims represents JWT claims
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	Mode          string
	JWTSecret     string
	TokenDuration time.Duration
	Issuer        string
}

// AuthService resolves the caller of an invocation
type AuthService struct {
	config *AuthConfig
}

// NewAuthService creates a new authentication service
func NewAuthService(config *AuthConfig) *AuthService {
	if config.Mode == "" {
		config.Mode = AuthModeHeader
	}
	if config.TokenDuration == 0 {
		config.TokenDuration = 24 * time.Hour
	}
	if config.Issuer == "" {
		config.Issuer = "tattoo-studio-api"
	}
	return &AuthService{config: config}
}

// Mode returns the configured identity mode
func (a *AuthService) Mode() string {
	return a.config.Mode
}

// TokenDuration returns the lifetime of issued tokens
func (a *AuthService) TokenDuration() time.Duration {
	return a.config.TokenDuration
}

// Identify returns the caller id of the request. Any failure is reported as
// an authentication error carrying the client-facing message.
func (a *AuthService) Identify(req *lambda.Request) (int64, error) {
	var (
		userID int64
		err    error
	)

	switch a.config.Mode {
	case AuthModeToken:
		userID, err = a.identifyToken(req)
	default:
		userID, err = identifyHeader(req)
	}
	if err != nil {
		return 0, services.NewAuthenticationError("identify", services.MsgAuthRequired, err)
	}

	req.CallerID = userID
	return userID, nil
}

func identifyHeader(req *lambda.Request) (int64, error) {
	raw := strings.TrimSpace(req.Header(HeaderUserID))
	if raw == "" {
		return 0, ErrMissingIdentity
	}
	return parseUserID(raw)
}

func (a *AuthService) identifyToken(req *lambda.Request) (int64, error) {
	tokenString := bearerToken(req.Header(HeaderAuthorization))
	if tokenString == "" {
		tokenString = strings.TrimSpace(req.Header(HeaderAuthToken))
	}
	if tokenString == "" {
		return 0, ErrMissingIdentity
	}

	claims, err := a.ValidateToken(tokenString)
	if err != nil {
		return 0, err
	}
	if claims.UserID <= 0 {
		return 0, ErrInvalidIdentity
	}
	return claims.UserID, nil
}

// GenerateToken generates a JWT token for a user
func (a *AuthService) GenerateToken(userID int64) (string, error) {
	if a.config.JWTSecret == "" {
		return "", fmt.Errorf("jwt secret is not configured")
	}

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.config.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    a.config.Issuer,
			Subject:   strconv.FormatInt(userID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(a.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func (a *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(a.config.JWTSecret), nil
	}, jwt.WithIssuer(a.config.Issuer))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIdentity, raw)
	}
	return id, nil
}
