package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

// TokenType distinguishes access tokens from refresh tokens ("token_type" claim)
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey string
	// AccessTokenExp is the access lifetime for admin callers
	AccessTokenExp time.Duration
	// StudentAccessTokenExp is the access lifetime for student callers
	StudentAccessTokenExp time.Duration
	RefreshTokenExp       time.Duration
	TokenIssuer           string
}

// JWTService issues and verifies signed tokens
type JWTService struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
		now:    time.Now,
	}
}

// Claims defines JWT token content
type Claims struct {
	TokenType TokenType         `json:"token_type"`
	Type      models.CallerType `json:"type"`
	StudentID string            `json:"student_id,omitempty"`
	UserID    int64             `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair is a freshly issued refresh/access pair
type TokenPair struct {
	Access           string
	Refresh          string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// GenerateStudentTokenPair issues tokens carrying the student_id claim and type=student.
// The access token uses the student access lifetime instead of the admin one.
func (s *JWTService) GenerateStudentTokenPair(student *models.Student) (*TokenPair, error) {
	base := Claims{
		Type:      models.CallerStudent,
		StudentID: student.StudentID,
	}
	return s.generatePair(base, student.StudentID)
}

// GenerateAdminTokenPair issues tokens carrying the user_id claim and type=admin
func (s *JWTService) GenerateAdminTokenPair(admin *models.Admin) (*TokenPair, error) {
	base := Claims{
		Type:   models.CallerAdmin,
		UserID: admin.ID,
	}
	return s.generatePair(base, strconv.FormatInt(admin.ID, 10))
}

func (s *JWTService) generatePair(base Claims, subject string) (*TokenPair, error) {
	refresh, refreshExp, err := s.sign(base, RefreshToken, subject, s.config.RefreshTokenExp)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	access, accessExp, err := s.sign(base, AccessToken, subject, s.accessLifetime(base.Type))
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	return &TokenPair{
		Access:           access,
		Refresh:          refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *JWTService) accessLifetime(caller models.CallerType) time.Duration {
	if caller == models.CallerStudent && s.config.StudentAccessTokenExp > 0 {
		return s.config.StudentAccessTokenExp
	}
	return s.config.AccessTokenExp
}

func (s *JWTService) sign(base Claims, tokenType TokenType, subject string, lifetime time.Duration) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(lifetime)

	claims := base
	claims.TokenType = tokenType
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    s.config.TokenIssuer,
		Subject:   subject,
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Refresh exchanges a refresh token for a new access token with the same caller claims
func (s *JWTService) Refresh(refreshToken string) (string, time.Time, error) {
	claims, err := s.parse(refreshToken, RefreshToken)
	if err != nil {
		return "", time.Time{}, err
	}

	base := Claims{
		Type:      claims.Type,
		StudentID: claims.StudentID,
		UserID:    claims.UserID,
	}
	access, expiresAt, err := s.sign(base, AccessToken, claims.Subject, s.accessLifetime(claims.Type))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return access, expiresAt, nil
}

// ValidateAccessToken verifies signature, expiry and issuer and returns the claims of an access token
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.parse(tokenString, AccessToken)
}

func (s *JWTService) parse(tokenString string, expected TokenType) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.config.TokenIssuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.TokenIssuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.SecretKey), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrTokenInvalid
	}

	if claims.TokenType != expected || !claims.Type.Valid() {
		return nil, apperrors.ErrTokenInvalid
	}
	if claims.Type == models.CallerStudent && claims.StudentID == "" {
		return nil, apperrors.ErrTokenInvalid
	}
	if claims.Type == models.CallerAdmin && claims.UserID <= 0 {
		return nil, apperrors.ErrTokenInvalid
	}

	return claims, nil
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", apperrors.ErrTokenMissing
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", apperrors.ErrTokenInvalid
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperrors.ErrTokenInvalid
	}
	return token, nil
}
