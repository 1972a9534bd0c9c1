package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

func newTestJWTService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:             "test-secret",
		AccessTokenExp:        time.Hour,
		StudentAccessTokenExp: 30 * 24 * time.Hour,
		RefreshTokenExp:       7 * 24 * time.Hour,
		TokenIssuer:           "studentdesk.test",
	})
}

func TestGenerateStudentTokenPair(t *testing.T) {
	svc := newTestJWTService()
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	pair, err := svc.GenerateStudentTokenPair(&models.Student{StudentID: "s-001"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.Equal(t, fixed.Add(30*24*time.Hour), pair.AccessExpiresAt)
	assert.Equal(t, fixed.Add(7*24*time.Hour), pair.RefreshExpiresAt)

	claims, err := svc.ValidateAccessToken(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, models.CallerStudent, claims.Type)
	assert.Equal(t, "s-001", claims.StudentID)
	assert.Equal(t, "s-001", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, fixed.Add(30*24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestGenerateAdminTokenPair(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateAdminTokenPair(&models.Admin{ID: 7, Username: "root"})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, models.CallerAdmin, claims.Type)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Empty(t, claims.StudentID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestValidateAccessTokenRejectsRefreshToken(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateStudentTokenPair(&models.Student{StudentID: "s-001"})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.Refresh)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateAccessTokenExpired(t *testing.T) {
	svc := newTestJWTService()
	svc.now = func() time.Time { return time.Now().Add(-31 * 24 * time.Hour) }

	pair, err := svc.GenerateStudentTokenPair(&models.Student{StudentID: "s-001"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateAccessToken(pair.Access)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateAccessTokenWrongSecret(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateStudentTokenPair(&models.Student{StudentID: "s-001"})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "studentdesk.test"})
	_, err = other.ValidateAccessToken(pair.Access)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateAccessTokenRejectsOtherSigningMethod(t *testing.T) {
	svc := newTestJWTService()
	claims := &Claims{
		TokenType: AccessToken,
		Type:      models.CallerAdmin,
		UserID:    1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "studentdesk.test",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateAccessTokenRejectsUnknownCallerType(t *testing.T) {
	svc := newTestJWTService()
	token, _, err := svc.sign(Claims{Type: "instructor"}, AccessToken, "x", time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestRefresh(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateStudentTokenPair(&models.Student{StudentID: "s-042"})
	require.NoError(t, err)

	access, expiresAt, err := svc.Refresh(pair.Refresh)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "s-042", claims.StudentID)
	assert.Equal(t, models.CallerStudent, claims.Type)

	_, _, err = svc.Refresh(pair.Access)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid", header: "Bearer abc.def", want: "abc.def"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "missing", header: "", wantErr: apperrors.ErrTokenMissing},
		{name: "wrong scheme", header: "Basic abc", wantErr: apperrors.ErrTokenInvalid},
		{name: "no token", header: "Bearer ", wantErr: apperrors.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
