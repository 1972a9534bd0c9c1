package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appauth "github.com/yigit/studentdesk/internal/app/auth"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/repositories"
	"github.com/yigit/studentdesk/internal/db"
	"github.com/yigit/studentdesk/internal/pkg/auth"
)

type authFixture struct {
	router       *gin.Engine
	jwt          *auth.JWTService
	studentToken string
	adminToken   string
	repos        *repositories.Repositories
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	sqlite, err := db.NewSQLiteDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(sqlite.Close)
	repos := repositories.NewGormRepositories(sqlite.Gorm)

	ctx := context.Background()
	student := &models.Student{StudentID: "s-1", Name: "Ada", Password: "x", Level: 1}
	require.NoError(t, repos.StudentRepository.Create(ctx, student))
	admin := &models.Admin{Username: "root", Password: "x", IsActive: true}
	require.NoError(t, repos.AdminRepository.Create(ctx, admin))

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour, RefreshTokenExp: time.Hour})
	studentPair, err := jwtService.GenerateStudentTokenPair(student)
	require.NoError(t, err)
	adminPair, err := jwtService.GenerateAdminTokenPair(admin)
	require.NoError(t, err)

	m := NewAuthMiddleware(jwtService, appauth.NewAuthorizationService(repos.StudentRepository, repos.AdminRepository))
	router := gin.New()
	router.GET("/student", m.StudentAuth(), func(c *gin.Context) {
		id, _ := StudentIDFrom(c)
		c.String(http.StatusOK, id)
	})
	router.GET("/admin", m.AdminAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	return &authFixture{
		router:       router,
		jwt:          jwtService,
		studentToken: studentPair.Access,
		adminToken:   adminPair.Access,
		repos:        repos,
	}
}

func (f *authFixture) do(path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	f.router.ServeHTTP(w, req)
	return w
}

func TestStudentAuth(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do("/student", f.studentToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s-1", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, f.do("/student", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do("/student", "garbage").Code)
	assert.Equal(t, http.StatusForbidden, f.do("/student", f.adminToken).Code)
}

func TestStudentAuthDeletedStudent(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.repos.StudentRepository.Delete(context.Background(), "s-1")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, f.do("/student", f.studentToken).Code)
}

func TestAdminAuth(t *testing.T) {
	f := newAuthFixture(t)

	assert.Equal(t, http.StatusOK, f.do("/admin", f.adminToken).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do("/admin", "").Code)
	assert.Equal(t, http.StatusForbidden, f.do("/admin", f.studentToken).Code)
}

func TestAdminAuthRejectsRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	admin, err := f.repos.AdminRepository.GetByUsername(context.Background(), "root")
	require.NoError(t, err)
	pair, err := f.jwt.GenerateAdminTokenPair(admin)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, f.do("/admin", pair.Refresh).Code)
}
