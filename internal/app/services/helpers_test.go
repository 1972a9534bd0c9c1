package services

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentdesk/internal/app/repositories"
	"github.com/yigit/studentdesk/internal/db"
	"github.com/yigit/studentdesk/internal/pkg/auth"
	"github.com/yigit/studentdesk/internal/pkg/filestorage"
	"golang.org/x/crypto/bcrypt"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

type testEnv struct {
	repos   *repositories.Repositories
	jwt     *auth.JWTService
	storage *filestorage.LocalStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	auth.BcryptCost = bcrypt.MinCost

	sqlite, err := db.NewSQLiteDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(sqlite.Close)

	storage, err := filestorage.NewLocalStorage(t.TempDir(), "http://test/uploads", 1<<20)
	require.NoError(t, err)

	return &testEnv{
		repos: repositories.NewGormRepositories(sqlite.Gorm),
		jwt: auth.NewJWTService(auth.JWTConfig{
			SecretKey:             "test-secret",
			AccessTokenExp:        time.Hour,
			StudentAccessTokenExp: 30 * 24 * time.Hour,
			RefreshTokenExp:       24 * time.Hour,
			TokenIssuer:           "test",
		}),
		storage: storage,
	}
}

func (e *testEnv) studentService() StudentService {
	return NewStudentService(e.repos.StudentRepository, e.jwt, e.storage, zerolog.Nop())
}

func (e *testEnv) adminService() AdminAuthService {
	return NewAdminAuthService(e.repos.AdminRepository, e.jwt, zerolog.Nop())
}

func avatarUpload(t *testing.T, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("avatar", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["avatar"][0]
}
