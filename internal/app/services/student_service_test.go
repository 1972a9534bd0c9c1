package services

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/models/dto"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/auth"
)

func intPtr(i int) *int { return &i }
func strPtr(s string) *string { return &s }

func registerStudent(t *testing.T, svc StudentService, id string) {
	t.Helper()
	_, err := svc.Register(context.Background(), &dto.RegisterStudentRequest{
		StudentID: id,
		Name:      "Student " + id,
		Password:  "password123",
	})
	require.NoError(t, err)
}

func TestRegisterAppliesDefaults(t *testing.T) {
	env := newTestEnv(t)
	svc := env.studentService()

	resp, err := svc.Register(context.Background(), &dto.RegisterStudentRequest{
		StudentID: "s-1",
		Name:      "  <b>Ada</b> Lovelace ",
		Password:  "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "s-1", resp.StudentID)
	assert.Equal(t, "Ada Lovelace", resp.Name)
	assert.Equal(t, 1, resp.Level)
	assert.Equal(t, 0, resp.Attendance)
	assert.Nil(t, resp.Avatar)

	stored, err := env.repos.StudentRepository.GetByStudentID(context.Background(), "s-1")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "password123"))
}

func TestRegisterWithExplicitValuesAndAvatar(t *testing.T) {
	env := newTestEnv(t)
	svc := env.studentService()

	resp, err := svc.Register(context.Background(), &dto.RegisterStudentRequest{
		StudentID:  "s-2",
		Name:       "Grace",
		Password:   "password123",
		Level:      intPtr(0),
		Attendance: intPtr(7),
		Avatar:     avatarUpload(t, pngBytes),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Level)
	assert.Equal(t, 7, resp.Attendance)
	require.NotNil(t, resp.Avatar)
	assert.True(t, strings.HasPrefix(*resp.Avatar, "http://test/uploads/avatars/"))
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	svc := env.studentService()
	registerStudent(t, svc, "dup")

	_, err := svc.Register(context.Background(), &dto.RegisterStudentRequest{StudentID: "dup", Name: "Other", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrStudentIDAlreadyExists)
}

func TestRegisterRejectsBlankNameAndBadAvatar(t *testing.T) {
	env := newTestEnv(t)
	svc := env.studentService()

	_, err := svc.Register(context.Background(), &dto.RegisterStudentRequest{StudentID: "x", Name: "<i></i>", Password: "password123"})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, "name", custom.Field)

	_, err = svc.Register(context.Background(), &dto.RegisterStudentRequest{
		StudentID: "x", Name: "X", Password: "password123", Avatar: avatarUpload(t, []byte("not an image at all")),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAvatar)

	exists, err := env.repos.StudentRepository.StudentIDExists(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegisterRejectsInvalidStudentID(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.studentService().Register(context.Background(), &dto.RegisterStudentRequest{StudentID: "no spaces", Name: "X", Password: "password123"})
	require.ErrorIs(t, err, apperrors.ErrInvalidStudentID)
	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, "student_id", custom.Field)
}

func TestPasswordsOverBcryptLimitAreFieldErrors(t *testing.T) {
	env := newTestEnv(t)
	svc := env.studentService()
	ctx := context.Background()
	tooLong := strings.Repeat("ü", 40) // 80 bytes

	_, err := svc.Register(ctx, &dto.RegisterStudentRequest{StudentID: "long", Name: "X", Password: tooLong})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, "password", custom.Field)

	registerStudent(t, svc, "s-1")
	err = svc.ChangePassword(ctx, "s-1", &dto.ChangePasswordRequest{OldPassword: "password123", NewPassword: tooLong})
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, "new_password", custom.Field)

	err = svc.AdminSetPassword(ctx, &dto.SetStudentPasswordRequest{StudentID: "s-1", NewPassword: tooLong})
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, "new_password", custom.Field)

	_, err = svc.Login(ctx, &dto.StudentLoginRequest{StudentID: "s-1", Password: "password123"})
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := env.studentService()
	registerStudent(t, svc, "s-1")

	resp, err := svc.Login(context.Background(), &dto.StudentLoginRequest{StudentID: "s-1", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "s-1", resp.StudentID)
	assert.Equal(t, "", resp.Avatar)
	assert.Equal(t, 1, resp.Level)

	claims, err := env.jwt.ValidateAccessToken(resp.Access)
	require.NoError(t, err)
	assert.Equal(t, "s-1", claims.StudentID)
	assert.Equal(t, models.CallerStudent, claims.Type)

	_, err = svc.Login(context.Background(), &dto.StudentLoginRequest{StudentID: "s-1", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.StudentLoginRequest{StudentID: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestUpdateProfileReplacesAvatar(t *testing.T) {
	env := newTestEnv(t)
	svc := env.studentService()
	ctx := context.Background()
	registerStudent(t, svc, "s-1")

	first, err := svc.UpdateProfile(ctx, "s-1", &dto.UpdateProfileRequest{Avatar: avatarUpload(t, pngBytes)})
	require.NoError(t, err)
	require.NotNil(t, first.Avatar)

	stored, err := env.repos.StudentRepository.GetByStudentID(ctx, "s-1")
	require.NoError(t, err)
	firstPath, err := env.storage.GetFullPath(*stored.Avatar)
	require.NoError(t, err)
	_, err = os.Stat(firstPath)
	require.NoError(t, err)

	second, err := svc.UpdateProfile(ctx, "s-1", &dto.UpdateProfileRequest{Name: strPtr("New Name"), Avatar: avatarUpload(t, pngBytes)})
	require.NoError(t, err)
	assert.Equal(t, "New Name", second.Name)
	assert.NotEqual(t, *first.Avatar, *second.Avatar)

	_, err = os.Stat(firstPath)
	assert.True(t, os.IsNotExist(err), "replaced avatar should be removed")
}

func TestUpdateProfileOnlyTouchesPermittedFields(t *testing.T) {
	env := newTestEnv(t)
	svc := env.studentService()
	ctx := context.Background()
	registerStudent(t, svc, "s-1")

	_, err := svc.AdminUpdate(ctx, "s-1", &dto.AdminUpdateStudentRequest{Level: intPtr(5), Attendance: intPtr(9)})
	require.NoError(t, err)

	resp, err := svc.UpdateProfile(ctx, "s-1", &dto.UpdateProfileRequest{Name: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Name)
	assert.Equal(t, 5, resp.Level)
	assert.Equal(t, 9, resp.Attendance)
}

func TestDeleteAvatar(t *testing.T) {
	env := newTestEnv(t)
	svc := env.studentService()
	ctx := context.Background()
	registerStudent(t, svc, "s-1")

	assert.ErrorIs(t, svc.DeleteAvatar(ctx, "s-1"), apperrors.ErrAvatarNotFound)

	_, err := svc.UpdateProfile(ctx, "s-1", &dto.UpdateProfileRequest{Avatar: avatarUpload(t, pngBytes)})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteAvatar(ctx, "s-1"))

	profile, err := svc.GetProfile(ctx, "s-1")
	require.NoError(t, err)
	assert.Nil(t, profile.Avatar)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	svc := env.studentService()
	ctx := context.Background()
	registerStudent(t, svc, "s-1")

	err := svc.ChangePassword(ctx, "s-1", &dto.ChangePasswordRequest{OldPassword: "bad-guess", NewPassword: "newpassword1"})
	assert.ErrorIs(t, err, apperrors.ErrIncorrectOldPassword)

	require.NoError(t, svc.ChangePassword(ctx, "s-1", &dto.ChangePasswordRequest{OldPassword: "password123", NewPassword: "newpassword1"}))

	_, err = svc.Login(ctx, &dto.StudentLoginRequest{StudentID: "s-1", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = svc.Login(ctx, &dto.StudentLoginRequest{StudentID: "s-1", Password: "newpassword1"})
	assert.NoError(t, err)
}

func TestAdminListAndGet(t *testing.T) {
	env := newTestEnv(t)
	svc := env.studentService()
	ctx := context.Background()
	registerStudent(t, svc, "b")
	registerStudent(t, svc, "a")

	list, err := svc.AdminList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].StudentID)

	_, err = svc.AdminGet(ctx, "zzz")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestAdminUpdateMissingStudent(t *testing.T) {
	env := newTestEnv(t)
	svc := env.studentService()

	_, err := svc.AdminUpdate(context.Background(), "ghost", &dto.AdminUpdateStudentRequest{Level: intPtr(2)})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestAdminSetPassword(t *testing.T) {
	env := newTestEnv(t)
	svc := env.studentService()
	ctx := context.Background()
	registerStudent(t, svc, "s-1")

	err := svc.AdminSetPassword(ctx, &dto.SetStudentPasswordRequest{StudentID: "ghost", NewPassword: "newpassword1"})
	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, "student_id", custom.Field)

	require.NoError(t, svc.AdminSetPassword(ctx, &dto.SetStudentPasswordRequest{StudentID: "s-1", NewPassword: "newpassword1"}))
	_, err = svc.Login(ctx, &dto.StudentLoginRequest{StudentID: "s-1", Password: "newpassword1"})
	assert.NoError(t, err)
}

func TestAdminDeleteRemovesAvatar(t *testing.T) {
	env := newTestEnv(t)
	svc := env.studentService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterStudentRequest{
		StudentID: "s-1", Name: "Ada", Password: "password123", Avatar: avatarUpload(t, pngBytes),
	})
	require.NoError(t, err)
	stored, err := env.repos.StudentRepository.GetByStudentID(ctx, "s-1")
	require.NoError(t, err)
	full, err := env.storage.GetFullPath(*stored.Avatar)
	require.NoError(t, err)

	require.NoError(t, svc.AdminDelete(ctx, "s-1"))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, svc.AdminDelete(ctx, "s-1"), apperrors.ErrStudentNotFound)
}
