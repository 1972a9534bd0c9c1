package dto

import (
	"mime/multipart"

	"github.com/yigit/studentdesk/internal/app/models"
)

// RegisterStudentRequest represents student registration data.
// Accepted as JSON or multipart form, the avatar only in the latter.
type RegisterStudentRequest struct {
	StudentID  string                `json:"student_id" form:"student_id" binding:"required,studentid" example:"s-2024-001"`
	Name       string                `json:"name" form:"name" binding:"required,max=100" example:"Ada Lovelace"`
	Password   string                `json:"password" form:"password" binding:"required,min=8,passwordbytes" example:"s3cretpass"`
	Level      *int                  `json:"level" form:"level" binding:"omitempty,gte=0,lte=2147483647" example:"1"`
	Attendance *int                  `json:"attendance" form:"attendance" binding:"omitempty,gte=0,lte=2147483647" example:"0"`
	Avatar     *multipart.FileHeader `json:"-" form:"avatar" swaggerignore:"true"`
}

// StudentLoginRequest represents student login credentials
type StudentLoginRequest struct {
	StudentID string `json:"student_id" binding:"required" example:"s-2024-001"`
	Password  string `json:"password" binding:"required" example:"s3cretpass"`
}

// StudentLoginResponse is returned on a successful student login
type StudentLoginResponse struct {
	Refresh    string `json:"refresh"`
	Access     string `json:"access"`
	StudentID  string `json:"student_id" example:"s-2024-001"`
	Name       string `json:"name" example:"Ada Lovelace"`
	Avatar     string `json:"avatar" example:""`
	Level      int    `json:"level" example:"1"`
	Attendance int    `json:"attendance" example:"0"`
}

// UpdateProfileRequest represents the fields a student may change on their own record
type UpdateProfileRequest struct {
	Name   *string               `json:"name" form:"name" binding:"omitempty,max=100" example:"Ada King"`
	Avatar *multipart.FileHeader `json:"-" form:"avatar" swaggerignore:"true"`
}

// AdminUpdateStudentRequest represents the fields an admin may change on a student
type AdminUpdateStudentRequest struct {
	Name       *string               `json:"name" form:"name" binding:"omitempty,max=100" example:"Ada King"`
	Level      *int                  `json:"level" form:"level" binding:"omitempty,gte=0,lte=2147483647" example:"2"`
	Attendance *int                  `json:"attendance" form:"attendance" binding:"omitempty,gte=0,lte=2147483647" example:"12"`
	Avatar     *multipart.FileHeader `json:"-" form:"avatar" swaggerignore:"true"`
}

// ChangePasswordRequest represents a student's own password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required" example:"s3cretpass"`
	NewPassword string `json:"new_password" binding:"required,min=8,passwordbytes" example:"n3wpassword"`
}

// SetStudentPasswordRequest represents an admin setting a student's password
type SetStudentPasswordRequest struct {
	StudentID   string `json:"student_id" binding:"required" example:"s-2024-001"`
	NewPassword string `json:"new_password" binding:"required,min=8,passwordbytes" example:"n3wpassword"`
}

// StudentResponse is the public view of a student record
type StudentResponse struct {
	StudentID  string  `json:"student_id" example:"s-2024-001"`
	Name       string  `json:"name" example:"Ada Lovelace"`
	Avatar     *string `json:"avatar" example:"http://localhost:8080/uploads/avatars/1b9d6bcd.png"`
	Level      int     `json:"level" example:"1"`
	Attendance int     `json:"attendance" example:"0"`
}

// NewStudentResponse maps a student to its public view. urlFor turns a stored avatar path into a URL.
func NewStudentResponse(student *models.Student, urlFor func(string) string) StudentResponse {
	resp := StudentResponse{
		StudentID:  student.StudentID,
		Name:       student.Name,
		Level:      student.Level,
		Attendance: student.Attendance,
	}
	if student.HasAvatar() {
		url := urlFor(*student.Avatar)
		resp.Avatar = &url
	}
	return resp
}

// NewStudentListResponse maps a slice of students
func NewStudentListResponse(students []*models.Student, urlFor func(string) string) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentResponse(s, urlFor))
	}
	return out
}
