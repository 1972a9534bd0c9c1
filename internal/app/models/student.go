package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID         int64     `json:"id" db:"id" gorm:"primaryKey"`
	StudentID  string    `json:"student_id" db:"student_id" gorm:"column:student_id;size:32;uniqueIndex;not null"`
	Name       string    `json:"name" db:"name" gorm:"size:100;not null"`
	Password   string    `json:"-" db:"password" gorm:"size:255;not null"`
	Avatar     *string   `json:"avatar,omitempty" db:"avatar" gorm:"size:255"` // relative path inside avatar storage
	Level      int       `json:"level" db:"level" gorm:"not null"`
	Attendance int       `json:"attendance" db:"attendance" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// TableName pins the gorm table name to the one used by the SQL migrations
func (Student) TableName() string {
	return "students"
}

// HasAvatar reports whether an avatar file is attached
func (s *Student) HasAvatar() bool {
	return s.Avatar != nil && *s.Avatar != ""
}

// StudentChanges is a partial update. Nil fields are left untouched.
type StudentChanges struct {
	Name       *string
	Avatar     *string
	Level      *int
	Attendance *int
	// ClearAvatar sets the avatar column to NULL. It wins over Avatar.
	ClearAvatar bool
}

// IsEmpty reports whether the change set would not modify anything
func (c StudentChanges) IsEmpty() bool {
	return c.Name == nil && c.Avatar == nil && c.Level == nil && c.Attendance == nil && !c.ClearAvatar
}

// Apply copies the set fields onto the student
func (c StudentChanges) Apply(s *Student) {
	if c.Name != nil {
		s.Name = *c.Name
	}
	if c.Avatar != nil {
		s.Avatar = c.Avatar
	}
	if c.ClearAvatar {
		s.Avatar = nil
	}
	if c.Level != nil {
		s.Level = *c.Level
	}
	if c.Attendance != nil {
		s.Attendance = *c.Attendance
	}
}
