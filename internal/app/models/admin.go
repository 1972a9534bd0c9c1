package models

import "time"

// Admin is an operator account allowed to manage students
type Admin struct {
	ID          int64      `json:"id" db:"id" gorm:"primaryKey"`
	Username    string     `json:"username" db:"username" gorm:"size:150;uniqueIndex;not null"`
	Password    string     `json:"-" db:"password" gorm:"size:255;not null"`
	IsActive    bool       `json:"is_active" db:"is_active" gorm:"not null"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
}

// TableName pins the gorm table name to the one used by the SQL migrations
func (Admin) TableName() string {
	return "admins"
}
