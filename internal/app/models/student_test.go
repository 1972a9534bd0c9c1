package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudentChangesApply(t *testing.T) {
	avatar := "avatars/a.png"
	s := &Student{Name: "Ada", Level: 1, Attendance: 3, Avatar: &avatar}

	name := "Ada King"
	level := 4
	StudentChanges{Name: &name, Level: &level}.Apply(s)
	assert.Equal(t, "Ada King", s.Name)
	assert.Equal(t, 4, s.Level)
	assert.Equal(t, 3, s.Attendance)
	assert.True(t, s.HasAvatar())

	StudentChanges{ClearAvatar: true}.Apply(s)
	assert.Nil(t, s.Avatar)
	assert.False(t, s.HasAvatar())
}

func TestStudentChangesIsEmpty(t *testing.T) {
	assert.True(t, StudentChanges{}.IsEmpty())
	assert.False(t, StudentChanges{ClearAvatar: true}.IsEmpty())
	zero := 0
	assert.False(t, StudentChanges{Attendance: &zero}.IsEmpty())
}

func TestCallerTypeValid(t *testing.T) {
	assert.True(t, CallerStudent.Valid())
	assert.True(t, CallerAdmin.Valid())
	assert.False(t, CallerType("instructor").Valid())
}
