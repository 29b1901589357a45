package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserRole enum
type UserRole string

const (
	RoleSuperAdmin     UserRole = "Super Admin"
	RoleDepartmentHead UserRole = "Department Head"
	RoleStaff          UserRole = "Staff"
	RoleCitizen        UserRole = "Citizen"
)

// ValidRole reports whether raw is one of the known roles.
func ValidRole(raw string) bool {
	switch UserRole(raw) {
	case RoleSuperAdmin, RoleDepartmentHead, RoleStaff, RoleCitizen:
		return true
	}
	return false
}

type User struct {
	ID         string    `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Email      string    `bson:"email" json:"email"`
	Password   string    `bson:"password,omitempty" json:"-"`
	Role       UserRole  `bson:"role" json:"role"`
	Department string    `bson:"department,omitempty" json:"department,omitempty"`
	AvatarURL  string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}
