package model

import "github.com/SeakMengs/certgen/internal/constant"

type User struct {
	BaseModel
	Username  string            `gorm:"type:varchar(64);not null;uniqueIndex:idx_users_username_college" json:"username"`
	Password  string            `gorm:"type:text;not null" json:"-"`
	FullName  string            `gorm:"type:varchar(255)" json:"fullName"`
	Email     string            `gorm:"type:varchar(255)" json:"email"`
	Role      constant.UserRole `gorm:"type:varchar(16);not null;default:staff" json:"role"`
	CollegeID string            `gorm:"type:text;not null;uniqueIndex:idx_users_username_college" json:"-"`
	College   *College          `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u User) TableName() string {
	return "users"
}

// UserRef is the public part of a user embedded in other records.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

func (u *User) Ref() *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID, Username: u.Username, FullName: u.FullName}
}
