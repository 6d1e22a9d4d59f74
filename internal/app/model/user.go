package model

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	FirstName    string    `gorm:"type:varchar(150);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(150);not null" json:"last_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);default:'user'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may edit content owned by others
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
