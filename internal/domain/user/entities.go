package user

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSigner Role = "signer"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleSigner }

type User struct {
	ID           string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Email        string    `gorm:"column:email;size:255;not null;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	FirstName    string    `gorm:"column:first_name;size:100" json:"first_name"`
	LastName     string    `gorm:"column:last_name;size:100" json:"last_name"`
	Role         Role      `gorm:"column:role;type:enum('admin','signer');default:'signer'" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
