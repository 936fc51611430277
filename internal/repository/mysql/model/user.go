package model

import (
	"time"

	"github.com/GhostMEn20034/small-social-network/domain"
)

type User struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	Email       string     `gorm:"type:varchar(256);uniqueIndex;not null"`
	FirstName   string     `gorm:"column:first_name;type:varchar(128);not null"`
	LastName    string     `gorm:"column:last_name;type:varchar(128);not null"`
	Password    string     `gorm:"type:varchar(256);not null"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth;type:date"`
	CreatedAt   time.Time  `gorm:"type:datetime"`
	UpdatedAt   time.Time  `gorm:"type:datetime"`
}

func (User) TableName() string {
	return "users"
}

func NewUserFromDomain(u *domain.User) *User {
	return &User{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Password:    u.Password,
		DateOfBirth: u.DateOfBirth,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (m *User) ToDomain() domain.User {
	return domain.User{
		ID:          m.ID,
		Email:       m.Email,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Password:    m.Password,
		DateOfBirth: m.DateOfBirth,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
