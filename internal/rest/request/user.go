package request

import (
	"time"

	"github.com/GhostMEn20034/small-social-network/domain"
)

type Signup struct {
	Email       string `json:"email" binding:"required,email"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
}

// ToDomain: Request -> Domain
func (r *Signup) ToDomain() domain.User {
	u := domain.User{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
	if r.DateOfBirth != "" {
		if dob, err := time.Parse("2006-01-02", r.DateOfBirth); err == nil {
			u.DateOfBirth = &dob
		}
	}
	return u
}

type Login struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
