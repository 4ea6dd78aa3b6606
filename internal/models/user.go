// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered marketplace user.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `json:"phone"`
	Rating    float64   `gorm:"default:0" json:"rating"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicUser is the seller projection attached to ad listings.
// Email and password are deliberately absent.
type PublicUser struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Rating float64 `json:"rating"`
}

// PublicUserDetail extends PublicUser for the single-ad detail view.
type PublicUserDetail struct {
	PublicUser
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the list projection of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:     u.ID,
		Name:   u.Name,
		Phone:  u.Phone,
		Rating: u.Rating,
	}
}

// PublicDetail returns the detail projection of the user.
func (u *User) PublicDetail() *PublicUserDetail {
	return &PublicUserDetail{
		PublicUser: *u.Public(),
		Verified:   u.Verified,
		CreatedAt:  u.CreatedAt,
	}
}
