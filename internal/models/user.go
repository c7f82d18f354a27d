package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex"` // Unique handle, resolvable from @mentions
	Email       string `json:"email" gorm:"uniqueIndex"`
	Password    string `json:"-"` // Store hashed password, ignore for JSON serialization
	FirebaseUID string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
}

// ToCompact returns the minimal user shape embedded in enriched responses
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name}
}

type UserCompact struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
