package models

import (
	"time"
)

// User represents the users collection in the database.
type User struct {
	ID                 string    `bson:"_id" json:"id"`
	Email              string    `bson:"email" json:"email"`
	FullName           string    `bson:"full_name" json:"full_name"`
	Phone              *string   `bson:"phone" json:"phone"`
	Role               Role      `bson:"role" json:"role"`
	Avatar             *string   `bson:"avatar" json:"avatar"`
	Location           *string   `bson:"location" json:"location"`
	Bio                *string   `bson:"bio" json:"bio"`
	ParticipationCount int       `bson:"participation_count" json:"participation_count"`
	Wins               int       `bson:"wins" json:"wins"`
	Points             int       `bson:"points" json:"points"`
	HashedPassword     string    `bson:"hashed_password" json:"-"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
}

type UserCreate struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
	FullName string  `json:"full_name" validate:"required,max=120"`
	Phone    *string `json:"phone"`
	Role     Role    `json:"role"`
	Location *string `json:"location"`
}

type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Token is returned by register and login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}
