package entity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("account with this email already exists")
	ErrNotLoggedIn        = errors.New("not logged in")
)

type Account struct {
	ID           int64     `db:"account_id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// SessionClaims is the payload of the session cookie token.
type SessionClaims struct {
	AccountID int64 `json:"account_id"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Language string `json:"language"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	LoggedIn bool  `json:"loggedIn"`
	UserID   int64 `json:"userId,omitempty"`
}
