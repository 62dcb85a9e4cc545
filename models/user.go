package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RolePlayer UserRole = "player"
)

type User struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Nickname     string    `json:"nickname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile holds the accumulated contest score, attached 1:1 to a user.
// TotalPoints is always recomputed from scratch during settlement, never
// incremented in place.
type Profile struct {
	UserID      int `json:"user_id"`
	TotalPoints int `json:"total_points"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
