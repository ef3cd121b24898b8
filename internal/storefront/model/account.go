package model

import "time"

// User is a registered account. Password is kept as entered.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"password"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// Session marks which user is logged in for a client. It is not linked to the
// users collection.
type Session struct {
	Email      string    `json:"email"`
	IsLoggedIn bool      `json:"isLoggedIn"`
	LoginTime  time.Time `json:"loginTime"`
}

// RegisterInput carries the raw registration form values.
type RegisterInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	TermsAccepted   bool   `json:"termsAccepted"`
}
