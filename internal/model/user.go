package model

import "time"

const (
	RoleFounder   = "founder"
	RoleInvestor  = "investor"
	RoleMentor    = "mentor"
	RoleDeveloper = "developer"
	RoleAdvisor   = "advisor"
)

const (
	DefaultStartupStage = "idea"
	DefaultFundingStage = "pre-seed"
)

// Profile holds the user's display name
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Startup is only set for founders
type Startup struct {
	Name         string `json:"name"`
	Industry     string `json:"industry"`
	Stage        string `json:"stage"`
	FundingStage string `json:"fundingStage"`
}

// User represents an account in the system
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Role         string    `json:"role"`
	Profile      Profile   `json:"profile"`
	Startup      *Startup  `json:"startup,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SignupRequest is the body of POST /auth/signup
type SignupRequest struct {
	Email        string `json:"email" validate:"required"`
	Password     string `json:"password" validate:"required"`
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Role         string `json:"role" validate:"required,oneof=founder investor mentor developer advisor"`
	StartupName  string `json:"startupName"`
	Industry     string `json:"industry"`
	Stage        string `json:"stage"`
	FundingStage string `json:"fundingStage"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SanitizedUser is the signup response projection of a User
type SanitizedUser struct {
	ID      string   `json:"id"`
	Email   string   `json:"email"`
	Role    string   `json:"role"`
	Profile Profile  `json:"profile"`
	Startup *Startup `json:"startup,omitempty"`
}

// Sanitize drops everything that must not leave the server
func (u *User) Sanitize() SanitizedUser {
	return SanitizedUser{
		ID:      u.ID,
		Email:   u.Email,
		Role:    u.Role,
		Profile: u.Profile,
		Startup: u.Startup,
	}
}
