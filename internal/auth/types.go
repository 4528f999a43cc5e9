package auth

import "time"

// Role is the account type a user signs up with
type Role string

const (
	// RoleHost schedules and runs interviews
	RoleHost Role = "HOST"
	// RoleCandidate attends interviews
	RoleCandidate Role = "CANDIDATE"
)

// Valid reports whether the role is one the backend accepts
func (r Role) Valid() bool {
	return r == RoleHost || r == RoleCandidate
}

// User is the backend's account record
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SignupRequest is the payload for account creation
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FullName  string `json:"full_name"`
	Role      Role   `json:"role"`
	Phone     string `json:"phone"`
}

// GoogleResult is the outcome of a Google token exchange.
// IsNewUser only selects the success message shown to the user;
// it never alters control flow.
type GoogleResult struct {
	User      *User
	IsNewUser bool
}
