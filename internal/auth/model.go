package auth

import "time"

// Account types. The type is fixed at signup; there is no role transition
// besides the operator-driven admin promotion utility.
const (
	TypeClient       = "Client"
	TypeProfessional = "Professional"
	TypeAdmin        = "Admin"
)

// User is an account record, keyed by email in the users collection.
// Rating fields aggregate the reviews professionals leave about clients.
type User struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Contact      string    `json:"contact"`
	Location     string    `json:"location"`
	Type         string    `json:"type"`
	Rating       float64   `json:"rating"`
	RatingCount  int       `json:"rating_count"`
	Verified     bool      `json:"verified"`
	Suspended    bool      `json:"suspended"`
	PasswordHash string    `json:"password_hash"`
	Created      time.Time `json:"created"`
}
