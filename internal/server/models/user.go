package models

// User is an account record held in the external content store. PasswordHash
// carries the bcrypt hash and is never serialized into API responses.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
