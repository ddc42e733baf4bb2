package models

// User is an account row. The password hash never leaves the server.
type User struct {
	Id       string `json:"id"`
	Email    string `pg:",unique,notnull" json:"email"`
	Password string `pg:",notnull" json:"-"`
}

type UserDto struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}
