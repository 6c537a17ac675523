package entity

// Role names issued by the platform backend on login.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)
