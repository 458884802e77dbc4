package auth

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)
