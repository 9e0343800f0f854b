package constants

// Gin context keys set by the auth middleware.
const (
	CurrentUser = "current_user"
	UserID      = "user_id"
	UserPhone   = "user_phone"
)
