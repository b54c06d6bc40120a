package constants

// Context keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// Password rules
const (
	MinPasswordLength = 6
)

// Pagination limits
const (
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)
