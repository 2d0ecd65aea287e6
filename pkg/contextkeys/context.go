package contextkeys

type ContextKey string

const (
	DBContextKey     ContextKey = "db"
	UserIDContextKey ContextKey = "userID"
	RoleContextKey   ContextKey = "role"
)
