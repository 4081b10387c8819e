package usercontext

// Session and Locals keys shared by the auth controllers and middlewares.
// This package is their single home; nothing else redeclares them.
const (
	ContextKey       = "USER_CONTEXT"
	AuthKey          = "authenticated"
	KeyUserID        = "user_id"
	KeyUsername      = "username"
	KeyIsAdmin       = "isAdmin"
	KeyPlan          = "user_plan"
	KeyFromProtected = "from_protected"
)
