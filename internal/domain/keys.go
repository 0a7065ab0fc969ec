package domain

// CtxKey names the values the auth middleware stores on the gin context.
type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserName  CtxKey = "Name"
	// KeyAuthFromCookie is set when the session came from the cookie rather
	// than the Authorization header; CSRF checks only apply then.
	KeyAuthFromCookie CtxKey = "AuthFromCookie"
)
