package models

// User is the identity blob the backend returns on login and persists with
// the session. Usernames are display-only; ownership checks always compare
// ids.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Session is the current credential + identity held by the client. The
// token is opaque; the client never inspects or refreshes it.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
