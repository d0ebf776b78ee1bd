package models

// Session is the authenticated caller of a request, as read from its token.
type Session struct {
	UserID uint
	Email  string
	Name   string
	Role   Role
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// CanAccessUser reports whether the caller may act on userID's account.
func (s Session) CanAccessUser(userID uint) bool {
	return s.UserID == userID || s.IsAdmin()
}
