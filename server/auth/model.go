package auth

import "github.com/cyclopcam/dbh"

// Session is one console login. Key is the sha256 of the cookie token, so the
// plaintext token only ever lives in the caller's cookie. The upstream bearer
// token is sealed with chacha20 before it touches the database.
type Session struct {
	Key          string `gorm:"primaryKey"`
	AdminID      int64
	Email        string
	Name         string
	RoleID       int
	IsSuperAdmin bool
	BearerSealed string
	CreatedAt    dbh.IntTime
	ExpiresAt    dbh.IntTime
}

func (Session) TableName() string {
	return "admin_session"
}
