// Package auth owns the console's session lifecycle: a login response from
// the upstream API goes in, a cookie-backed 24 hour session comes out. The
// login response is threaded straight through to session construction —
// there is deliberately no package-level state between the two steps.
package auth

import (
	"net/http"
	"time"

	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
	"github.com/cyclopcam/www"
	"github.com/talenthub/console/server/model"
	"gorm.io/gorm"
)

// SessionLifetime is fixed, not sliding. Sessions are never refreshed.
const SessionLifetime = 24 * time.Hour

const cookieTokenChars = 30

// Credentials is an authenticated console session.
type Credentials struct {
	AdminID      int64
	Email        string
	Name         string
	RoleID       int
	IsSuperAdmin bool

	// BearerToken is the upstream API token, attached to every gateway call
	// made on behalf of this session.
	BearerToken string

	// SessionKey is the hashed cookie token, usable as a stable per-session key.
	SessionKey string
}

func (c *Credentials) PanicIfNotSuperAdmin() {
	if !c.IsSuperAdmin {
		www.PanicForbidden()
	}
}

type SessionServer struct {
	// OnSessionPurged, if set, is called with the key of every session that
	// PurgeExpiredSessions removes, so per-session state held elsewhere can
	// be released with it.
	OnSessionPurged func(sessionKey string)

	db                *gorm.DB
	log               logs.Log
	sessionCookieName string
	sealKey           [32]byte
}

func NewSessionServer(db *gorm.DB, log logs.Log, sessionCookieName string, sealKey [32]byte) *SessionServer {
	return &SessionServer{
		db:                db,
		log:               log,
		sessionCookieName: sessionCookieName,
		sealKey:           sealKey,
	}
}

// EstablishSession creates a session from a successful upstream login and
// sets the session cookie. The cookie expiry matches the session expiry.
func (a *SessionServer) EstablishSession(w http.ResponseWriter, login model.LoginResponse) (*Credentials, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(SessionLifetime)
	name := login.Name
	if name == "" {
		name = "Admin"
	}
	sealed, err := sealToken(a.sealKey, login.Token)
	if err != nil {
		return nil, err
	}
	token := StrongRandomAlphaNumChars(cookieTokenChars)
	session := Session{
		Key:          HashSessionToken(token),
		AdminID:      login.ID,
		Email:        login.Email,
		Name:         name,
		RoleID:       login.RoleID,
		IsSuperAdmin: login.IsSuperAdmin == 1,
		BearerSealed: sealed,
		CreatedAt:    dbh.MakeIntTime(now),
		ExpiresAt:    dbh.MakeIntTime(expiresAt),
	}
	if err := a.db.Create(&session).Error; err != nil {
		return nil, err
	}
	a.PurgeExpiredSessions()
	a.log.Infof("Admin %v logged in", login.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     a.sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
	})
	return a.credentials(&session), nil
}

// AuthenticateRequest returns the calling session's credentials.
// If there is no valid session, it sends a 401 to 'w' and returns nil.
func (a *SessionServer) AuthenticateRequest(w http.ResponseWriter, r *http.Request) *Credentials {
	cred := a.GetCredentials(r)
	if cred == nil {
		www.SendError(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}
	return cred
}

// GetCredentials returns the calling session's credentials, or nil.
// It writes nothing, so page handlers can redirect instead of erroring.
func (a *SessionServer) GetCredentials(r *http.Request) *Credentials {
	cookie, _ := r.Cookie(a.sessionCookieName)
	if cookie == nil || cookie.Value == "" {
		return nil
	}
	session := Session{}
	a.db.Where("key = ?", HashSessionToken(cookie.Value)).Find(&session)
	if session.Key == "" {
		return nil
	}
	if !session.ExpiresAt.Get().After(time.Now()) {
		return nil
	}
	return a.credentials(&session)
}

func (a *SessionServer) credentials(session *Session) *Credentials {
	return &Credentials{
		AdminID:      session.AdminID,
		Email:        session.Email,
		Name:         session.Name,
		RoleID:       session.RoleID,
		IsSuperAdmin: session.IsSuperAdmin,
		BearerToken:  unsealToken(a.sealKey, session.BearerSealed),
		SessionKey:   session.Key,
	}
}

// Logout destroys the calling session and clears the cookie.
// The upstream logout call is the handler's concern, not ours.
func (a *SessionServer) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, _ := r.Cookie(a.sessionCookieName)
	if cookie != nil && cookie.Value != "" {
		a.db.Where("key = ?", HashSessionToken(cookie.Value)).Delete(&Session{})
	}
	http.SetCookie(w, &http.Cookie{
		Name:    a.sessionCookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
}

func (a *SessionServer) PurgeExpiredSessions() {
	now := time.Now().UnixMilli()
	expired := []string{}
	if err := a.db.Model(&Session{}).Where("expires_at < ?", now).Pluck("key", &expired).Error; err != nil {
		a.log.Warnf("PurgeExpiredSessions failed: %v", err)
		return
	}
	if len(expired) == 0 {
		return
	}
	if err := a.db.Where("expires_at < ?", now).Delete(&Session{}).Error; err != nil {
		a.log.Warnf("PurgeExpiredSessions failed: %v", err)
		return
	}
	if a.OnSessionPurged != nil {
		for _, key := range expired {
			a.OnSessionPurged(key)
		}
	}
}
