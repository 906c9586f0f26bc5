package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
	"github.com/talenthub/console/server/auth"
	"github.com/talenthub/console/server/model"
)

type identityJSON struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	RoleID       int    `json:"roleId"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
}

func identityOf(cred *auth.Credentials) *identityJSON {
	return &identityJSON{
		ID:           cred.AdminID,
		Email:        cred.Email,
		Name:         cred.Name,
		RoleID:       cred.RoleID,
		IsSuperAdmin: cred.IsSuperAdmin,
	}
}

func (s *Server) httpAuthLogin(w http.ResponseWriter, r *http.Request) {
	req := model.LoginRequest{}
	www.ReadJSON(w, r, &req, 1024*1024)
	if req.Email == "" || req.Password == "" {
		www.PanicBadRequestf("Email and password are required")
	}

	// The login response feeds straight into session construction.
	// One attempt per submission; any upstream failure is the same
	// generic failure to the caller.
	login, err := s.upstream.Login(req.Email, req.Password)
	if err != nil {
		s.Log.Infof("Login failed for %v: %v", req.Email, err)
		www.Panic(http.StatusUnauthorized, "Invalid login")
	}
	cred, err := s.sessions.EstablishSession(w, login)
	www.Check(err)
	www.SendJSON(w, identityOf(cred))
}

func (s *Server) httpAuthLogout(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	// Best effort: the console owns the session lifetime, so a failed
	// upstream logout doesn't keep you logged in here.
	if err := s.upstream.Logout(cred.BearerToken); err != nil {
		s.Log.Warnf("Upstream logout failed: %v", err)
	}
	s.screens.drop(cred.SessionKey)
	s.sessions.Logout(w, r)
	www.SendOK(w)
}

func (s *Server) httpAuthWhoAmi(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	www.SendJSON(w, identityOf(cred))
}

func (s *Server) httpAuthChangePassword(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	type request struct {
		OldPassword     string `json:"oldPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	req := request{}
	www.ReadJSON(w, r, &req, 1024*1024)
	validateRequired(req.OldPassword, req.NewPassword, req.ConfirmPassword)
	validateNewPassword(req.NewPassword, req.ConfirmPassword)
	checkUpstream(s.upstream.ChangePassword(cred.BearerToken, model.ChangePasswordRequest{
		OldPassword:             req.OldPassword,
		NewPassword:             req.NewPassword,
		NewPasswordConfirmation: req.ConfirmPassword,
	}))
	www.SendOK(w)
}
