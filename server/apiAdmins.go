package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
	"github.com/talenthub/console/server/auth"
	"github.com/talenthub/console/server/model"
)

// Admin management is only reachable through the superAdmin route wrapper, so
// these handlers can assume an elevated credential.

// ensureAdminsLoaded fetches the admin list on the screen's first use.
// Caller holds sc.lock; the lock is dropped for the upstream call.
func (s *Server) ensureAdminsLoaded(sc *sessionScreens, cred *auth.Credentials) {
	if sc.adminsLoaded {
		return
	}
	sc.lock.Unlock()
	admins, err := s.upstream.Admins(cred.BearerToken)
	sc.lock.Lock()
	checkUpstream(err)
	if !sc.adminsLoaded {
		sc.admins.Reset(admins)
		sc.adminsLoaded = true
	}
}

func (s *Server) httpAdminsList(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	sc := s.screens.get(cred.SessionKey)
	sc.lock.Lock()
	defer sc.lock.Unlock()
	s.ensureAdminsLoaded(sc, cred)
	www.SendJSON(w, sc.admins.Items())
}

func (s *Server) httpAdminsCreate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	type request struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	req := request{}
	www.ReadJSON(w, r, &req, 1024*1024)
	validateRequired(req.Name, req.Email, req.Password, req.ConfirmPassword)
	validateNewPassword(req.Password, req.ConfirmPassword)
	validateEmail(req.Email)

	resp, err := s.upstream.CreateAdminAccount(cred.BearerToken, model.CreateAdminRequest{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.ConfirmPassword,
	})
	checkUpstream(err)

	if resp.Admin != nil {
		sc := s.screens.get(cred.SessionKey)
		sc.lock.Lock()
		sc.admins.Add(*resp.Admin)
		sc.lock.Unlock()
		www.SendJSON(w, resp.Admin)
		return
	}
	www.SendError(w, resp.Message, http.StatusBadGateway)
}

func (s *Server) httpAdminsRemove(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	adminID := www.ParseID(params.ByName("id"))
	if adminID == cred.AdminID {
		www.PanicBadRequestf("You cannot remove your own account")
	}
	sc := s.screens.get(cred.SessionKey)
	func() {
		sc.lock.Lock()
		defer sc.lock.Unlock()
		s.ensureAdminsLoaded(sc, cred)
		for _, a := range sc.admins.Items() {
			if a.ID == adminID && a.IsSuperAdmin == 1 {
				www.PanicBadRequestf("Super admin accounts cannot be removed")
			}
		}
	}()

	checkUpstream(s.upstream.RemoveAdmin(cred.BearerToken, adminID))

	sc.lock.Lock()
	sc.admins.Remove(adminID)
	sc.lock.Unlock()
	www.SendOK(w)
}
