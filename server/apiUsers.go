package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
	"github.com/talenthub/console/server/auth"
	"github.com/talenthub/console/server/listview"
	"github.com/talenthub/console/server/model"
)

type userRowJSON struct {
	model.User
	Contact string `json:"contact"`
}

type usersScreenJSON struct {
	Items       []userRowJSON `json:"items"`
	LoadedCount int           `json:"loadedCount"`
	HasMore     bool          `json:"hasMore"`
	Filter      int           `json:"filter"`
	SearchTerm  string        `json:"searchTerm"`
}

func userRows(users []model.User) []userRowJSON {
	rows := make([]userRowJSON, 0, len(users))
	for _, u := range users {
		contact := ""
		if u.PhoneNumber != nil {
			contact = convertPhoneNumberSpacing(*u.PhoneNumber)
		}
		rows = append(rows, userRowJSON{User: u, Contact: contact})
	}
	return rows
}

// usersSnapshot builds the screen response. Caller holds sc.lock.
func usersSnapshot(sc *sessionScreens) *usersScreenJSON {
	items := sc.users.Items()
	if sc.userFilter != 0 {
		role := sc.userFilter
		items = listview.Filter(items, func(u model.User) bool { return u.RoleID == role })
	}
	return &usersScreenJSON{
		Items:       userRows(items),
		LoadedCount: sc.users.LoadedCount(),
		HasMore:     sc.users.HasMore(),
		Filter:      sc.userFilter,
		SearchTerm:  sc.users.SearchTerm(),
	}
}

// ensureUsersLoaded fetches page 1 on the screen's first use. Caller holds
// sc.lock; the lock is dropped for the duration of the upstream call.
func (s *Server) ensureUsersLoaded(sc *sessionScreens, cred *auth.Credentials) {
	if sc.usersLoaded {
		return
	}
	sc.lock.Unlock()
	users, err := s.upstream.Users(cred.BearerToken, 1)
	sc.lock.Lock()
	checkUpstream(err)
	if !sc.usersLoaded {
		sc.users.Reset(users)
		sc.usersLoaded = true
	}
}

func (s *Server) httpUsersScreen(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	sc := s.screens.get(cred.SessionKey)
	sc.lock.Lock()
	defer sc.lock.Unlock()
	s.ensureUsersLoaded(sc, cred)
	www.SendJSON(w, usersSnapshot(sc))
}

func (s *Server) httpUsersLoadMore(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	type response struct {
		Added   int  `json:"added"`
		HasMore bool `json:"hasMore"`
		Stale   bool `json:"stale"`
	}
	sc := s.screens.get(cred.SessionKey)
	gen, page, ended := func() (int64, int, bool) {
		sc.lock.Lock()
		defer sc.lock.Unlock()
		s.ensureUsersLoaded(sc, cred)
		if !sc.users.HasMore() {
			return 0, 0, true
		}
		gen, page := sc.users.BeginFetch()
		return gen, page, false
	}()
	if ended {
		// End of data was already seen; no upstream call.
		www.SendJSON(w, response{HasMore: false})
		return
	}

	users, err := s.upstream.Users(cred.BearerToken, page)
	checkUpstream(err)

	sc.lock.Lock()
	added, stale := sc.users.EndFetch(gen, page, users)
	hasMore := sc.users.HasMore()
	sc.lock.Unlock()
	www.SendJSON(w, response{Added: added, HasMore: hasMore, Stale: stale})
}

func (s *Server) httpUsersSearch(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	name := www.QueryValue(r, "name")
	sc := s.screens.get(cred.SessionKey)
	if name == "" {
		sc.lock.Lock()
		defer sc.lock.Unlock()
		sc.users.ClearSearch()
		www.SendJSON(w, usersSnapshot(sc))
		return
	}
	results, err := s.upstream.SearchUsers(cred.BearerToken, name)
	checkUpstream(err)
	sc.lock.Lock()
	defer sc.lock.Unlock()
	sc.users.SetSearch(name, results)
	www.SendJSON(w, usersSnapshot(sc))
}

func (s *Server) httpUsersFilter(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	role := www.QueryInt(r, "role")
	if role != 0 && role != model.RoleStudent && role != model.RoleEndorser {
		www.PanicBadRequestf("Unknown role %v", role)
	}
	sc := s.screens.get(cred.SessionKey)
	sc.lock.Lock()
	defer sc.lock.Unlock()
	// A filter is a display predicate. Loaded pages stay put.
	sc.userFilter = role
	www.SendJSON(w, usersSnapshot(sc))
}

// googleIDParam rejects the mutations that the upstream can't key: a user
// without a google id has never completed a first-party login.
func googleIDParam(params httprouter.Params) string {
	googleID := params.ByName("googleId")
	if googleID == "" || googleID == "null" {
		www.PanicBadRequestf("User has no linked account")
	}
	return googleID
}

func (s *Server) httpUsersBan(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	googleID := googleIDParam(params)
	req := model.StatusChangeRequest{}
	www.ReadJSON(w, r, &req, 1024*1024)
	status := 0
	switch req.Status {
	case "0":
		status = model.UserStatusBanned
	case "1":
		status = model.UserStatusActive
	default:
		www.PanicBadRequestf("Status must be \"0\" or \"1\"")
	}

	checkUpstream(s.upstream.BanUser(cred.BearerToken, googleID, status))

	// Patch the record in place. No refetch.
	sc := s.screens.get(cred.SessionKey)
	sc.lock.Lock()
	defer sc.lock.Unlock()
	patchUserByGoogleID(sc, googleID, func(u *model.User) { u.Status = status })
	www.SendJSON(w, usersSnapshot(sc))
}

func (s *Server) httpUsersUpdateRole(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	googleID := googleIDParam(params)
	req := model.RoleChangeRequest{}
	www.ReadJSON(w, r, &req, 1024*1024)
	if req.RoleID != model.RoleStudent && req.RoleID != model.RoleEndorser {
		www.PanicBadRequestf("Unknown role %v", req.RoleID)
	}

	checkUpstream(s.upstream.UpdateUserRole(cred.BearerToken, googleID, req.RoleID))

	sc := s.screens.get(cred.SessionKey)
	sc.lock.Lock()
	defer sc.lock.Unlock()
	patchUserByGoogleID(sc, googleID, func(u *model.User) { u.RoleID = req.RoleID })
	www.SendJSON(w, usersSnapshot(sc))
}

func patchUserByGoogleID(sc *sessionScreens, googleID string, fn func(*model.User)) {
	find := func(users []model.User) bool {
		for _, u := range users {
			if u.GoogleID != nil && *u.GoogleID == googleID {
				sc.users.Update(u.ID, fn)
				return true
			}
		}
		return false
	}
	// The target may live in the loaded pages, the search overlay, or both.
	// Update patches whichever lists hold the id.
	if !find(sc.users.LoadedItems()) {
		find(sc.users.Items())
	}
}

func (s *Server) httpUsersCreateEndorser(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	type request struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Company         string `json:"company"`
		Position        string `json:"position"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	req := request{}
	www.ReadJSON(w, r, &req, 1024*1024)
	validateRequired(req.Name, req.Email, req.Company, req.Position, req.Password, req.ConfirmPassword)
	validateNewPassword(req.Password, req.ConfirmPassword)
	validateEmail(req.Email)

	resp, err := s.upstream.CreateEndorserAccount(cred.BearerToken, model.CreateEndorserRequest{
		Name:                 req.Name,
		Email:                req.Email,
		Company:              req.Company,
		Position:             req.Position,
		Password:             req.Password,
		PasswordConfirmation: req.ConfirmPassword,
	})
	checkUpstream(err)

	if resp.User != nil {
		// Prime the view first, so a later initial load can't clobber the patch
		sc := s.screens.get(cred.SessionKey)
		func() {
			sc.lock.Lock()
			defer sc.lock.Unlock()
			s.ensureUsersLoaded(sc, cred)
			sc.users.Add(*resp.User)
		}()
		www.SendJSON(w, resp.User)
		return
	}
	www.SendError(w, resp.Message, http.StatusBadGateway)
}
