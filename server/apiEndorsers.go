package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
	"github.com/talenthub/console/server/auth"
	"github.com/talenthub/console/server/listview"
	"github.com/talenthub/console/server/model"
)

type applicationsScreenJSON struct {
	Items        []model.EndorserApplication `json:"items"`
	PendingCount int                         `json:"pendingCount"`
}

// applicationsSnapshot returns the pending applications and their count.
// Approved and declined applications drop off the screen. Caller holds
// sc.lock.
func applicationsSnapshot(sc *sessionScreens) *applicationsScreenJSON {
	pending := listview.Filter(sc.applications.Items(), func(a model.EndorserApplication) bool {
		return a.Status == model.ApplicationPending
	})
	return &applicationsScreenJSON{
		Items:        pending,
		PendingCount: len(pending),
	}
}

func (s *Server) ensureApplicationsLoaded(sc *sessionScreens, cred *auth.Credentials) {
	if sc.applicationsLoaded {
		return
	}
	sc.lock.Unlock()
	list, err := s.upstream.EndorserRequests(cred.BearerToken)
	sc.lock.Lock()
	checkUpstream(err)
	if !sc.applicationsLoaded {
		sc.applications.Reset(list.Data)
		sc.applicationsLoaded = true
	}
}

func (s *Server) httpApplicationsList(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	sc := s.screens.get(cred.SessionKey)
	sc.lock.Lock()
	defer sc.lock.Unlock()
	s.ensureApplicationsLoaded(sc, cred)
	www.SendJSON(w, applicationsSnapshot(sc))
}

func (s *Server) httpApplicationDetail(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	id := www.ParseID(params.ByName("id"))
	detail, err := s.upstream.EndorserRequestDetail(cred.BearerToken, id)
	checkUpstream(err)
	www.SendJSON(w, detail)
}

func (s *Server) httpApplicationUpdate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	id := www.ParseID(params.ByName("id"))
	type request struct {
		Action string `json:"action"`
	}
	req := request{}
	www.ReadJSON(w, r, &req, 1024*1024)
	status := 0
	switch req.Action {
	case "approve":
		status = model.ApplicationApproved
	case "decline":
		status = model.ApplicationDeclined
	default:
		www.PanicBadRequestf("Action must be \"approve\" or \"decline\"")
	}

	checkUpstream(s.upstream.UpdateEndorserRequest(cred.BearerToken, id, status))

	// The application leaves the pending list either way.
	sc := s.screens.get(cred.SessionKey)
	sc.lock.Lock()
	defer sc.lock.Unlock()
	sc.applications.Remove(id)
	www.SendJSON(w, applicationsSnapshot(sc))
}
