package server

import (
	"net/http"
	"strings"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
	"github.com/talenthub/console/server/auth"
	"github.com/talenthub/console/server/model"
)

// The majors catalog is small enough that we fetch it whole on every read and
// filter in memory, rather than holding per-session state for it.

func (s *Server) httpMajorsList(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	majors, err := s.upstream.Majors()
	checkUpstream(err)

	if search := strings.TrimSpace(www.QueryValue(r, "search")); search != "" {
		needle := strings.ToLower(search)
		filtered := make([]model.Major, 0, len(majors))
		for _, m := range majors {
			if strings.Contains(strings.ToLower(m.Name), needle) {
				filtered = append(filtered, m)
			}
		}
		majors = filtered
	}
	www.SendJSON(w, majors)
}

func readMajorName(w http.ResponseWriter, r *http.Request) string {
	req := model.MajorRequest{}
	www.ReadJSON(w, r, &req, 1024*1024)
	name := strings.TrimSpace(req.Name)
	validateRequired(name)
	return name
}

func (s *Server) httpMajorsCreate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	name := readMajorName(w, r)
	major, err := s.upstream.CreateMajor(cred.BearerToken, name)
	checkUpstream(err)
	www.SendJSON(w, major)
}

func (s *Server) httpMajorsUpdate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	majorID := www.ParseID(params.ByName("id"))
	name := readMajorName(w, r)
	major, err := s.upstream.UpdateMajor(cred.BearerToken, majorID, name)
	checkUpstream(err)
	www.SendJSON(w, major)
}

func (s *Server) httpMajorsDelete(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	majorID := www.ParseID(params.ByName("id"))
	checkUpstream(s.upstream.DeleteMajor(cred.BearerToken, majorID))
	www.SendOK(w)
}
