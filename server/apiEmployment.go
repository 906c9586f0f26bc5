package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
	"github.com/talenthub/console/server/auth"
	"github.com/talenthub/console/server/model"
)

// httpEmploymentStats combines the three graduate-employment reads into one
// response, so the dashboard renders the whole screen from a single call.
func (s *Server) httpEmploymentStats(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	type response struct {
		Rate      model.EmploymentRate  `json:"rate"`
		JobTitles []model.JobTitleCount `json:"jobTitles"`
		Companies []model.CompanyCount  `json:"companies"`
	}

	rate, err := s.upstream.EmploymentRate(cred.BearerToken)
	checkUpstream(err)
	jobTitles, err := s.upstream.TopJobTitles(cred.BearerToken)
	checkUpstream(err)
	companies, err := s.upstream.TopCompanies(cred.BearerToken)
	checkUpstream(err)

	www.SendJSON(w, response{
		Rate:      rate,
		JobTitles: jobTitles,
		Companies: companies,
	})
}
