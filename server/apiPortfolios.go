package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
	"github.com/talenthub/console/server/auth"
	"github.com/talenthub/console/server/listview"
	"github.com/talenthub/console/server/model"
)

// The portfolio-management screen is two tabs over one screen slot: student
// portfolios and their projects. Switching tabs resets both views so a stale
// project page can't bleed into a fresh portfolio listing.

type portfolioRowJSON struct {
	model.Portfolio
	Contact string `json:"contact"`
}

type portfolioScreenJSON struct {
	Tab         string             `json:"tab"`
	Portfolios  []portfolioRowJSON `json:"portfolios,omitempty"`
	Projects    []model.Project    `json:"projects,omitempty"`
	LoadedCount int                `json:"loadedCount"`
	HasMore     bool               `json:"hasMore"`
	Filter      int                `json:"filter"`
	SearchTerm  string             `json:"searchTerm"`
}

func portfolioRows(portfolios []model.Portfolio) []portfolioRowJSON {
	rows := make([]portfolioRowJSON, 0, len(portfolios))
	for _, p := range portfolios {
		contact := ""
		if p.PhoneNumber != nil {
			contact = convertPhoneNumberSpacing(*p.PhoneNumber)
		}
		rows = append(rows, portfolioRowJSON{Portfolio: p, Contact: contact})
	}
	return rows
}

// portfolioSnapshot builds the screen response for whichever tab is active.
// Caller holds sc.lock.
func portfolioSnapshot(sc *sessionScreens) *portfolioScreenJSON {
	resp := &portfolioScreenJSON{
		Tab:    sc.portfolioTab,
		Filter: sc.portfolioFilter,
	}
	if sc.portfolioTab == tabProject {
		items := sc.projects.Items()
		if sc.portfolioFilter != 0 {
			vis := sc.portfolioFilter
			items = listview.Filter(items, func(p model.Project) bool { return p.Visibility == vis })
		}
		resp.Projects = items
		resp.LoadedCount = sc.projects.LoadedCount()
		resp.HasMore = sc.projects.HasMore()
		resp.SearchTerm = sc.projects.SearchTerm()
	} else {
		items := sc.portfolios.Items()
		if sc.portfolioFilter != 0 {
			role := sc.portfolioFilter
			items = listview.Filter(items, func(p model.Portfolio) bool { return p.RoleID == role })
		}
		resp.Portfolios = portfolioRows(items)
		resp.LoadedCount = sc.portfolios.LoadedCount()
		resp.HasMore = sc.portfolios.HasMore()
		resp.SearchTerm = sc.portfolios.SearchTerm()
	}
	return resp
}

// ensurePortfolioLoaded fetches page 1 of the active tab on the screen's
// first use. Caller holds sc.lock; the lock is dropped for the upstream call.
func (s *Server) ensurePortfolioLoaded(sc *sessionScreens, cred *auth.Credentials) {
	if sc.portfolioLoaded {
		return
	}
	tab := sc.portfolioTab
	sc.lock.Unlock()
	var portfolios []model.Portfolio
	var projects []model.Project
	var err error
	if tab == tabProject {
		projects, err = s.upstream.Projects(cred.BearerToken, 1)
	} else {
		portfolios, err = s.upstream.Portfolios(cred.BearerToken, 1)
	}
	sc.lock.Lock()
	checkUpstream(err)
	if sc.portfolioLoaded || sc.portfolioTab != tab {
		return
	}
	if tab == tabProject {
		sc.projects.Reset(projects)
	} else {
		sc.portfolios.Reset(portfolios)
	}
	sc.portfolioLoaded = true
}

func (s *Server) httpPortfolioScreen(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	sc := s.screens.get(cred.SessionKey)
	sc.lock.Lock()
	defer sc.lock.Unlock()
	s.ensurePortfolioLoaded(sc, cred)
	www.SendJSON(w, portfolioSnapshot(sc))
}

func (s *Server) httpPortfolioSwitchTab(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	tab := www.QueryValue(r, "tab")
	if tab != tabPortfolio && tab != tabProject {
		www.PanicBadRequestf("Unknown tab '%v'", tab)
	}
	sc := s.screens.get(cred.SessionKey)
	sc.lock.Lock()
	defer sc.lock.Unlock()
	if sc.portfolioTab != tab {
		sc.portfolioTab = tab
		sc.portfolioFilter = 0
		sc.portfolios.Invalidate()
		sc.projects.Invalidate()
		sc.portfolioLoaded = false
	}
	s.ensurePortfolioLoaded(sc, cred)
	www.SendJSON(w, portfolioSnapshot(sc))
}

func (s *Server) httpPortfolioLoadMore(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	type response struct {
		Added   int  `json:"added"`
		HasMore bool `json:"hasMore"`
		Stale   bool `json:"stale"`
	}
	sc := s.screens.get(cred.SessionKey)
	var tab string
	gen, page, ended := func() (int64, int, bool) {
		sc.lock.Lock()
		defer sc.lock.Unlock()
		s.ensurePortfolioLoaded(sc, cred)
		tab = sc.portfolioTab
		if tab == tabProject {
			if !sc.projects.HasMore() {
				return 0, 0, true
			}
			gen, page := sc.projects.BeginFetch()
			return gen, page, false
		}
		if !sc.portfolios.HasMore() {
			return 0, 0, true
		}
		gen, page := sc.portfolios.BeginFetch()
		return gen, page, false
	}()
	if ended {
		www.SendJSON(w, response{HasMore: false})
		return
	}

	var added int
	var stale, hasMore bool
	if tab == tabProject {
		projects, err := s.upstream.Projects(cred.BearerToken, page)
		checkUpstream(err)
		sc.lock.Lock()
		added, stale = sc.projects.EndFetch(gen, page, projects)
		hasMore = sc.projects.HasMore()
	} else {
		portfolios, err := s.upstream.Portfolios(cred.BearerToken, page)
		checkUpstream(err)
		sc.lock.Lock()
		added, stale = sc.portfolios.EndFetch(gen, page, portfolios)
		hasMore = sc.portfolios.HasMore()
	}
	sc.lock.Unlock()
	www.SendJSON(w, response{Added: added, HasMore: hasMore, Stale: stale})
}

func (s *Server) httpPortfolioSearch(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	name := www.QueryValue(r, "name")
	sc := s.screens.get(cred.SessionKey)
	sc.lock.Lock()
	tab := sc.portfolioTab
	if name == "" {
		sc.portfolios.ClearSearch()
		sc.projects.ClearSearch()
		defer sc.lock.Unlock()
		www.SendJSON(w, portfolioSnapshot(sc))
		return
	}
	sc.lock.Unlock()

	if tab == tabProject {
		results, err := s.upstream.SearchProjects(cred.BearerToken, name)
		checkUpstream(err)
		sc.lock.Lock()
		sc.projects.SetSearch(name, results)
	} else {
		results, err := s.upstream.SearchPortfolios(cred.BearerToken, name)
		checkUpstream(err)
		sc.lock.Lock()
		sc.portfolios.SetSearch(name, results)
	}
	defer sc.lock.Unlock()
	www.SendJSON(w, portfolioSnapshot(sc))
}

func (s *Server) httpPortfolioFilter(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	filter := www.QueryInt(r, "filter")
	sc := s.screens.get(cred.SessionKey)
	sc.lock.Lock()
	defer sc.lock.Unlock()
	if sc.portfolioTab == tabProject {
		// Project visibility: 0 = no filter, 1 = public, 2 = private.
		if filter < 0 || filter > 2 {
			www.PanicBadRequestf("Unknown visibility filter %v", filter)
		}
	} else {
		if filter != 0 && filter != model.RoleStudent && filter != model.RoleEndorser {
			www.PanicBadRequestf("Unknown role filter %v", filter)
		}
	}
	sc.portfolioFilter = filter
	www.SendJSON(w, portfolioSnapshot(sc))
}

func (s *Server) httpPortfolioDetail(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	userID := www.ParseID(params.ByName("userId"))
	portfolio, err := s.upstream.PortfolioDetail(cred.BearerToken, userID)
	checkUpstream(err)
	www.SendJSON(w, portfolio)
}

func (s *Server) httpProjectDetail(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	projectID := www.ParseID(params.ByName("projectId"))
	project, err := s.upstream.ProjectDetail(cred.BearerToken, projectID)
	checkUpstream(err)
	www.SendJSON(w, project)
}
