package server

import (
	"sync"

	"github.com/talenthub/console/server/listview"
	"github.com/talenthub/console/server/model"
)

// Portfolio-management tabs. Switching tabs discards loaded pages.
const (
	tabPortfolio = "portfolio"
	tabProject   = "project"
)

// sessionScreens is the per-session state behind the management screens:
// loaded pages, search overlays and active filters. Handlers hold the lock
// while reading or patching state, but never across an upstream call —
// the listview fetch generations take care of stale responses.
type sessionScreens struct {
	lock sync.Mutex

	users       *listview.View[model.User]
	usersLoaded bool
	userFilter  int // 0 = no filter, otherwise a role id

	admins       *listview.View[model.Admin]
	adminsLoaded bool

	portfolios      *listview.View[model.Portfolio]
	projects        *listview.View[model.Project]
	portfolioTab    string
	portfolioLoaded bool
	portfolioFilter int

	applications       *listview.View[model.EndorserApplication]
	applicationsLoaded bool
}

func newSessionScreens() *sessionScreens {
	return &sessionScreens{
		users:        listview.New(func(u model.User) int64 { return u.ID }),
		admins:       listview.New(func(a model.Admin) int64 { return a.ID }),
		portfolios:   listview.New(func(p model.Portfolio) int64 { return p.UserID }),
		projects:     listview.New(func(p model.Project) int64 { return p.ProjectID }),
		portfolioTab: tabPortfolio,
		applications: listview.New(func(a model.EndorserApplication) int64 { return a.ID }),
	}
}

// screenRegistry maps session keys to their screen state.
type screenRegistry struct {
	lock      sync.Mutex
	bySession map[string]*sessionScreens
}

func newScreenRegistry() *screenRegistry {
	return &screenRegistry{
		bySession: map[string]*sessionScreens{},
	}
}

func (r *screenRegistry) get(sessionKey string) *sessionScreens {
	r.lock.Lock()
	defer r.lock.Unlock()
	sc := r.bySession[sessionKey]
	if sc == nil {
		sc = newSessionScreens()
		r.bySession[sessionKey] = sc
	}
	return sc
}

func (r *screenRegistry) drop(sessionKey string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.bySession, sessionKey)
}
