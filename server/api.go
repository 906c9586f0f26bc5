package server

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cyclopcam/staticfiles"
	"github.com/cyclopcam/www"
	"github.com/go-chi/httprate"
	"github.com/julienschmidt/httprouter"
	"github.com/talenthub/console/server/auth"
	"github.com/talenthub/console/server/gateway"
)

//go:embed www
var staticWWW embed.FS

type authenticatedHandler func(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials)

func (s *Server) setupHttpRoutes() error {
	router := httprouter.New()

	// protected creates an HTTP handler that is accessible only with a valid session
	protected := func(method, route string, handle authenticatedHandler) {
		www.Handle(s.Log, router, method, route, func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
			cred := s.sessions.AuthenticateRequest(w, r)
			if cred == nil {
				return
			}
			handle(w, r, params, cred)
		})
	}

	// superAdmin is protected, plus the super-admin flag
	superAdmin := func(method, route string, handle authenticatedHandler) {
		protected(method, route, func(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
			cred.PanicIfNotSuperAdmin()
			handle(w, r, params, cred)
		})
	}

	// unprotected creates an HTTP handler that is accessible without authentication
	unprotected := func(method, route string, handle httprouter.Handle) {
		www.Handle(s.Log, router, method, route, handle)
	}

	// ratelimited wraps an unauthenticated handler with a per-IP limiter
	ratelimited := func(method, route string, handle func(w http.ResponseWriter, r *http.Request), requestLimit int, windowLength time.Duration) {
		limited := httprate.Limit(requestLimit, windowLength, httprate.WithKeyFuncs(httprate.KeyByIP))
		www.Handle(s.Log, router, method, route, func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
			limited(http.HandlerFunc(handle)).ServeHTTP(w, r)
		})
	}

	unprotected("GET", "/api/ping", s.httpPing)

	ratelimited("POST", "/api/auth/login", s.httpAuthLogin, 5, time.Minute)
	protected("POST", "/api/auth/logout", s.httpAuthLogout)
	protected("GET", "/api/auth/whoami", s.httpAuthWhoAmi)
	protected("POST", "/api/auth/changePassword", s.httpAuthChangePassword)

	protected("GET", "/api/users", s.httpUsersScreen)
	protected("POST", "/api/users/more", s.httpUsersLoadMore)
	protected("POST", "/api/users/search", s.httpUsersSearch)
	protected("POST", "/api/users/filter", s.httpUsersFilter)
	protected("PUT", "/api/users/ban/:googleId", s.httpUsersBan)
	protected("POST", "/api/users/role/:googleId", s.httpUsersUpdateRole)
	protected("POST", "/api/users/endorser", s.httpUsersCreateEndorser)

	superAdmin("GET", "/api/admins", s.httpAdminsList)
	superAdmin("POST", "/api/admins", s.httpAdminsCreate)
	superAdmin("DELETE", "/api/admins/:id", s.httpAdminsRemove)

	protected("GET", "/api/majors", s.httpMajorsList)
	protected("POST", "/api/majors", s.httpMajorsCreate)
	protected("PUT", "/api/majors/:id", s.httpMajorsUpdate)
	protected("DELETE", "/api/majors/:id", s.httpMajorsDelete)

	protected("GET", "/api/portfolio", s.httpPortfolioScreen)
	protected("POST", "/api/portfolio/tab", s.httpPortfolioSwitchTab)
	protected("POST", "/api/portfolio/more", s.httpPortfolioLoadMore)
	protected("POST", "/api/portfolio/search", s.httpPortfolioSearch)
	protected("POST", "/api/portfolio/filter", s.httpPortfolioFilter)
	protected("GET", "/api/portfolio/detail/:userId", s.httpPortfolioDetail)
	protected("GET", "/api/project/detail/:projectId", s.httpProjectDetail)

	protected("GET", "/api/employment", s.httpEmploymentStats)

	protected("GET", "/api/applications", s.httpApplicationsList)
	protected("GET", "/api/applications/:id", s.httpApplicationDetail)
	protected("PUT", "/api/applications/:id", s.httpApplicationUpdate)

	isImmutable := true
	var fsys fs.FS
	fsysRoot := "www"
	fsys = staticWWW
	if s.HotReloadWWW {
		relRoot := "server/www"
		absRoot, err := filepath.Abs(relRoot)
		if err != nil {
			s.Log.Errorf("Failed to resolve static file directory %v: %v. Run 'npm run build' in 'www' to build static files.", relRoot, err)
			return errors.New("Failed to resolve static file directory for hot reload")
		}
		s.Log.Infof("Serving static files from %v, with hot reload", absRoot)
		fsys = os.DirFS(absRoot)
		fsysRoot = ""
		isImmutable = false
	}

	static, err := staticfiles.NewCachedStaticFileServer(fsys, fsysRoot, []string{"/api/"}, s.Log, isImmutable, nil)
	if err != nil {
		s.Log.Warnf("Error in static files: %v. Run 'npm run build' in 'www' to build static files. If you're using 'npm run dev', then you can ignore this warning.", err)
	}

	// Dashboard pages are gated before the SPA is served: no session sends you
	// to the login page, and the admin-management page additionally needs the
	// super-admin flag (redirected to the dashboard, not an error).
	gatedPage := func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		cred := s.sessions.GetCredentials(r)
		if cred == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		page := params.ByName("page")
		if strings.HasPrefix(page, "/admin-management") && !cred.IsSuperAdmin {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		static.ServeHTTP(w, r)
	}
	router.GET("/dashboard", gatedPage)
	router.GET("/dashboard/*page", gatedPage)

	router.NotFound = static

	s.httpRouter = router
	return nil
}

func (s *Server) httpPing(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	type pingJSON struct {
		Time int64 `json:"time"`
	}
	ping := &pingJSON{
		Time: time.Now().Unix(),
	}
	www.SendJSON(w, ping)
}

// checkUpstream re-surfaces an upstream API failure with its original status
// code, and panics on transport errors.
func checkUpstream(err error) {
	if err == nil {
		return
	}
	if e := gateway.IsUpstreamError(err); e != nil {
		www.Panic(e.StatusCode, e.Message)
	}
	www.Check(err)
}
