package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"
	"github.com/talenthub/console/server/auth"
	"github.com/talenthub/console/server/model"
)

// fakeUpstream stands in for the TalentHub REST API. It serves two admin
// accounts ("root" is a super admin), three pages of users, and one pending
// endorser application. Calls records how many times each path was hit.
type fakeUpstream struct {
	lock  sync.Mutex
	calls map[string]int

	users        []model.User
	portfolios   []model.Portfolio
	projects     []model.Project
	applications []model.EndorserApplication
}

func str(s string) *string { return &s }

func newFakeUpstream() *fakeUpstream {
	f := &fakeUpstream{
		calls: map[string]int{},
	}
	// 25 users: an uneven final page
	for i := 1; i <= 25; i++ {
		role := model.RoleStudent
		if i%5 == 0 {
			role = model.RoleEndorser
		}
		f.users = append(f.users, model.User{
			ID:          int64(i),
			GoogleID:    str(fmt.Sprintf("google-%v", i)),
			Name:        str(fmt.Sprintf("User %v", i)),
			Email:       fmt.Sprintf("user%v@students.edu", i),
			PhoneNumber: str("0123456789"),
			RoleID:      role,
			Status:      model.UserStatusActive,
		})
	}
	// 12 portfolios: pages of 10 and 2
	for i := 1; i <= 12; i++ {
		f.portfolios = append(f.portfolios, model.Portfolio{
			UserID:      int64(i),
			RoleID:      model.RoleStudent,
			Name:        str(fmt.Sprintf("User %v", i)),
			PhoneNumber: str("0123456789"),
		})
	}
	for i := 1; i <= 5; i++ {
		f.projects = append(f.projects, model.Project{
			ProjectID:   int64(100 + i),
			Title:       fmt.Sprintf("Project %v", i),
			PortfolioID: int64(i),
			Visibility:  1,
		})
	}
	f.applications = []model.EndorserApplication{
		{ID: 42, Name: "Pat", Email: "pat@corp.com", Company: "Corp", Position: "Lead", Status: model.ApplicationPending},
		{ID: 43, Name: "Sam", Email: "sam@corp.com", Company: "Corp", Position: "CTO", Status: model.ApplicationPending},
	}
	return f
}

func (f *fakeUpstream) count(path string) int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.calls[path]
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.lock.Lock()
	path := strings.TrimPrefix(r.URL.Path, "/")
	f.calls[strings.SplitN(path, "/", 2)[0]]++
	f.lock.Unlock()

	send := func(obj any) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(obj)
	}
	fail := func(code int, msg string) {
		w.WriteHeader(code)
		send(map[string]string{"message": msg})
	}

	if path != "admin_login" && path != "view_all_majors" && r.Header.Get("Authorization") != "Bearer upstream-token" {
		fail(http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	switch {
	case path == "admin_login":
		req := model.LoginRequest{}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "hunter22-pass" {
			fail(http.StatusUnauthorized, "Invalid credentials")
			return
		}
		isSuper := 0
		if req.Email == "root@talenthub.io" {
			isSuper = 1
		}
		send(model.LoginResponse{
			Token:        "upstream-token",
			ID:           1,
			Email:        req.Email,
			Name:         "Root",
			RoleID:       3,
			IsSuperAdmin: isSuper,
		})
	case path == "admin/logout":
		send(map[string]string{"message": "Logged out"})
	case path == "users":
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		f.lock.Lock()
		lo := (page - 1) * 10
		hi := lo + 10
		if lo > len(f.users) {
			lo = len(f.users)
		}
		if hi > len(f.users) {
			hi = len(f.users)
		}
		out := append([]model.User{}, f.users[lo:hi]...)
		f.lock.Unlock()
		send(out)
	case path == "admin_search_user":
		name := strings.ToLower(r.URL.Query().Get("name"))
		f.lock.Lock()
		out := []model.User{}
		for _, u := range f.users {
			if u.Name != nil && strings.Contains(strings.ToLower(*u.Name), name) {
				out = append(out, u)
			}
		}
		f.lock.Unlock()
		send(out)
	case strings.HasPrefix(path, "ban_user/"):
		googleID := strings.TrimPrefix(path, "ban_user/")
		req := model.StatusChangeRequest{}
		json.NewDecoder(r.Body).Decode(&req)
		f.lock.Lock()
		for i := range f.users {
			if f.users[i].GoogleID != nil && *f.users[i].GoogleID == googleID {
				f.users[i].Status, _ = strconv.Atoi(req.Status)
			}
		}
		f.lock.Unlock()
		send(map[string]string{"message": "User status updated"})
	case path == "admin/create_endorser_account":
		req := model.CreateEndorserRequest{}
		json.NewDecoder(r.Body).Decode(&req)
		user := model.User{
			ID:     int64(1000 + len(f.users)),
			Name:   str(req.Name),
			Email:  req.Email,
			RoleID: model.RoleEndorser,
			Status: model.UserStatusActive,
		}
		send(model.CreateEndorserResponse{Message: "Endorser account created", User: &user})
	case path == "view_all_admin":
		send([]model.Admin{
			{ID: 1, Name: "Root", Email: "root@talenthub.io", IsSuperAdmin: 1},
			{ID: 2, Name: "Kim", Email: "kim@talenthub.io"},
			{ID: 3, Name: "Sol", Email: "sol@talenthub.io", IsSuperAdmin: 1},
		})
	case strings.HasPrefix(path, "remove_admin/"):
		send(map[string]string{"message": "Admin removed"})
	case path == "admin/create_admin_account":
		req := model.CreateAdminRequest{}
		json.NewDecoder(r.Body).Decode(&req)
		send(model.CreateAdminResponse{
			Message: "Admin account created",
			Admin:   &model.Admin{ID: 99, Name: req.Name, Email: req.Email},
		})
	case path == "view_all_majors":
		send([]model.Major{
			{ID: 1, Name: "Computer Science"},
			{ID: 2, Name: "Fine Arts"},
		})
	case path == "admin_view_all_endorser_request":
		f.lock.Lock()
		pending := []model.EndorserApplication{}
		for _, a := range f.applications {
			if a.Status == model.ApplicationPending {
				pending = append(pending, a)
			}
		}
		f.lock.Unlock()
		send(model.EndorserApplicationList{Success: true, Count: len(pending), Data: pending})
	case strings.HasPrefix(path, "admin_update_endorser_request/"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(path, "admin_update_endorser_request/"), 10, 64)
		req := model.StatusChangeRequest{}
		json.NewDecoder(r.Body).Decode(&req)
		f.lock.Lock()
		for i := range f.applications {
			if f.applications[i].ID == id {
				f.applications[i].Status, _ = strconv.Atoi(req.Status)
			}
		}
		f.lock.Unlock()
		send(map[string]string{"message": "Updated"})
	case path == "admin_view_all_portfolio":
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		f.lock.Lock()
		lo := (page - 1) * 10
		hi := lo + 10
		if lo > len(f.portfolios) {
			lo = len(f.portfolios)
		}
		if hi > len(f.portfolios) {
			hi = len(f.portfolios)
		}
		out := append([]model.Portfolio{}, f.portfolios[lo:hi]...)
		f.lock.Unlock()
		send(out)
	case path == "admin_view_all_project":
		f.lock.Lock()
		out := append([]model.Project{}, f.projects...)
		f.lock.Unlock()
		send(out)
	case path == "admin_view_employment_rate":
		send(model.EmploymentRate{})
	case path == "admin_view_top_10_job_title":
		send([]model.JobTitleCount{})
	case path == "admin_view_top_10_companies":
		send([]model.CompanyCount{})
	default:
		fail(http.StatusNotFound, "Not found: "+path)
	}
}

type testHarness struct {
	t        *testing.T
	server   *Server
	upstream *fakeUpstream
	cookie   *http.Cookie
}

func newTestHarness(t *testing.T) *testHarness {
	dbFile := "test-" + strings.ToLower(t.Name()) + ".sqlite"
	os.Remove(dbFile)
	upstream := newFakeUpstream()
	upstreamServer := httptest.NewServer(upstream)
	t.Cleanup(upstreamServer.Close)

	sealKey := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))
	cfg := Config{
		DB:             dbh.MakeSqliteConfig(dbFile),
		Upstream:       UpstreamConfig{BaseURL: upstreamServer.URL},
		SessionSealKey: sealKey,
	}
	s, err := NewServerWithConfig(logs.NewTestingLog(t), cfg)
	require.NoError(t, err)
	return &testHarness{t: t, server: s, upstream: upstream}
}

// do runs one request through the router, attaching the session cookie if
// we have one.
func (h *testHarness) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	r := httptest.NewRequest(method, path, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if h.cookie != nil {
		r.AddCookie(h.cookie)
	}
	w := httptest.NewRecorder()
	h.server.Router().ServeHTTP(w, r)
	return w
}

func (h *testHarness) login(email string) {
	w := h.do("POST", "/api/auth/login", model.LoginRequest{Email: email, Password: "hunter22-pass"})
	require.Equal(h.t, http.StatusOK, w.Code, w.Body.String())
	cookies := w.Result().Cookies()
	require.Len(h.t, cookies, 1)
	h.cookie = cookies[0]
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var out T
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestLoginAndWhoAmI(t *testing.T) {
	h := newTestHarness(t)

	// No session
	w := h.do("GET", "/api/auth/whoami", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Bad password is a generic 401
	w = h.do("POST", "/api/auth/login", model.LoginRequest{Email: "root@talenthub.io", Password: "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid login")

	h.login("root@talenthub.io")
	identity := decode[identityJSON](t, h.do("GET", "/api/auth/whoami", nil))
	require.Equal(t, "root@talenthub.io", identity.Email)
	require.True(t, identity.IsSuperAdmin)
}

func TestLogoutDestroysSession(t *testing.T) {
	h := newTestHarness(t)
	h.login("root@talenthub.io")
	require.Equal(t, http.StatusOK, h.do("GET", "/api/auth/whoami", nil).Code)

	require.Equal(t, http.StatusOK, h.do("POST", "/api/auth/logout", nil).Code)
	require.Equal(t, 1, h.upstream.count("admin"))

	require.Equal(t, http.StatusUnauthorized, h.do("GET", "/api/auth/whoami", nil).Code)
}

func TestExpiredSessionScreensDropped(t *testing.T) {
	h := newTestHarness(t)
	h.login("root@talenthub.io")
	decode[usersScreenJSON](t, h.do("GET", "/api/users", nil))

	key := auth.HashSessionToken(h.cookie.Value)
	h.server.screens.lock.Lock()
	_, present := h.server.screens.bySession[key]
	h.server.screens.lock.Unlock()
	require.True(t, present)

	// Expire the session behind the cookie; the purge sweep on the next
	// login must release its screen state along with the session row.
	expired := time.Now().Add(-time.Minute).UnixMilli()
	require.NoError(t, h.server.DB.Table("admin_session").Where("key = ?", key).Update("expires_at", expired).Error)

	h.cookie = nil
	h.login("kim@talenthub.io")

	h.server.screens.lock.Lock()
	_, present = h.server.screens.bySession[key]
	h.server.screens.lock.Unlock()
	require.False(t, present)
}

func TestDashboardGating(t *testing.T) {
	h := newTestHarness(t)

	w := h.do("GET", "/dashboard", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	h.login("kim@talenthub.io")
	require.Equal(t, http.StatusOK, h.do("GET", "/dashboard", nil).Code)

	// admin-management needs the super-admin flag; you get bounced to the
	// dashboard, not an error page
	w = h.do("GET", "/dashboard/admin-management", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))

	h.cookie = nil
	h.login("root@talenthub.io")
	require.Equal(t, http.StatusOK, h.do("GET", "/dashboard/admin-management", nil).Code)
}

func TestSuperAdminAPIGate(t *testing.T) {
	h := newTestHarness(t)
	h.login("kim@talenthub.io")
	require.Equal(t, http.StatusForbidden, h.do("GET", "/api/admins", nil).Code)
	require.Equal(t, 0, h.upstream.count("view_all_admin"))
}

func TestAdminManagement(t *testing.T) {
	h := newTestHarness(t)
	h.login("root@talenthub.io")

	admins := decode[[]model.Admin](t, h.do("GET", "/api/admins", nil))
	require.Len(t, admins, 3)

	// Can't remove yourself, or another super admin
	require.Equal(t, http.StatusBadRequest, h.do("DELETE", "/api/admins/1", nil).Code)
	require.Equal(t, http.StatusBadRequest, h.do("DELETE", "/api/admins/3", nil).Code)
	require.Equal(t, 0, h.upstream.count("remove_admin"))

	require.Equal(t, http.StatusOK, h.do("DELETE", "/api/admins/2", nil).Code)
	admins = decode[[]model.Admin](t, h.do("GET", "/api/admins", nil))
	require.Len(t, admins, 2)

	// Creating an admin patches the cached list
	w := h.do("POST", "/api/admins", map[string]string{
		"name":            "New Admin",
		"email":           "new@talenthub.io",
		"password":        "longenough",
		"confirmPassword": "longenough",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	admins = decode[[]model.Admin](t, h.do("GET", "/api/admins", nil))
	require.Len(t, admins, 3)
	require.Equal(t, 1, h.upstream.count("view_all_admin"))
}

func TestRemoveSuperAdminColdCache(t *testing.T) {
	h := newTestHarness(t)
	h.login("root@talenthub.io")

	// Removing a super admin must fail even when the admin list was never
	// fetched in this session: the guard loads it itself.
	w := h.do("DELETE", "/api/admins/3", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Super admin accounts cannot be removed")
	require.Equal(t, 0, h.upstream.count("remove_admin"))
	require.Equal(t, 1, h.upstream.count("view_all_admin"))
}

func TestUsersPaginationEndOfData(t *testing.T) {
	h := newTestHarness(t)
	h.login("root@talenthub.io")

	type moreJSON struct {
		Added   int  `json:"added"`
		HasMore bool `json:"hasMore"`
		Stale   bool `json:"stale"`
	}

	screen := decode[usersScreenJSON](t, h.do("GET", "/api/users", nil))
	require.Equal(t, 10, screen.LoadedCount)
	require.True(t, screen.HasMore)

	more := decode[moreJSON](t, h.do("POST", "/api/users/more", nil))
	require.Equal(t, 10, more.Added)
	require.True(t, more.HasMore)

	// Final page is short: 5 of 25 remain
	more = decode[moreJSON](t, h.do("POST", "/api/users/more", nil))
	require.Equal(t, 5, more.Added)
	require.False(t, more.HasMore)

	// End of data is sticky: no more upstream calls
	callsBefore := h.upstream.count("users")
	more = decode[moreJSON](t, h.do("POST", "/api/users/more", nil))
	require.False(t, more.HasMore)
	require.Equal(t, callsBefore, h.upstream.count("users"))

	// All 25 loaded exactly once
	screen = decode[usersScreenJSON](t, h.do("GET", "/api/users", nil))
	require.Equal(t, 25, screen.LoadedCount)
	seen := map[int64]bool{}
	for _, u := range screen.Items {
		require.False(t, seen[u.ID])
		seen[u.ID] = true
	}
}

func TestUsersFilterIsDisplayOnly(t *testing.T) {
	h := newTestHarness(t)
	h.login("root@talenthub.io")
	decode[usersScreenJSON](t, h.do("GET", "/api/users", nil))

	// 10 loaded; ids 5 and 10 are endorsers
	screen := decode[usersScreenJSON](t, h.do("POST", "/api/users/filter?role=2", nil))
	require.Len(t, screen.Items, 2)
	require.Equal(t, 10, screen.LoadedCount)

	// Clearing the filter restores the full loaded list without a refetch
	callsBefore := h.upstream.count("users")
	screen = decode[usersScreenJSON](t, h.do("POST", "/api/users/filter?role=0", nil))
	require.Len(t, screen.Items, 10)
	require.Equal(t, callsBefore, h.upstream.count("users"))

	require.Equal(t, http.StatusBadRequest, h.do("POST", "/api/users/filter?role=9", nil).Code)
}

func TestUsersSearchOverlay(t *testing.T) {
	h := newTestHarness(t)
	h.login("root@talenthub.io")
	decode[usersScreenJSON](t, h.do("GET", "/api/users", nil))

	screen := decode[usersScreenJSON](t, h.do("POST", "/api/users/search?name=User+2", nil))
	require.Equal(t, "User 2", screen.SearchTerm)
	// "User 2" matches 2, 20..25
	require.Len(t, screen.Items, 7)

	// Clearing the search restores the loaded pages untouched
	screen = decode[usersScreenJSON](t, h.do("POST", "/api/users/search", nil))
	require.Equal(t, "", screen.SearchTerm)
	require.Len(t, screen.Items, 10)
}

func TestBanPatchesInPlace(t *testing.T) {
	h := newTestHarness(t)
	h.login("root@talenthub.io")
	decode[usersScreenJSON](t, h.do("GET", "/api/users", nil))
	callsBefore := h.upstream.count("users")

	screen := decode[usersScreenJSON](t, h.do("PUT", "/api/users/ban/google-3", model.StatusChangeRequest{Status: "0"}))
	for _, u := range screen.Items {
		if u.ID == 3 {
			require.Equal(t, model.UserStatusBanned, u.Status)
		} else {
			require.Equal(t, model.UserStatusActive, u.Status)
		}
	}
	// Reconciliation is a local patch, not a refetch
	require.Equal(t, callsBefore, h.upstream.count("users"))
	require.Equal(t, 1, h.upstream.count("ban_user"))

	require.Equal(t, http.StatusBadRequest, h.do("PUT", "/api/users/ban/null", model.StatusChangeRequest{Status: "0"}).Code)
	require.Equal(t, http.StatusBadRequest, h.do("PUT", "/api/users/ban/google-4", model.StatusChangeRequest{Status: "banned"}).Code)
}

func TestBanDuringSearchPatchesLoadedPages(t *testing.T) {
	h := newTestHarness(t)
	h.login("root@talenthub.io")
	decode[usersScreenJSON](t, h.do("GET", "/api/users", nil))

	// User 3 is loaded but does not match the active search
	screen := decode[usersScreenJSON](t, h.do("POST", "/api/users/search?name=User+7", nil))
	for _, u := range screen.Items {
		require.NotEqual(t, int64(3), u.ID)
	}

	require.Equal(t, http.StatusOK, h.do("PUT", "/api/users/ban/google-3", model.StatusChangeRequest{Status: "0"}).Code)

	// Clearing the search must show the ban, without a refetch
	callsBefore := h.upstream.count("users")
	screen = decode[usersScreenJSON](t, h.do("POST", "/api/users/search", nil))
	found := false
	for _, u := range screen.Items {
		if u.ID == 3 {
			found = true
			require.Equal(t, model.UserStatusBanned, u.Status)
		}
	}
	require.True(t, found)
	require.Equal(t, callsBefore, h.upstream.count("users"))
}

func TestCreateEndorserValidationBoundary(t *testing.T) {
	h := newTestHarness(t)
	h.login("root@talenthub.io")

	form := map[string]string{
		"name":            "New Endorser",
		"email":           "endorser@corp.com",
		"company":         "Corp",
		"position":        "Manager",
		"password":        "longenough",
		"confirmPassword": "longenough",
	}
	post := func(mutate func(map[string]string)) *httptest.ResponseRecorder {
		f := map[string]string{}
		for k, v := range form {
			f[k] = v
		}
		mutate(f)
		return h.do("POST", "/api/users/endorser", f)
	}

	w := post(func(f map[string]string) { f["company"] = "" })
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "All fields are required")

	w = post(func(f map[string]string) { f["confirmPassword"] = "different1" })
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Password and Confirm Password do not match")

	// 7 characters: one short of the boundary
	w = post(func(f map[string]string) { f["password"] = "short77"; f["confirmPassword"] = "short77" })
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Password must be at least 8 characters long")

	w = post(func(f map[string]string) { f["email"] = "not-an-email" })
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Email is not valid")

	// Nothing invalid reached the upstream
	require.Equal(t, 0, h.upstream.count("admin"))

	w = post(func(f map[string]string) {})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, 1, h.upstream.count("admin"))

	// The new account shows up on the user list without a refetch
	screen := decode[usersScreenJSON](t, h.do("GET", "/api/users", nil))
	found := false
	for _, u := range screen.Items {
		if u.Email == "endorser@corp.com" {
			found = true
		}
	}
	require.True(t, found)
}

func TestApplicationApproval(t *testing.T) {
	h := newTestHarness(t)
	h.login("root@talenthub.io")

	screen := decode[applicationsScreenJSON](t, h.do("GET", "/api/applications", nil))
	require.Equal(t, 2, screen.PendingCount)

	type actionJSON struct {
		Action string `json:"action"`
	}
	screen = decode[applicationsScreenJSON](t, h.do("PUT", "/api/applications/42", actionJSON{Action: "approve"}))
	require.Equal(t, 1, screen.PendingCount)
	require.Equal(t, int64(43), screen.Items[0].ID)

	screen = decode[applicationsScreenJSON](t, h.do("PUT", "/api/applications/43", actionJSON{Action: "decline"}))
	require.Equal(t, 0, screen.PendingCount)

	require.Equal(t, http.StatusBadRequest, h.do("PUT", "/api/applications/43", actionJSON{Action: "maybe"}).Code)
	require.Equal(t, 2, h.upstream.count("admin_update_endorser_request"))
}

func TestMajorsSearchInMemory(t *testing.T) {
	h := newTestHarness(t)
	h.login("root@talenthub.io")

	majors := decode[[]model.Major](t, h.do("GET", "/api/majors", nil))
	require.Len(t, majors, 2)

	majors = decode[[]model.Major](t, h.do("GET", "/api/majors?search=fine", nil))
	require.Len(t, majors, 1)
	require.Equal(t, "Fine Arts", majors[0].Name)
}

func TestPortfolioTabSwitchResets(t *testing.T) {
	h := newTestHarness(t)
	h.login("root@talenthub.io")

	screen := decode[portfolioScreenJSON](t, h.do("GET", "/api/portfolio", nil))
	require.Equal(t, tabPortfolio, screen.Tab)
	require.Equal(t, 10, screen.LoadedCount)
	require.True(t, screen.HasMore)

	// Switching tabs loads the other view from page 1
	screen = decode[portfolioScreenJSON](t, h.do("POST", "/api/portfolio/tab?tab=project", nil))
	require.Equal(t, tabProject, screen.Tab)
	require.Equal(t, 5, screen.LoadedCount)
	require.False(t, screen.HasMore)
	require.Empty(t, screen.Portfolios)

	// Switching back discards the previous pages and refetches
	callsBefore := h.upstream.count("admin_view_all_portfolio")
	screen = decode[portfolioScreenJSON](t, h.do("POST", "/api/portfolio/tab?tab=portfolio", nil))
	require.Equal(t, 10, screen.LoadedCount)
	require.True(t, screen.HasMore)
	require.Equal(t, callsBefore+1, h.upstream.count("admin_view_all_portfolio"))

	require.Equal(t, http.StatusBadRequest, h.do("POST", "/api/portfolio/tab?tab=bogus", nil).Code)
}

func TestEmploymentStats(t *testing.T) {
	h := newTestHarness(t)
	h.login("root@talenthub.io")
	w := h.do("GET", "/api/employment", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, 1, h.upstream.count("admin_view_employment_rate"))
	require.Equal(t, 1, h.upstream.count("admin_view_top_10_job_title"))
	require.Equal(t, 1, h.upstream.count("admin_view_top_10_companies"))
}

func TestLoginRateLimit(t *testing.T) {
	h := newTestHarness(t)
	bad := model.LoginRequest{Email: "root@talenthub.io", Password: "wrong"}
	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusUnauthorized, h.do("POST", "/api/auth/login", bad).Code)
	}
	require.Equal(t, http.StatusTooManyRequests, h.do("POST", "/api/auth/login", bad).Code)
}
